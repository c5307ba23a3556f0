package schema

// Table is the canonical shape of one introspected table.
// Produced fresh on every call; the catalog may change between calls.
type Table struct {
	Name    string
	Columns []Column
}

type Column struct {
	Name         string
	DeclaredType string
	// IsAutoInc marks engine-generated columns (MySQL auto_increment,
	// Postgres serial/identity); writers that generate values skip them.
	IsAutoInc bool
}
