package dialect

// Dialect abstracts database-specific SQL syntax.
type Dialect interface {
	// Identity
	Name() string
	DriverName() string
	DSN(host string, port int, user, password, database string) string

	// Identifier Quoting & Placeholders
	QuoteIdentifier(name string) string
	QuoteChar() string
	Placeholders(count, offset int) []string

	// Metadata Queries (Schema Introspection)
	TablesQuery() string
	ColumnsQuery() string
	SchemaName(database string) string

	// DDL Phrase Variants
	RenameTableClause(oldName, newName string) string
	RenameColumnClause(table, oldName, newName, columnType string) string
	AlterColumnTypeClause(table, column, newType string) string
	DropConstraintClause(table, constraint string) string
	DropForeignKeyClause(table, constraint string) string
}
