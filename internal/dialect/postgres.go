package dialect

import "fmt"

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string {
	return "postgres"
}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

func (d *PostgresDialect) DSN(host string, port int, user, password, database string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, database)
}

func (d *PostgresDialect) QuoteIdentifier(name string) string {
	return `"` + name + `"`
}

func (d *PostgresDialect) QuoteChar() string {
	return `"`
}

// Placeholders returns count numbered tokens starting at $offset+1.
// The offset carries the numbering across concatenated value groups,
// e.g. an UPDATE whose WHERE placeholders continue after the SET group.
func (d *PostgresDialect) Placeholders(count, offset int) []string {
	tokens := make([]string, count)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("$%d", offset+i+1)
	}
	return tokens
}

func (d *PostgresDialect) TablesQuery() string {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = $1 AND table_type = 'BASE TABLE' ORDER BY table_name`
}

func (d *PostgresDialect) ColumnsQuery() string {
	// column_default stands in for MySQL's EXTRA: serial and identity
	// columns carry a nextval(...) default.
	return `SELECT column_name, data_type, COALESCE(column_default, '') FROM information_schema.columns WHERE table_schema = $1 AND table_name = $2 ORDER BY ordinal_position`
}

// SchemaName returns the introspection scope. Postgres tables live under a
// named schema, not the database, so this defaults to public.
func (d *PostgresDialect) SchemaName(database string) string {
	return "public"
}

func (d *PostgresDialect) RenameTableClause(oldName, newName string) string {
	return fmt.Sprintf("ALTER TABLE %s RENAME TO %s", d.QuoteIdentifier(oldName), d.QuoteIdentifier(newName))
}

// RenameColumnClause ignores columnType: Postgres renames keep the type.
func (d *PostgresDialect) RenameColumnClause(table, oldName, newName, columnType string) string {
	return fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s",
		d.QuoteIdentifier(table), d.QuoteIdentifier(oldName), d.QuoteIdentifier(newName))
}

func (d *PostgresDialect) AlterColumnTypeClause(table, column, newType string) string {
	return fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s",
		d.QuoteIdentifier(table), d.QuoteIdentifier(column), newType)
}

func (d *PostgresDialect) DropConstraintClause(table, constraint string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", d.QuoteIdentifier(table), d.QuoteIdentifier(constraint))
}

// DropForeignKeyClause is the same as DropConstraintClause: Postgres keeps
// foreign keys in the generic constraint namespace.
func (d *PostgresDialect) DropForeignKeyClause(table, constraint string) string {
	return d.DropConstraintClause(table, constraint)
}
