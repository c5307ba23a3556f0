package dialect

import "fmt"

type MysqlDialect struct{}

func (d *MysqlDialect) Name() string {
	return "mysql"
}

func (d *MysqlDialect) DriverName() string {
	return "mysql"
}

func (d *MysqlDialect) DSN(host string, port int, user, password, database string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", user, password, host, port, database)
}

func (d *MysqlDialect) QuoteIdentifier(name string) string {
	return "`" + name + "`"
}

func (d *MysqlDialect) QuoteChar() string {
	return "`"
}

// Placeholders returns count "?" tokens. MySQL placeholders are positional by
// order of appearance, so the offset only matters for the numbered dialect.
func (d *MysqlDialect) Placeholders(count, offset int) []string {
	tokens := make([]string, count)
	for i := range tokens {
		tokens[i] = "?"
	}
	return tokens
}

func (d *MysqlDialect) TablesQuery() string {
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

func (d *MysqlDialect) ColumnsQuery() string {
	return `SELECT COLUMN_NAME, COLUMN_TYPE, EXTRA FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION`
}

// SchemaName returns the catalog scope for introspection queries.
// In MySQL the schema and the database are the same thing.
func (d *MysqlDialect) SchemaName(database string) string {
	return database
}

func (d *MysqlDialect) RenameTableClause(oldName, newName string) string {
	return fmt.Sprintf("RENAME TABLE %s TO %s", d.QuoteIdentifier(oldName), d.QuoteIdentifier(newName))
}

// RenameColumnClause uses CHANGE, which requires restating the column type.
func (d *MysqlDialect) RenameColumnClause(table, oldName, newName, columnType string) string {
	return fmt.Sprintf("ALTER TABLE %s CHANGE %s %s %s",
		d.QuoteIdentifier(table), d.QuoteIdentifier(oldName), d.QuoteIdentifier(newName), columnType)
}

func (d *MysqlDialect) AlterColumnTypeClause(table, column, newType string) string {
	return fmt.Sprintf("ALTER TABLE %s MODIFY COLUMN %s %s",
		d.QuoteIdentifier(table), d.QuoteIdentifier(column), newType)
}

// DropConstraintClause drops a unique constraint, which MySQL stores as an index.
func (d *MysqlDialect) DropConstraintClause(table, constraint string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP INDEX %s", d.QuoteIdentifier(table), d.QuoteIdentifier(constraint))
}

func (d *MysqlDialect) DropForeignKeyClause(table, constraint string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP FOREIGN KEY %s", d.QuoteIdentifier(table), d.QuoteIdentifier(constraint))
}
