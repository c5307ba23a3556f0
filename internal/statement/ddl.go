package statement

import (
	"fmt"
	"strings"

	"db-bridge/internal/dialect"
)

// ColumnDef is one column in a CREATE TABLE or ADD COLUMN request. Type is
// trusted schema-definition text from the caller and is inserted verbatim,
// not bound as a parameter; DDL statements carry no parameters at all.
type ColumnDef struct {
	Name string
	Type string
}

func CreateTable(d dialect.Dialect, table string, columns []ColumnDef) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = fmt.Sprintf("%s %s", d.QuoteIdentifier(c.Name), c.Type)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", d.QuoteIdentifier(table), strings.Join(defs, ", "))
}

func DropTable(d dialect.Dialect, table string) string {
	return fmt.Sprintf("DROP TABLE %s", d.QuoteIdentifier(table))
}

func AddColumn(d dialect.Dialect, table string, column ColumnDef) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s",
		d.QuoteIdentifier(table), d.QuoteIdentifier(column.Name), column.Type)
}

func DropColumn(d dialect.Dialect, table, column string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s",
		d.QuoteIdentifier(table), d.QuoteIdentifier(column))
}

func RenameTable(d dialect.Dialect, oldName, newName string) string {
	return d.RenameTableClause(oldName, newName)
}

func RenameColumn(d dialect.Dialect, table, oldName, newName, columnType string) string {
	return d.RenameColumnClause(table, oldName, newName, columnType)
}

func ChangeColumnType(d dialect.Dialect, table, column, newType string) string {
	return d.AlterColumnTypeClause(table, column, newType)
}

// AddUnique uses the ADD CONSTRAINT grammar, which both engines share.
func AddUnique(d dialect.Dialect, table, constraint string, columns []string) string {
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s UNIQUE (%s)",
		d.QuoteIdentifier(table), d.QuoteIdentifier(constraint),
		strings.Join(dialect.QuoteAll(d, columns), ", "))
}

func DropUnique(d dialect.Dialect, table, constraint string) string {
	return d.DropConstraintClause(table, constraint)
}

// AddForeignKey composes ADD CONSTRAINT ... FOREIGN KEY ... REFERENCES ... .
// onDelete and onUpdate are referential actions (CASCADE, SET NULL, RESTRICT,
// NO ACTION) appended verbatim when present; like column types they are
// trusted schema text, not user data.
func AddForeignKey(d dialect.Dialect, table, constraint string, columns []string, refTable string, refColumns []string, onDelete, onUpdate string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		d.QuoteIdentifier(table), d.QuoteIdentifier(constraint),
		strings.Join(dialect.QuoteAll(d, columns), ", "),
		d.QuoteIdentifier(refTable),
		strings.Join(dialect.QuoteAll(d, refColumns), ", "))
	if onDelete != "" {
		fmt.Fprintf(&b, " ON DELETE %s", onDelete)
	}
	if onUpdate != "" {
		fmt.Fprintf(&b, " ON UPDATE %s", onUpdate)
	}
	return b.String()
}

func DropForeignKey(d dialect.Dialect, table, constraint string) string {
	return d.DropForeignKeyClause(table, constraint)
}
