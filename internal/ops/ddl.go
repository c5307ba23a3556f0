package ops

import (
	"context"
	"fmt"
	"strings"

	"db-bridge/internal/statement"
)

// CreateTable creates a table after probing the catalog for an existing one.
// An existing table short-circuits into the "already exists" message and
// issues no DDL.
func (dp *Dispatcher) CreateTable(ctx context.Context, table string, columns []statement.ColumnDef) (string, error) {
	if err := dp.validIdentifier("table", table); err != nil {
		return "", err
	}
	if len(columns) == 0 {
		return "", validationErrf("at least one column definition is required")
	}
	for _, c := range columns {
		if err := dp.validIdentifier("column", c.Name); err != nil {
			return "", err
		}
		if strings.TrimSpace(c.Type) == "" {
			return "", validationErrf("column %q is missing a type", c.Name)
		}
	}

	exists, err := dp.intro.TableExists(ctx, table)
	if err != nil {
		return "", execErr(err)
	}
	if exists {
		return fmt.Sprintf("Table %q already exists.", table), nil
	}

	if _, err := dp.pool.Exec(ctx, statement.CreateTable(dp.dialect, table, columns)); err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Table %q created successfully.", table), nil
}

func (dp *Dispatcher) DropTable(ctx context.Context, table, confirm string) (string, error) {
	if err := dp.validIdentifier("table", table); err != nil {
		return "", err
	}
	if err := dp.requireConfirmation(DropTablePhrase(table), confirm); err != nil {
		return "", err
	}
	if _, err := dp.pool.Exec(ctx, statement.DropTable(dp.dialect, table)); err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Table %q dropped.", table), nil
}

func (dp *Dispatcher) AddColumn(ctx context.Context, table string, column statement.ColumnDef) (string, error) {
	if err := dp.validIdentifier("table", table); err != nil {
		return "", err
	}
	if err := dp.validIdentifier("column", column.Name); err != nil {
		return "", err
	}
	if strings.TrimSpace(column.Type) == "" {
		return "", validationErrf("column %q is missing a type", column.Name)
	}
	if _, err := dp.pool.Exec(ctx, statement.AddColumn(dp.dialect, table, column)); err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Column %q added to table %q.", column.Name, table), nil
}

func (dp *Dispatcher) DropColumn(ctx context.Context, table, column, confirm string) (string, error) {
	if err := dp.validIdentifier("table", table); err != nil {
		return "", err
	}
	if err := dp.validIdentifier("column", column); err != nil {
		return "", err
	}
	if err := dp.requireConfirmation(DropColumnPhrase(table, column), confirm); err != nil {
		return "", err
	}
	if _, err := dp.pool.Exec(ctx, statement.DropColumn(dp.dialect, table, column)); err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Column %q dropped from table %q.", column, table), nil
}

func (dp *Dispatcher) RenameTable(ctx context.Context, oldName, newName string) (string, error) {
	if err := dp.validIdentifier("table", oldName); err != nil {
		return "", err
	}
	if err := dp.validIdentifier("table", newName); err != nil {
		return "", err
	}
	if _, err := dp.pool.Exec(ctx, statement.RenameTable(dp.dialect, oldName, newName)); err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Table %q renamed to %q.", oldName, newName), nil
}

// RenameColumn takes the column type for the MySQL CHANGE grammar; the
// Postgres dialect ignores it.
func (dp *Dispatcher) RenameColumn(ctx context.Context, table, oldName, newName, columnType string) (string, error) {
	if err := dp.validIdentifier("table", table); err != nil {
		return "", err
	}
	if err := dp.validIdentifier("column", oldName); err != nil {
		return "", err
	}
	if err := dp.validIdentifier("column", newName); err != nil {
		return "", err
	}
	if dp.dialect.Name() == "mysql" && strings.TrimSpace(columnType) == "" {
		return "", validationErrf("column type is required to rename a column on mysql")
	}
	if _, err := dp.pool.Exec(ctx, statement.RenameColumn(dp.dialect, table, oldName, newName, columnType)); err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Column %q renamed to %q in table %q.", oldName, newName, table), nil
}

func (dp *Dispatcher) ChangeColumnType(ctx context.Context, table, column, newType, confirm string) (string, error) {
	if err := dp.validIdentifier("table", table); err != nil {
		return "", err
	}
	if err := dp.validIdentifier("column", column); err != nil {
		return "", err
	}
	if strings.TrimSpace(newType) == "" {
		return "", validationErrf("new column type is required")
	}
	if err := dp.requireConfirmation(ChangeTypePhrase(table, column, newType), confirm); err != nil {
		return "", err
	}
	if _, err := dp.pool.Exec(ctx, statement.ChangeColumnType(dp.dialect, table, column, newType)); err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Column %q in table %q changed to type %s.", column, table, newType), nil
}

// AddUnique adds a unique constraint. An empty constraint name defaults to
// uq_<table>_<columns>.
func (dp *Dispatcher) AddUnique(ctx context.Context, table, constraint string, columns []string) (string, error) {
	if err := dp.validIdentifier("table", table); err != nil {
		return "", err
	}
	if err := dp.validIdentifiers("column", columns); err != nil {
		return "", err
	}
	if constraint == "" {
		constraint = fmt.Sprintf("uq_%s_%s", table, strings.Join(columns, "_"))
	}
	if err := dp.validIdentifier("constraint", constraint); err != nil {
		return "", err
	}
	if _, err := dp.pool.Exec(ctx, statement.AddUnique(dp.dialect, table, constraint, columns)); err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Unique constraint %q added to table %q.", constraint, table), nil
}

func (dp *Dispatcher) DropUnique(ctx context.Context, table, constraint, confirm string) (string, error) {
	if err := dp.validIdentifier("table", table); err != nil {
		return "", err
	}
	if err := dp.validIdentifier("constraint", constraint); err != nil {
		return "", err
	}
	if err := dp.requireConfirmation(DropConstraintPhrase(table, constraint), confirm); err != nil {
		return "", err
	}
	if _, err := dp.pool.Exec(ctx, statement.DropUnique(dp.dialect, table, constraint)); err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Constraint %q dropped from table %q.", constraint, table), nil
}

// AddForeignKey adds a foreign key. An empty constraint name defaults to
// fk_<table>_<refTable>. The referential actions are passed through as
// trusted schema text.
func (dp *Dispatcher) AddForeignKey(ctx context.Context, table, constraint string, columns []string, refTable string, refColumns []string, onDelete, onUpdate string) (string, error) {
	if err := dp.validIdentifier("table", table); err != nil {
		return "", err
	}
	if err := dp.validIdentifier("table", refTable); err != nil {
		return "", err
	}
	if err := dp.validIdentifiers("column", columns); err != nil {
		return "", err
	}
	if err := dp.validIdentifiers("column", refColumns); err != nil {
		return "", err
	}
	if len(columns) != len(refColumns) {
		return "", validationErrf("local and referenced column counts differ (%d vs %d)", len(columns), len(refColumns))
	}
	if constraint == "" {
		constraint = fmt.Sprintf("fk_%s_%s", table, refTable)
	}
	if err := dp.validIdentifier("constraint", constraint); err != nil {
		return "", err
	}
	ddl := statement.AddForeignKey(dp.dialect, table, constraint, columns, refTable, refColumns, onDelete, onUpdate)
	if _, err := dp.pool.Exec(ctx, ddl); err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Foreign key %q added to table %q.", constraint, table), nil
}

func (dp *Dispatcher) DropForeignKey(ctx context.Context, table, constraint, confirm string) (string, error) {
	if err := dp.validIdentifier("table", table); err != nil {
		return "", err
	}
	if err := dp.validIdentifier("constraint", constraint); err != nil {
		return "", err
	}
	if err := dp.requireConfirmation(DropForeignKeyPhrase(table, constraint), confirm); err != nil {
		return "", err
	}
	if _, err := dp.pool.Exec(ctx, statement.DropForeignKey(dp.dialect, table, constraint)); err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Foreign key %q dropped from table %q.", constraint, table), nil
}
