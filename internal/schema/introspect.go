package schema

import (
	"context"
	"fmt"
	"strings"

	"db-bridge/internal/dialect"
	"db-bridge/internal/pool"
)

// Introspector answers catalog questions through dialect-specific
// information_schema queries, normalized into the Table/Column model.
type Introspector struct {
	pool    *pool.Pool
	dialect dialect.Dialect
	scope   string
}

func NewIntrospector(p *pool.Pool, d dialect.Dialect, database string) *Introspector {
	return &Introspector{pool: p, dialect: d, scope: d.SchemaName(database)}
}

// ListTables returns every base table with its columns. One catalog query for
// the names, then one column query per table; this is an administrative path,
// not a hot one, so the N+1 shape is fine.
func (in *Introspector) ListTables(ctx context.Context) ([]Table, error) {
	res, err := in.pool.Query(ctx, in.dialect.TablesQuery(), in.scope)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}

	tables := make([]Table, 0, len(res.Rows))
	for _, row := range res.Rows {
		name := scalarString(row)
		if name == "" {
			continue
		}
		cols, err := in.ListColumns(ctx, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, Table{Name: name, Columns: cols})
	}
	return tables, nil
}

// ListColumns returns the columns of one table in ordinal order. A table that
// does not exist yields an empty slice, not an error: callers use this as an
// existence probe.
func (in *Introspector) ListColumns(ctx context.Context, table string) ([]Column, error) {
	res, err := in.pool.Query(ctx, in.dialect.ColumnsQuery(), in.scope, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns of %s: %w", table, err)
	}

	cols := make([]Column, 0, len(res.Rows))
	for _, row := range res.Rows {
		if len(res.Columns) < 3 {
			continue
		}
		cols = append(cols, Column{
			Name:         toString(row[res.Columns[0]]),
			DeclaredType: toString(row[res.Columns[1]]),
			IsAutoInc:    isAutoInc(toString(row[res.Columns[2]])),
		})
	}
	return cols, nil
}

// isAutoInc detects engine-generated columns from the catalog's extra/default
// text: auto_increment (MySQL), identity, or a nextval(...) sequence default
// (Postgres serial).
func isAutoInc(extra string) bool {
	e := strings.ToLower(extra)
	return strings.Contains(e, "auto_increment") ||
		strings.Contains(e, "identity") ||
		strings.Contains(e, "nextval")
}

// TableExists probes the column catalog for the table.
func (in *Introspector) TableExists(ctx context.Context, table string) (bool, error) {
	cols, err := in.ListColumns(ctx, table)
	if err != nil {
		return false, err
	}
	return len(cols) > 0, nil
}

// scalarString pulls the single value out of a one-column row.
func scalarString(row map[string]any) string {
	for _, v := range row {
		return toString(v)
	}
	return ""
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}
