package ops

import (
	"context"
	"fmt"
	"strings"
)

// ListTables returns the names of every base table, one per line.
func (dp *Dispatcher) ListTables(ctx context.Context) (string, error) {
	tables, err := dp.intro.ListTables(ctx)
	if err != nil {
		return "", execErr(err)
	}
	if len(tables) == 0 {
		return "no tables found", nil
	}
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return strings.Join(names, "\n"), nil
}

// ListColumns returns the column names of one table, one per line. A missing
// table yields the empty-result message, not an error.
func (dp *Dispatcher) ListColumns(ctx context.Context, table string) (string, error) {
	if err := dp.validIdentifier("table", table); err != nil {
		return "", err
	}
	cols, err := dp.intro.ListColumns(ctx, table)
	if err != nil {
		return "", execErr(err)
	}
	if len(cols) == 0 {
		return fmt.Sprintf("no columns found for table %q", table), nil
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return strings.Join(names, "\n"), nil
}

// DescribeTable renders the column name/type listing of one table. Unlike
// ListColumns this treats a missing table as an error, since the caller named
// a table it expects to exist.
func (dp *Dispatcher) DescribeTable(ctx context.Context, table string) (string, error) {
	if err := dp.validIdentifier("table", table); err != nil {
		return "", err
	}
	cols, err := dp.intro.ListColumns(ctx, table)
	if err != nil {
		return "", execErr(err)
	}
	if len(cols) == 0 {
		return "", fmt.Errorf("%w: table %q", ErrNotFound, table)
	}
	return renderColumns(cols), nil
}

// RunReadOnlyQuery executes free-form query text behind the read-only guard.
// Anything that is not a SELECT is rejected before touching the pool.
func (dp *Dispatcher) RunReadOnlyQuery(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", validationErrf("query text is required")
	}
	if !IsReadOnlyQuery(query) {
		return "", fmt.Errorf("%w: only SELECT queries are allowed", ErrUnsafeQuery)
	}
	res, err := dp.pool.Query(ctx, query)
	if err != nil {
		return "", execErr(err)
	}
	return renderResult(res), nil
}
