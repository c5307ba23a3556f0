package statement

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"db-bridge/internal/dialect"
)

var (
	// ErrEmptyData rejects INSERT/UPDATE construction with nothing to write.
	ErrEmptyData = errors.New("data must not be empty")
	// ErrEmptyFilter rejects UPDATE/DELETE construction without a WHERE clause.
	// An unfiltered write is a caller error, never a full-table statement.
	ErrEmptyFilter = errors.New("filter must not be empty")
)

// Statement is one parameterized statement: the placeholder count in Text
// always equals len(Args), and for the numbered dialect the numbering is
// contiguous across concatenated value groups.
type Statement struct {
	Text string
	Args []any
}

// Insert builds INSERT INTO table (cols...) VALUES (placeholders...).
// Columns and values share one iteration order (sorted keys, placeholders at
// offset zero).
func Insert(d dialect.Dialect, table string, data map[string]any) (Statement, error) {
	if len(data) == 0 {
		return Statement{}, ErrEmptyData
	}
	keys := sortedKeys(data)
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		args = append(args, data[k])
	}

	text := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.QuoteIdentifier(table),
		strings.Join(dialect.QuoteAll(d, keys), ", "),
		dialect.PlaceholderList(d, len(keys), 0))
	return Statement{Text: text, Args: args}, nil
}

// Select builds SELECT cols FROM table [WHERE ...]. An empty column list means
// *. An empty filter omits the WHERE clause entirely: a full scan is permitted
// for reads, never for writes.
func Select(d dialect.Dialect, table string, columns []string, filter map[string]any) Statement {
	colList := "*"
	if len(columns) > 0 {
		colList = strings.Join(dialect.QuoteAll(d, columns), ", ")
	}
	text := fmt.Sprintf("SELECT %s FROM %s", colList, d.QuoteIdentifier(table))

	if len(filter) == 0 {
		return Statement{Text: text, Args: []any{}}
	}
	where, args := whereClause(d, filter, 0)
	return Statement{Text: text + " WHERE " + where, Args: args}
}

// Update builds UPDATE table SET ... WHERE ... . The SET group binds at offset
// zero and the WHERE group at offset len(data), so the two placeholder groups
// never collide; the final value vector is SET values then WHERE values.
func Update(d dialect.Dialect, table string, data, filter map[string]any) (Statement, error) {
	if len(data) == 0 {
		return Statement{}, ErrEmptyData
	}
	if len(filter) == 0 {
		return Statement{}, ErrEmptyFilter
	}

	keys := sortedKeys(data)
	tokens := d.Placeholders(len(keys), 0)
	assignments := make([]string, len(keys))
	args := make([]any, 0, len(keys)+len(filter))
	for i, k := range keys {
		assignments[i] = fmt.Sprintf("%s = %s", d.QuoteIdentifier(k), tokens[i])
		args = append(args, data[k])
	}

	where, whereArgs := whereClause(d, filter, len(keys))
	text := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		d.QuoteIdentifier(table), strings.Join(assignments, ", "), where)
	return Statement{Text: text, Args: append(args, whereArgs...)}, nil
}

// Delete builds DELETE FROM table WHERE ... . The filter is mandatory.
func Delete(d dialect.Dialect, table string, filter map[string]any) (Statement, error) {
	if len(filter) == 0 {
		return Statement{}, ErrEmptyFilter
	}
	where, args := whereClause(d, filter, 0)
	text := fmt.Sprintf("DELETE FROM %s WHERE %s", d.QuoteIdentifier(table), where)
	return Statement{Text: text, Args: args}, nil
}

// whereClause renders ANDed equality conditions with placeholders starting at
// the given offset.
func whereClause(d dialect.Dialect, filter map[string]any, offset int) (string, []any) {
	keys := sortedKeys(filter)
	tokens := d.Placeholders(len(keys), offset)
	conditions := make([]string, len(keys))
	args := make([]any, 0, len(keys))
	for i, k := range keys {
		conditions[i] = fmt.Sprintf("%s = %s", d.QuoteIdentifier(k), tokens[i])
		args = append(args, filter[k])
	}
	return strings.Join(conditions, " AND "), args
}

// sortedKeys fixes the iteration order of map inputs so built statements are
// deterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
