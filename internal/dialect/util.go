package dialect

import "strings"

// PlaceholderList renders a dialect's placeholder tokens as a comma-separated
// list, ready to drop into a VALUES (...) clause.
func PlaceholderList(d Dialect, count, offset int) string {
	return strings.Join(d.Placeholders(count, offset), ", ")
}

// QuoteAll quotes every identifier in names with the given dialect.
func QuoteAll(d Dialect, names []string) []string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = d.QuoteIdentifier(n)
	}
	return quoted
}
