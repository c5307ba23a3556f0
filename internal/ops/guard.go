package ops

import (
	"fmt"
	"regexp"
)

var readOnlyPattern = regexp.MustCompile(`(?i)^\s*select\b`)

// IsReadOnlyQuery reports whether free-form query text is allowed through the
// read-only gate: a case-insensitive SELECT prefix after leading whitespace.
func IsReadOnlyQuery(query string) bool {
	return readOnlyPattern.MatchString(query)
}

// ConfirmationMatches compares a supplied confirmation phrase against the
// canonical template. Exact equality only: case and whitespace differences
// fail the check.
func ConfirmationMatches(expected, supplied string) bool {
	return expected == supplied
}

// Canonical confirmation phrase templates for destructive operations.

func DropTablePhrase(table string) string {
	return fmt.Sprintf("drop table %s", table)
}

func DropColumnPhrase(table, column string) string {
	return fmt.Sprintf("drop column %s from %s", column, table)
}

func DropConstraintPhrase(table, constraint string) string {
	return fmt.Sprintf("drop constraint %s on %s", constraint, table)
}

func DropForeignKeyPhrase(table, constraint string) string {
	return fmt.Sprintf("drop foreign key %s on %s", constraint, table)
}

func ChangeTypePhrase(table, column, newType string) string {
	return fmt.Sprintf("change type of %s.%s to %s", table, column, newType)
}

func DeleteRowsPhrase(table string) string {
	return fmt.Sprintf("delete from %s", table)
}
