package ops

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"db-bridge/internal/schema"
	"db-bridge/internal/statement"
)

// SeedTable inserts count generated rows into an existing table, with values
// derived from each column's declared type.
func (dp *Dispatcher) SeedTable(ctx context.Context, table string, count int) (string, error) {
	if err := dp.validIdentifier("table", table); err != nil {
		return "", err
	}
	if count <= 0 {
		return "", validationErrf("count must be positive, got %d", count)
	}

	cols, err := dp.intro.ListColumns(ctx, table)
	if err != nil {
		return "", execErr(err)
	}
	if len(cols) == 0 {
		return "", fmt.Errorf("%w: table %q", ErrNotFound, table)
	}

	// Auto-increment and serial columns take engine-generated values.
	writable := make([]schema.Column, 0, len(cols))
	for _, c := range cols {
		if c.IsAutoInc {
			continue
		}
		writable = append(writable, c)
	}
	if len(writable) == 0 {
		return "", validationErrf("table %q has only auto-generated columns, nothing to seed", table)
	}

	inserted := 0
	for i := 0; i < count; i++ {
		data := make(map[string]any, len(writable))
		for _, c := range writable {
			data[c.Name] = generateValue(c)
		}
		stmt, err := statement.Insert(dp.dialect, table, data)
		if err != nil {
			return "", validationErrf("seed: %s", err.Error())
		}
		if _, err := dp.pool.Exec(ctx, stmt.Text, stmt.Args...); err != nil {
			return "", fmt.Errorf("after %d row(s): %w", inserted, execErr(err))
		}
		inserted++
	}
	return fmt.Sprintf("Seeded %d row(s) into %q.", inserted, table), nil
}

// generateValue picks a value matching the column's declared type.
func generateValue(col schema.Column) any {
	t := strings.ToLower(col.DeclaredType)

	switch {
	case strings.Contains(t, "bool"):
		return gofakeit.Bool()
	case strings.Contains(t, "tinyint"):
		return gofakeit.Number(0, 127)
	case strings.Contains(t, "smallint"):
		return gofakeit.Number(1, 30000)
	case strings.Contains(t, "bigint"):
		return gofakeit.Number(1, 1_000_000_000)
	case strings.Contains(t, "int"):
		return gofakeit.Number(1, 1_000_000)
	case strings.Contains(t, "decimal"), strings.Contains(t, "numeric"),
		strings.Contains(t, "float"), strings.Contains(t, "double"), strings.Contains(t, "real"):
		return gofakeit.Price(0.99, 9999.99)
	case strings.Contains(t, "uuid"):
		return gofakeit.UUID()
	case t == "date":
		return randomPastDate().Format("2006-01-02")
	case t == "time", strings.HasPrefix(t, "time without"), strings.HasPrefix(t, "time with"):
		return randomPastDate().Format("15:04:05")
	case strings.Contains(t, "timestamp"), strings.Contains(t, "datetime"):
		return randomPastDate().Format("2006-01-02 15:04:05")
	case strings.Contains(t, "char"), strings.Contains(t, "text"):
		return truncate(gofakeit.HipsterSentence(3), typeLength(t))
	case strings.Contains(t, "json"):
		return "{}"
	case strings.Contains(t, "binary"), strings.Contains(t, "blob"), strings.Contains(t, "bytea"):
		return []byte("seed")
	default:
		return gofakeit.Word()
	}
}

func randomPastDate() time.Time {
	return gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now())
}

// typeLength parses the precision out of declared types like varchar(100).
func typeLength(declaredType string) int {
	open := strings.Index(declaredType, "(")
	end := strings.Index(declaredType, ")")
	if open < 0 || end <= open+1 {
		return 0
	}
	n, err := strconv.Atoi(declaredType[open+1 : end])
	if err != nil {
		return 0
	}
	return n
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}
