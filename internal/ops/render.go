package ops

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"db-bridge/internal/pool"
	"db-bridge/internal/schema"
)

// renderResult renders a query result as an aligned text table, columns in
// result order.
func renderResult(res *pool.Result) string {
	if len(res.Rows) == 0 {
		return "no results"
	}
	var b strings.Builder
	table := tablewriter.NewWriter(&b)
	table.SetHeader(res.Columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, row := range res.Rows {
		cells := make([]string, len(res.Columns))
		for i, col := range res.Columns {
			cells[i] = formatValue(row[col])
		}
		table.Append(cells)
	}
	table.Render()
	return strings.TrimRight(b.String(), "\n")
}

func renderColumns(cols []schema.Column) string {
	var b strings.Builder
	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"column", "type"})
	table.SetAutoFormatHeaders(false)
	for _, c := range cols {
		table.Append([]string{c.Name, c.DeclaredType})
	}
	table.Render()
	return strings.TrimRight(b.String(), "\n")
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
