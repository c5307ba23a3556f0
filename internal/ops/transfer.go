package ops

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"db-bridge/internal/statement"
)

// ExportTable serializes the rows of one table (optionally a column subset)
// to CSV with a header row or a JSON array of objects.
func (dp *Dispatcher) ExportTable(ctx context.Context, table, format string, columns []string) (string, error) {
	if err := dp.validIdentifier("table", table); err != nil {
		return "", err
	}
	if format != "csv" && format != "json" {
		return "", validationErrf("unknown format %q (expected csv or json)", format)
	}
	for _, c := range columns {
		if err := dp.validIdentifier("column", c); err != nil {
			return "", err
		}
	}

	stmt := statement.Select(dp.dialect, table, columns, nil)
	res, err := dp.pool.Query(ctx, stmt.Text, stmt.Args...)
	if err != nil {
		return "", execErr(err)
	}

	if format == "json" {
		return encodeJSON(res.Columns, res.Rows)
	}
	return encodeCSV(res.Columns, res.Rows)
}

// ImportTable parses CSV or JSON text into flat records and inserts them one
// statement per record, reporting the inserted count. For CSV the header row
// names the columns unless an explicit column list is given, in which case
// every row is data.
func (dp *Dispatcher) ImportTable(ctx context.Context, table, data, format string, columns []string) (string, error) {
	if err := dp.validIdentifier("table", table); err != nil {
		return "", err
	}
	if strings.TrimSpace(data) == "" {
		return "", validationErrf("import data is required")
	}

	var records []map[string]any
	var err error
	switch format {
	case "csv":
		records, err = parseCSV(data, columns)
	case "json":
		records, err = parseJSON(data, columns)
	default:
		return "", validationErrf("unknown format %q (expected csv or json)", format)
	}
	if err != nil {
		return "", validationErrf("failed to parse %s data: %s", format, err.Error())
	}
	if len(records) == 0 {
		return "", validationErrf("no records to import")
	}

	inserted := 0
	for _, record := range records {
		if err := dp.validRecordKeys(record); err != nil {
			return "", err
		}
		stmt, err := statement.Insert(dp.dialect, table, record)
		if err != nil {
			return "", validationErrf("record %d: %s", inserted+1, err.Error())
		}
		if _, err := dp.pool.Exec(ctx, stmt.Text, stmt.Args...); err != nil {
			return "", fmt.Errorf("after %d row(s): %w", inserted, execErr(err))
		}
		inserted++
	}
	return fmt.Sprintf("Imported %d row(s) into %q.", inserted, table), nil
}

func encodeCSV(columns []string, rows []map[string]any) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(columns); err != nil {
		return "", fmt.Errorf("failed to encode csv: %w", err)
	}
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			if v := row[col]; v != nil {
				cells[i] = formatValue(v)
			}
		}
		if err := w.Write(cells); err != nil {
			return "", fmt.Errorf("failed to encode csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to encode csv: %w", err)
	}
	return b.String(), nil
}

func encodeJSON(columns []string, rows []map[string]any) (string, error) {
	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		rec := make(map[string]any, len(columns))
		for _, col := range columns {
			rec[col] = row[col]
		}
		out[i] = rec
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode json: %w", err)
	}
	return string(data), nil
}

func parseCSV(data string, columns []string) ([]map[string]any, error) {
	r := csv.NewReader(strings.NewReader(data))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := columns
	if len(header) == 0 {
		header = rows[0]
		rows = rows[1:]
	}

	records := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row has %d fields, header has %d", len(row), len(header))
		}
		record := make(map[string]any, len(header))
		for i, col := range header {
			record[col] = row[i]
		}
		records = append(records, record)
	}
	return records, nil
}

func parseJSON(data string, columns []string) ([]map[string]any, error) {
	var records []map[string]any
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return records, nil
	}
	// Restrict each record to the requested column subset.
	out := make([]map[string]any, 0, len(records))
	for _, record := range records {
		rec := make(map[string]any, len(columns))
		for _, col := range columns {
			if v, ok := record[col]; ok {
				rec[col] = v
			}
		}
		out = append(out, rec)
	}
	return out, nil
}
