package ops

import (
	"context"
	"fmt"

	"db-bridge/internal/statement"
)

// CrudRequest is one generic create/read/update/delete invocation.
// Data and Filter are column->value records; delete additionally carries the
// confirmation phrase.
type CrudRequest struct {
	Table   string
	Action  string
	Data    map[string]any
	Filter  map[string]any
	Confirm string
}

// Crud dispatches one generic CRUD request. Create and update require
// non-empty data; update and delete require a non-empty filter — an
// unfiltered write is rejected outright, never broadened to every row.
func (dp *Dispatcher) Crud(ctx context.Context, req CrudRequest) (string, error) {
	if err := dp.validIdentifier("table", req.Table); err != nil {
		return "", err
	}
	if err := dp.validRecordKeys(req.Data); err != nil {
		return "", err
	}
	if err := dp.validRecordKeys(req.Filter); err != nil {
		return "", err
	}

	switch req.Action {
	case "create":
		return dp.crudCreate(ctx, req)
	case "read":
		return dp.crudRead(ctx, req)
	case "update":
		return dp.crudUpdate(ctx, req)
	case "delete":
		return dp.crudDelete(ctx, req)
	default:
		return "", validationErrf("unknown action %q (expected create, read, update or delete)", req.Action)
	}
}

func (dp *Dispatcher) crudCreate(ctx context.Context, req CrudRequest) (string, error) {
	stmt, err := statement.Insert(dp.dialect, req.Table, req.Data)
	if err != nil {
		return "", validationErrf("create: %s", err.Error())
	}
	affected, err := dp.pool.Exec(ctx, stmt.Text, stmt.Args...)
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Inserted %d row(s) into %q.", affected, req.Table), nil
}

// crudRead permits an empty filter: a full scan is fine for reads.
func (dp *Dispatcher) crudRead(ctx context.Context, req CrudRequest) (string, error) {
	stmt := statement.Select(dp.dialect, req.Table, nil, req.Filter)
	res, err := dp.pool.Query(ctx, stmt.Text, stmt.Args...)
	if err != nil {
		return "", execErr(err)
	}
	return renderResult(res), nil
}

func (dp *Dispatcher) crudUpdate(ctx context.Context, req CrudRequest) (string, error) {
	stmt, err := statement.Update(dp.dialect, req.Table, req.Data, req.Filter)
	if err != nil {
		return "", validationErrf("update: %s", err.Error())
	}
	affected, err := dp.pool.Exec(ctx, stmt.Text, stmt.Args...)
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Updated %d row(s) in %q.", affected, req.Table), nil
}

func (dp *Dispatcher) crudDelete(ctx context.Context, req CrudRequest) (string, error) {
	if len(req.Filter) == 0 {
		return "", validationErrf("delete: %s", statement.ErrEmptyFilter.Error())
	}
	if err := dp.requireConfirmation(DeleteRowsPhrase(req.Table), req.Confirm); err != nil {
		return "", err
	}
	stmt, err := statement.Delete(dp.dialect, req.Table, req.Filter)
	if err != nil {
		return "", validationErrf("delete: %s", err.Error())
	}
	affected, err := dp.pool.Exec(ctx, stmt.Text, stmt.Args...)
	if err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Deleted %d row(s) from %q.", affected, req.Table), nil
}

func (dp *Dispatcher) validRecordKeys(record map[string]any) error {
	for k := range record {
		if err := dp.validIdentifier("column", k); err != nil {
			return err
		}
	}
	return nil
}
