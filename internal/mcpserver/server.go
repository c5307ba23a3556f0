package mcpserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"db-bridge/internal/ops"
	"db-bridge/internal/statement"
)

// Server binds the operation catalog to MCP tools over stdio. It is a thin
// layer: argument records come in as typed tool inputs, results go out as the
// dispatcher's textual envelope, and failures become error envelopes instead
// of protocol errors.
type Server struct {
	log *slog.Logger
	mcp *mcp.Server
	ops *ops.Dispatcher
}

func New(log *slog.Logger, dispatcher *ops.Dispatcher, version string) (*Server, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		log: log,
		ops: dispatcher,
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    "db-bridge",
			Version: version,
		}, nil),
	}
	if err := s.registerTools(); err != nil {
		return nil, err
	}
	return s, nil
}

// Run serves the MCP protocol on stdin/stdout until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("serving MCP over stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + err.Error()}},
	}
}

// addTool registers one catalog operation. The handler never returns a Go
// error for an operation failure; failures become error envelopes so the
// transport never sees a raw error value.
func addTool[In any](s *Server, name, description string, handle func(ctx context.Context, in In) (string, error)) error {
	schema, err := jsonschema.For[In](nil)
	if err != nil {
		return fmt.Errorf("failed to build input schema for %s: %w", name, err)
	}
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: schema,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		text, err := handle(ctx, in)
		if err != nil {
			s.log.Error("tool failed", "tool", name, "error", err)
			return errorResult(err), nil, nil
		}
		return textResult(text), nil, nil
	})
	return nil
}

type emptyInput struct{}

type tableInput struct {
	Table string `json:"table"`
}

type queryInput struct {
	Query string `json:"query"`
}

type exportInput struct {
	Table   string   `json:"table"`
	Format  string   `json:"format"`
	Columns []string `json:"columns,omitempty"`
}

type importInput struct {
	Table   string   `json:"table"`
	Data    string   `json:"data"`
	Format  string   `json:"format"`
	Columns []string `json:"columns,omitempty"`
}

type columnDefInput struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type createTableInput struct {
	Table   string           `json:"table"`
	Columns []columnDefInput `json:"columns"`
}

type dropTableInput struct {
	Table   string `json:"table"`
	Confirm string `json:"confirm"`
}

type addColumnInput struct {
	Table  string `json:"table"`
	Column string `json:"column"`
	Type   string `json:"type"`
}

type dropColumnInput struct {
	Table   string `json:"table"`
	Column  string `json:"column"`
	Confirm string `json:"confirm"`
}

type renameTableInput struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

type renameColumnInput struct {
	Table   string `json:"table"`
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
	Type    string `json:"type,omitempty"`
}

type changeTypeInput struct {
	Table   string `json:"table"`
	Column  string `json:"column"`
	NewType string `json:"new_type"`
	Confirm string `json:"confirm"`
}

type addUniqueInput struct {
	Table      string   `json:"table"`
	Constraint string   `json:"constraint,omitempty"`
	Columns    []string `json:"columns"`
}

type dropConstraintInput struct {
	Table      string `json:"table"`
	Constraint string `json:"constraint"`
	Confirm    string `json:"confirm"`
}

type addForeignKeyInput struct {
	Table      string   `json:"table"`
	Constraint string   `json:"constraint,omitempty"`
	Columns    []string `json:"columns"`
	RefTable   string   `json:"ref_table"`
	RefColumns []string `json:"ref_columns"`
	OnDelete   string   `json:"on_delete,omitempty"`
	OnUpdate   string   `json:"on_update,omitempty"`
}

type crudInput struct {
	Table   string         `json:"table"`
	Action  string         `json:"action"`
	Data    map[string]any `json:"data,omitempty"`
	Filter  map[string]any `json:"filter,omitempty"`
	Confirm string         `json:"confirm,omitempty"`
}

type seedInput struct {
	Table string `json:"table"`
	Count int    `json:"count"`
}

func (s *Server) registerTools() error {
	reg := []func() error{
		func() error {
			return addTool(s, "list-tables",
				"List every base table in the configured database.",
				func(ctx context.Context, _ emptyInput) (string, error) {
					return s.ops.ListTables(ctx)
				})
		},
		func() error {
			return addTool(s, "list-columns",
				"List the column names of a table. Returns an empty listing if the table does not exist.",
				func(ctx context.Context, in tableInput) (string, error) {
					return s.ops.ListColumns(ctx, in.Table)
				})
		},
		func() error {
			return addTool(s, "describe-table",
				"Show the columns of a table with their declared types.",
				func(ctx context.Context, in tableInput) (string, error) {
					return s.ops.DescribeTable(ctx, in.Table)
				})
		},
		func() error {
			return addTool(s, "run-readonly-query",
				"Run a free-form SELECT query. Anything other than a SELECT is rejected.",
				func(ctx context.Context, in queryInput) (string, error) {
					return s.ops.RunReadOnlyQuery(ctx, in.Query)
				})
		},
		func() error {
			return addTool(s, "export-table",
				"Export the rows of a table as CSV (with header row) or a JSON array of objects. Optionally restrict to a column subset.",
				func(ctx context.Context, in exportInput) (string, error) {
					return s.ops.ExportTable(ctx, in.Table, in.Format, in.Columns)
				})
		},
		func() error {
			return addTool(s, "import-table",
				"Import CSV or JSON text into a table, one INSERT per record. For CSV without an explicit column list, the first row is the header.",
				func(ctx context.Context, in importInput) (string, error) {
					return s.ops.ImportTable(ctx, in.Table, in.Data, in.Format, in.Columns)
				})
		},
		func() error {
			return addTool(s, "create-table",
				"Create a table from column definitions (name and SQL type). Reports when the table already exists instead of failing.",
				func(ctx context.Context, in createTableInput) (string, error) {
					cols := make([]statement.ColumnDef, len(in.Columns))
					for i, c := range in.Columns {
						cols[i] = statement.ColumnDef{Name: c.Name, Type: c.Type}
					}
					return s.ops.CreateTable(ctx, in.Table, cols)
				})
		},
		func() error {
			return addTool(s, "drop-table",
				`Drop a table. Requires confirm to equal exactly "drop table <table>".`,
				func(ctx context.Context, in dropTableInput) (string, error) {
					return s.ops.DropTable(ctx, in.Table, in.Confirm)
				})
		},
		func() error {
			return addTool(s, "add-column",
				"Add a column with the given SQL type to a table.",
				func(ctx context.Context, in addColumnInput) (string, error) {
					return s.ops.AddColumn(ctx, in.Table, statement.ColumnDef{Name: in.Column, Type: in.Type})
				})
		},
		func() error {
			return addTool(s, "drop-column",
				`Drop a column. Requires confirm to equal exactly "drop column <column> from <table>".`,
				func(ctx context.Context, in dropColumnInput) (string, error) {
					return s.ops.DropColumn(ctx, in.Table, in.Column, in.Confirm)
				})
		},
		func() error {
			return addTool(s, "rename-table",
				"Rename a table.",
				func(ctx context.Context, in renameTableInput) (string, error) {
					return s.ops.RenameTable(ctx, in.OldName, in.NewName)
				})
		},
		func() error {
			return addTool(s, "rename-column",
				"Rename a column. On MySQL the current column type must be supplied.",
				func(ctx context.Context, in renameColumnInput) (string, error) {
					return s.ops.RenameColumn(ctx, in.Table, in.OldName, in.NewName, in.Type)
				})
		},
		func() error {
			return addTool(s, "change-column-type",
				`Change a column's type. Requires confirm to equal exactly "change type of <table>.<column> to <type>".`,
				func(ctx context.Context, in changeTypeInput) (string, error) {
					return s.ops.ChangeColumnType(ctx, in.Table, in.Column, in.NewType, in.Confirm)
				})
		},
		func() error {
			return addTool(s, "add-unique",
				"Add a unique constraint over one or more columns.",
				func(ctx context.Context, in addUniqueInput) (string, error) {
					return s.ops.AddUnique(ctx, in.Table, in.Constraint, in.Columns)
				})
		},
		func() error {
			return addTool(s, "drop-unique",
				`Drop a unique constraint. Requires confirm to equal exactly "drop constraint <name> on <table>".`,
				func(ctx context.Context, in dropConstraintInput) (string, error) {
					return s.ops.DropUnique(ctx, in.Table, in.Constraint, in.Confirm)
				})
		},
		func() error {
			return addTool(s, "add-foreign-key",
				"Add a foreign key from local columns to referenced columns, optionally with ON DELETE / ON UPDATE actions.",
				func(ctx context.Context, in addForeignKeyInput) (string, error) {
					return s.ops.AddForeignKey(ctx, in.Table, in.Constraint, in.Columns, in.RefTable, in.RefColumns, in.OnDelete, in.OnUpdate)
				})
		},
		func() error {
			return addTool(s, "drop-foreign-key",
				`Drop a foreign key. Requires confirm to equal exactly "drop foreign key <name> on <table>".`,
				func(ctx context.Context, in dropConstraintInput) (string, error) {
					return s.ops.DropForeignKey(ctx, in.Table, in.Constraint, in.Confirm)
				})
		},
		func() error {
			return addTool(s, "generic-crud",
				`Generic create/read/update/delete on one table. create/update need data; update/delete need a filter; delete requires confirm to equal exactly "delete from <table>".`,
				func(ctx context.Context, in crudInput) (string, error) {
					return s.ops.Crud(ctx, ops.CrudRequest{
						Table:   in.Table,
						Action:  in.Action,
						Data:    in.Data,
						Filter:  in.Filter,
						Confirm: in.Confirm,
					})
				})
		},
		func() error {
			return addTool(s, "seed-table",
				"Insert N generated rows into an existing table, with values derived from column types.",
				func(ctx context.Context, in seedInput) (string, error) {
					return s.ops.SeedTable(ctx, in.Table, in.Count)
				})
		},
	}

	for _, register := range reg {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}
