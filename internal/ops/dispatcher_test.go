package ops_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"db-bridge/internal/dialect"
	"db-bridge/internal/ops"
	"db-bridge/internal/pool"
	"db-bridge/internal/statement"
)

func newTestDispatcher(t *testing.T, engine string) (*ops.Dispatcher, dialect.Dialect, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	d, err := dialect.Get(engine)
	require.NoError(t, err)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := pool.New(db, log)
	return ops.New(log, p, d, "testdb"), d, mock
}

func TestRunReadOnlyQuery_RejectedBeforeExecution(t *testing.T) {
	t.Parallel()

	dp, _, mock := newTestDispatcher(t, "mysql")

	// No expectations are registered: a rejected query must never reach the
	// pool.
	_, err := dp.RunReadOnlyQuery(context.Background(), "DELETE FROM users")
	assert.ErrorIs(t, err, ops.ErrUnsafeQuery)

	_, err = dp.RunReadOnlyQuery(context.Background(), "   ")
	assert.ErrorIs(t, err, ops.ErrValidation)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunReadOnlyQuery(t *testing.T) {
	t.Parallel()

	dp, _, mock := newTestDispatcher(t, "mysql")

	mock.ExpectQuery("SELECT id, name FROM users").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "Ana"))

	out, err := dp.RunReadOnlyQuery(context.Background(), "SELECT id, name FROM users")
	require.NoError(t, err)
	assert.Contains(t, out, "id")
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "Ana")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunReadOnlyQuery_NoResults(t *testing.T) {
	t.Parallel()

	dp, _, mock := newTestDispatcher(t, "mysql")

	mock.ExpectQuery("SELECT 1 WHERE 1 = 0").WillReturnRows(sqlmock.NewRows([]string{"1"}))

	out, err := dp.RunReadOnlyQuery(context.Background(), "SELECT 1 WHERE 1 = 0")
	require.NoError(t, err)
	assert.Equal(t, "no results", out)
}

func TestListTables(t *testing.T) {
	t.Parallel()

	dp, d, mock := newTestDispatcher(t, "mysql")

	mock.ExpectQuery(d.TablesQuery()).
		WithArgs("testdb").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME"}).AddRow("orders").AddRow("users"))
	mock.ExpectQuery(d.ColumnsQuery()).
		WithArgs("testdb", "orders").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "COLUMN_TYPE", "EXTRA"}).AddRow("id", "int", ""))
	mock.ExpectQuery(d.ColumnsQuery()).
		WithArgs("testdb", "users").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "COLUMN_TYPE", "EXTRA"}).AddRow("id", "int", ""))

	out, err := dp.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "orders\nusers", out)
}

func TestListColumns_MissingTable(t *testing.T) {
	t.Parallel()

	dp, d, mock := newTestDispatcher(t, "mysql")

	mock.ExpectQuery(d.ColumnsQuery()).
		WithArgs("testdb", "ghost").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "COLUMN_TYPE", "EXTRA"}))

	// An absent table is an empty listing, not an error.
	out, err := dp.ListColumns(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Contains(t, out, "no columns found")
}

func TestDescribeTable_MissingTable(t *testing.T) {
	t.Parallel()

	dp, d, mock := newTestDispatcher(t, "mysql")

	mock.ExpectQuery(d.ColumnsQuery()).
		WithArgs("testdb", "ghost").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "COLUMN_TYPE", "EXTRA"}))

	_, err := dp.DescribeTable(context.Background(), "ghost")
	assert.ErrorIs(t, err, ops.ErrNotFound)
}

func TestCreateTable(t *testing.T) {
	t.Parallel()

	dp, d, mock := newTestDispatcher(t, "mysql")

	cols := []statement.ColumnDef{
		{Name: "id", Type: "INT PRIMARY KEY"},
		{Name: "name", Type: "VARCHAR(100)"},
	}

	mock.ExpectQuery(d.ColumnsQuery()).
		WithArgs("testdb", "products").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "COLUMN_TYPE", "EXTRA"}))
	mock.ExpectExec("CREATE TABLE `products` (`id` INT PRIMARY KEY, `name` VARCHAR(100))").
		WillReturnResult(sqlmock.NewResult(0, 0))

	out, err := dp.CreateTable(context.Background(), "products", cols)
	require.NoError(t, err)
	assert.Equal(t, `Table "products" created successfully.`, out)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTable_AlreadyExists(t *testing.T) {
	t.Parallel()

	dp, d, mock := newTestDispatcher(t, "mysql")

	// The existence probe finds columns; no DDL may be issued.
	mock.ExpectQuery(d.ColumnsQuery()).
		WithArgs("testdb", "products").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "COLUMN_TYPE", "EXTRA"}).AddRow("id", "int", "auto_increment"))

	out, err := dp.CreateTable(context.Background(), "products", []statement.ColumnDef{{Name: "id", Type: "INT"}})
	require.NoError(t, err)
	assert.Equal(t, `Table "products" already exists.`, out)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCrud_Update(t *testing.T) {
	t.Parallel()

	dp, _, mock := newTestDispatcher(t, "postgres")

	mock.ExpectExec(`UPDATE "customers" SET "email" = $1 WHERE "id" = $2`).
		WithArgs("a@b.com", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	out, err := dp.Crud(context.Background(), ops.CrudRequest{
		Table:  "customers",
		Action: "update",
		Data:   map[string]any{"email": "a@b.com"},
		Filter: map[string]any{"id": 5},
	})
	require.NoError(t, err)
	assert.Equal(t, `Updated 1 row(s) in "customers".`, out)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCrud_UpdateWithoutFilter(t *testing.T) {
	t.Parallel()

	dp, _, mock := newTestDispatcher(t, "mysql")

	_, err := dp.Crud(context.Background(), ops.CrudRequest{
		Table:  "customers",
		Action: "update",
		Data:   map[string]any{"email": "a@b.com"},
	})
	assert.ErrorIs(t, err, ops.ErrValidation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCrud_DeleteRequiresConfirmation(t *testing.T) {
	t.Parallel()

	dp, _, mock := newTestDispatcher(t, "mysql")

	req := ops.CrudRequest{
		Table:  "customers",
		Action: "delete",
		Filter: map[string]any{"id": 5},
	}

	_, err := dp.Crud(context.Background(), req)
	assert.ErrorIs(t, err, ops.ErrUnsafeQuery)

	req.Confirm = "Delete From customers"
	_, err = dp.Crud(context.Background(), req)
	assert.ErrorIs(t, err, ops.ErrUnsafeQuery)

	mock.ExpectExec("DELETE FROM `customers` WHERE `id` = ?").
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req.Confirm = "delete from customers"
	out, err := dp.Crud(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, `Deleted 1 row(s) from "customers".`, out)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCrud_Create(t *testing.T) {
	t.Parallel()

	dp, _, mock := newTestDispatcher(t, "mysql")

	mock.ExpectExec("INSERT INTO `customers` (`email`, `name`) VALUES (?, ?)").
		WithArgs("a@b.com", "Ana").
		WillReturnResult(sqlmock.NewResult(1, 1))

	out, err := dp.Crud(context.Background(), ops.CrudRequest{
		Table:  "customers",
		Action: "create",
		Data:   map[string]any{"name": "Ana", "email": "a@b.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, `Inserted 1 row(s) into "customers".`, out)
}

func TestCrud_UnknownAction(t *testing.T) {
	t.Parallel()

	dp, _, _ := newTestDispatcher(t, "mysql")

	_, err := dp.Crud(context.Background(), ops.CrudRequest{Table: "t", Action: "upsert"})
	assert.ErrorIs(t, err, ops.ErrValidation)
}

func TestIdentifierWithQuoteCharRejected(t *testing.T) {
	t.Parallel()

	dp, _, mock := newTestDispatcher(t, "mysql")

	_, err := dp.ListColumns(context.Background(), "users` --")
	assert.ErrorIs(t, err, ops.ErrValidation)

	_, err = dp.Crud(context.Background(), ops.CrudRequest{
		Table:  "users",
		Action: "read",
		Filter: map[string]any{"id` = 1 OR `1": 1},
	})
	assert.ErrorIs(t, err, ops.ErrValidation)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDropTable(t *testing.T) {
	t.Parallel()

	dp, _, mock := newTestDispatcher(t, "postgres")

	_, err := dp.DropTable(context.Background(), "users", "drop table orders")
	assert.ErrorIs(t, err, ops.ErrUnsafeQuery)

	mock.ExpectExec(`DROP TABLE "users"`).WillReturnResult(sqlmock.NewResult(0, 0))

	out, err := dp.DropTable(context.Background(), "users", "drop table users")
	require.NoError(t, err)
	assert.Equal(t, `Table "users" dropped.`, out)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChangeColumnType(t *testing.T) {
	t.Parallel()

	dp, _, mock := newTestDispatcher(t, "postgres")

	_, err := dp.ChangeColumnType(context.Background(), "users", "age", "BIGINT", "")
	assert.ErrorIs(t, err, ops.ErrUnsafeQuery)

	mock.ExpectExec(`ALTER TABLE "users" ALTER COLUMN "age" TYPE BIGINT`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	out, err := dp.ChangeColumnType(context.Background(), "users", "age", "BIGINT",
		"change type of users.age to BIGINT")
	require.NoError(t, err)
	assert.Contains(t, out, "changed to type BIGINT")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRenameColumn_MysqlNeedsType(t *testing.T) {
	t.Parallel()

	dp, _, mock := newTestDispatcher(t, "mysql")

	_, err := dp.RenameColumn(context.Background(), "users", "mail", "email", "")
	assert.ErrorIs(t, err, ops.ErrValidation)

	mock.ExpectExec("ALTER TABLE `users` CHANGE `mail` `email` VARCHAR(120)").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = dp.RenameColumn(context.Background(), "users", "mail", "email", "VARCHAR(120)")
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddForeignKey_DefaultName(t *testing.T) {
	t.Parallel()

	dp, _, mock := newTestDispatcher(t, "mysql")

	mock.ExpectExec("ALTER TABLE `orders` ADD CONSTRAINT `fk_orders_customers` FOREIGN KEY (`customer_id`) REFERENCES `customers` (`id`) ON DELETE CASCADE").
		WillReturnResult(sqlmock.NewResult(0, 0))

	out, err := dp.AddForeignKey(context.Background(), "orders", "",
		[]string{"customer_id"}, "customers", []string{"id"}, "CASCADE", "")
	require.NoError(t, err)
	assert.Contains(t, out, "fk_orders_customers")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddForeignKey_ColumnCountMismatch(t *testing.T) {
	t.Parallel()

	dp, _, _ := newTestDispatcher(t, "mysql")

	_, err := dp.AddForeignKey(context.Background(), "orders", "",
		[]string{"a", "b"}, "customers", []string{"id"}, "", "")
	assert.ErrorIs(t, err, ops.ErrValidation)
}
