package ops_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"db-bridge/internal/ops"
)

func TestSeedTable(t *testing.T) {
	t.Parallel()

	dp, d, mock := newTestDispatcher(t, "mysql")

	mock.ExpectQuery(d.ColumnsQuery()).
		WithArgs("testdb", "items").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "COLUMN_TYPE", "EXTRA"}).
			AddRow("id", "int", "").
			AddRow("name", "varchar(20)", ""))
	mock.ExpectExec("INSERT INTO `items` (`id`, `name`) VALUES (?, ?)").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `items` (`id`, `name`) VALUES (?, ?)").
		WillReturnResult(sqlmock.NewResult(2, 1))

	out, err := dp.SeedTable(context.Background(), "items", 2)
	require.NoError(t, err)
	assert.Equal(t, `Seeded 2 row(s) into "items".`, out)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedTable_SkipsAutoIncrementColumn(t *testing.T) {
	t.Parallel()

	dp, d, mock := newTestDispatcher(t, "mysql")

	// The auto_increment id takes an engine-generated value, so the insert
	// carries only the remaining columns.
	mock.ExpectQuery(d.ColumnsQuery()).
		WithArgs("testdb", "items").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "COLUMN_TYPE", "EXTRA"}).
			AddRow("id", "int", "auto_increment").
			AddRow("name", "varchar(20)", ""))
	mock.ExpectExec("INSERT INTO `items` (`name`) VALUES (?)").
		WillReturnResult(sqlmock.NewResult(1, 1))

	out, err := dp.SeedTable(context.Background(), "items", 1)
	require.NoError(t, err)
	assert.Equal(t, `Seeded 1 row(s) into "items".`, out)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedTable_SkipsSerialColumn(t *testing.T) {
	t.Parallel()

	dp, d, mock := newTestDispatcher(t, "postgres")

	// Postgres serial columns surface as a nextval(...) default.
	mock.ExpectQuery(d.ColumnsQuery()).
		WithArgs("public", "items").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "column_default"}).
			AddRow("id", "integer", "nextval('items_id_seq'::regclass)").
			AddRow("name", "character varying(20)", ""))
	mock.ExpectExec(`INSERT INTO "items" ("name") VALUES ($1)`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	out, err := dp.SeedTable(context.Background(), "items", 1)
	require.NoError(t, err)
	assert.Equal(t, `Seeded 1 row(s) into "items".`, out)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedTable_OnlyAutoGeneratedColumns(t *testing.T) {
	t.Parallel()

	dp, d, mock := newTestDispatcher(t, "mysql")

	mock.ExpectQuery(d.ColumnsQuery()).
		WithArgs("testdb", "counters").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "COLUMN_TYPE", "EXTRA"}).
			AddRow("id", "int", "auto_increment"))

	_, err := dp.SeedTable(context.Background(), "counters", 3)
	assert.ErrorIs(t, err, ops.ErrValidation)
	assert.Contains(t, err.Error(), "auto-generated")
}

func TestSeedTable_MissingTable(t *testing.T) {
	t.Parallel()

	dp, d, mock := newTestDispatcher(t, "mysql")

	mock.ExpectQuery(d.ColumnsQuery()).
		WithArgs("testdb", "ghost").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "COLUMN_TYPE", "EXTRA"}))

	_, err := dp.SeedTable(context.Background(), "ghost", 5)
	assert.ErrorIs(t, err, ops.ErrNotFound)
}

func TestSeedTable_InvalidCount(t *testing.T) {
	t.Parallel()

	dp, _, _ := newTestDispatcher(t, "mysql")

	_, err := dp.SeedTable(context.Background(), "items", 0)
	assert.ErrorIs(t, err, ops.ErrValidation)

	_, err = dp.SeedTable(context.Background(), "items", -3)
	assert.ErrorIs(t, err, ops.ErrValidation)
}
