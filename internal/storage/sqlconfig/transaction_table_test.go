package sqlconfig

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedStatement struct {
	query string
	args  []any
}

// recordingExecutor captures statements instead of sending them to MySQL.
// Queries return no rows.
type recordingExecutor struct {
	statements []recordedStatement
}

func (r *recordingExecutor) QueryContext(ctx context.Context, query string, args ...any) (scan.Rows, error) {
	r.statements = append(r.statements, recordedStatement{query: query, args: args})
	return emptyRows{}, nil
}

func (r *recordingExecutor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	r.statements = append(r.statements, recordedStatement{query: query, args: args})
	return driverResult(0), nil
}

func (r *recordingExecutor) last(t *testing.T) recordedStatement {
	t.Helper()
	require.NotEmpty(t, r.statements)
	return r.statements[len(r.statements)-1]
}

type emptyRows struct{}

func (emptyRows) Scan(...any) error          { return nil }
func (emptyRows) Columns() ([]string, error) { return []string{"id", "amount", "description"}, nil }
func (emptyRows) Next() bool                 { return false }
func (emptyRows) Close() error               { return nil }
func (emptyRows) Err() error                 { return nil }

type driverResult int64

func (r driverResult) LastInsertId() (int64, error) { return 0, nil }
func (r driverResult) RowsAffected() (int64, error) { return int64(r), nil }

func newRecordingTable() (*TransactionsTable, *recordingExecutor) {
	exec := &recordingExecutor{}
	return &TransactionsTable{exec: exec}, exec
}

// normalizeSQL collapses the builder's line breaks so statements compare on one line.
func normalizeSQL(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

func TestTransactionsTable_Insert(t *testing.T) {
	table, exec := newRecordingTable()

	err := table.Insert(context.Background(), &TransactionCreate{
		Amount:      decimal.RequireFromString("12.5"),
		Description: "Books",
	})
	require.NoError(t, err)

	stmt := exec.last(t)
	assert.Equal(t, "INSERT INTO transactions(`amount`, `description`) VALUES (?, ?)", normalizeSQL(stmt.query))
	require.Len(t, stmt.args, 2)
	assert.True(t, decimal.RequireFromString("12.5").Equal(stmt.args[0].(decimal.Decimal)))
	assert.Equal(t, "Books", stmt.args[1])
}

func TestTransactionsTable_List(t *testing.T) {
	table, exec := newRecordingTable()

	rows, err := table.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)

	stmt := exec.last(t)
	assert.Equal(t, "SELECT id, amount, description FROM transactions", normalizeSQL(stmt.query))
	assert.Empty(t, stmt.args)
}

func TestTransactionsTable_FindByID(t *testing.T) {
	table, exec := newRecordingTable()

	row, err := table.FindByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, row)

	stmt := exec.last(t)
	assert.Equal(t, "SELECT id, amount, description FROM transactions WHERE (`id` = ?)", normalizeSQL(stmt.query))
	assert.Equal(t, []any{int64(7)}, stmt.args)
}

func TestTransactionsTable_UpdateByID(t *testing.T) {
	table, exec := newRecordingTable()

	err := table.UpdateByID(context.Background(), 7, &TransactionUpdate{
		Amount:      decimal.RequireFromString("1"),
		Description: "x",
	})
	require.NoError(t, err)

	stmt := exec.last(t)
	assert.Equal(t, "UPDATE transactions SET `amount` = ?, `description` = ? WHERE (`id` = ?)", normalizeSQL(stmt.query))
	require.Len(t, stmt.args, 3)
	assert.True(t, decimal.RequireFromString("1").Equal(stmt.args[0].(decimal.Decimal)))
	assert.Equal(t, "x", stmt.args[1])
	assert.Equal(t, int64(7), stmt.args[2])
}

func TestTransactionsTable_DeleteByID(t *testing.T) {
	table, exec := newRecordingTable()

	require.NoError(t, table.DeleteByID(context.Background(), 42))

	stmt := exec.last(t)
	assert.Equal(t, "DELETE FROM transactions WHERE (`id` = ?)", normalizeSQL(stmt.query))
	assert.Equal(t, []any{int64(42)}, stmt.args)
}

func TestTransactionsTable_DeleteAll(t *testing.T) {
	table, exec := newRecordingTable()

	require.NoError(t, table.DeleteAll(context.Background()))

	stmt := exec.last(t)
	assert.Equal(t, "DELETE FROM transactions", normalizeSQL(stmt.query))
	assert.Empty(t, stmt.args)
}

// Caller text only ever reaches MySQL as a bound argument.
func TestTransactionsTable_DescriptionIsBound(t *testing.T) {
	table, exec := newRecordingTable()
	desc := "x'); DROP TABLE transactions; --"

	require.NoError(t, table.Insert(context.Background(), &TransactionCreate{
		Amount:      decimal.RequireFromString("1"),
		Description: desc,
	}))

	stmt := exec.last(t)
	assert.NotContains(t, stmt.query, "DROP")
	assert.Contains(t, stmt.args, desc)
}
