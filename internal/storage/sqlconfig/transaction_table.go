package sqlconfig

import (
	"context"
	"database/sql"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/mysql"
	"github.com/stephenafamo/bob/dialect/mysql/dm"
	"github.com/stephenafamo/bob/dialect/mysql/im"
	"github.com/stephenafamo/bob/dialect/mysql/sm"
	"github.com/stephenafamo/bob/dialect/mysql/um"
	"github.com/stephenafamo/scan"
)

var _ ITransactionTable = (*TransactionsTable)(nil)

var transactionColumns = []any{"id", "amount", "description"}

// TransactionsTable runs parameterised statements against the transactions table.
type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(db *sql.DB) *TransactionsTable {
	return &TransactionsTable{exec: bob.NewDB(db)}
}

// Insert adds one row. The generated id is not read back.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) error {
	query := mysql.Insert(
		im.Into(TransactionsTableName, "amount", "description"),
		im.Values(mysql.Arg(create.Amount, create.Description)),
	)
	_, err := bob.Exec(ctx, t.exec, query)
	return err
}

// List returns every row in storage order.
func (t *TransactionsTable) List(ctx context.Context) ([]*Transaction, error) {
	query := mysql.Select(
		sm.Columns(transactionColumns...),
		sm.From(TransactionsTableName),
	)
	return bob.All(ctx, t.exec, query, scan.StructMapper[*Transaction]())
}

// FindByID returns the matching row, or nil when there is none.
func (t *TransactionsTable) FindByID(ctx context.Context, id int64) (*Transaction, error) {
	query := mysql.Select(
		sm.Columns(transactionColumns...),
		sm.From(TransactionsTableName),
		sm.Where(mysql.Quote("id").EQ(mysql.Arg(id))),
	)
	rows, err := bob.All(ctx, t.exec, query, scan.StructMapper[*Transaction]())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// UpdateByID overwrites amount and description. Affecting zero rows is not an error.
func (t *TransactionsTable) UpdateByID(ctx context.Context, id int64, update *TransactionUpdate) error {
	query := mysql.Update(
		um.Table(TransactionsTableName),
		um.SetCol("amount").ToArg(update.Amount),
		um.SetCol("description").ToArg(update.Description),
		um.Where(mysql.Quote("id").EQ(mysql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, query)
	return err
}

// DeleteByID removes the matching row if present.
func (t *TransactionsTable) DeleteByID(ctx context.Context, id int64) error {
	query := mysql.Delete(
		dm.From(TransactionsTableName),
		dm.Where(mysql.Quote("id").EQ(mysql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, query)
	return err
}

// DeleteAll removes every row.
func (t *TransactionsTable) DeleteAll(ctx context.Context) error {
	query := mysql.Delete(dm.From(TransactionsTableName))
	_, err := bob.Exec(ctx, t.exec, query)
	return err
}
