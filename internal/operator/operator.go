package operator

import (
	"context"

	"github.com/carson-networks/transaction-server/internal/metrics"
	"github.com/carson-networks/transaction-server/internal/operator/actions"
	"github.com/carson-networks/transaction-server/internal/storage/sqlconfig"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	table sqlconfig.ITransactionTable
	queue chan ActionItem
	done  chan struct{}
}

func NewOperator(table sqlconfig.ITransactionTable, queue chan ActionItem, done chan struct{}) *Operator {
	return &Operator{
		table: table,
		queue: queue,
		done:  done,
	}
}

// Run listens to the queue and processes items. Exits when done is closed.
func (o *Operator) Run() {
	for {
		select {
		case item := <-o.queue:
			o.processItem(item)
		case <-o.done:
			return
		}
	}
}

func (o *Operator) processItem(item ActionItem) {
	// The caller may have given up while the item sat in the queue.
	if err := item.ctx.Err(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	err := item.action.Perform(item.ctx, o.table)
	metrics.ObserveStore(item.action.Name(), err)
	item.response <- ActionItemResponse{err: err}
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
