package worker

import (
	"context"
	"fmt"
	"log/slog"

	"finbot/internal/amqp"
	"finbot/internal/core"
	"finbot/internal/sheets"
)

// TransactionGetter fetches a stored ledger row by ID.
type TransactionGetter interface {
	GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
}

// ExportWorker pushes recorded transactions to the spreadsheet as sync
// messages arrive.
type ExportWorker struct {
	store TransactionGetter
	sheet sheets.RowAppender
}

func NewExportWorker(store TransactionGetter, sheet sheets.RowAppender) *ExportWorker {
	return &ExportWorker{
		store: store,
		sheet: sheet,
	}
}

// HandleSyncMessage processes one export request: fetch the row from
// the store, append it to the sheet. Returning an error requeues the
// message.
func (w *ExportWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	tx, err := w.store.GetTransaction(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	ref, err := w.sheet.AppendTransaction(ctx, tx)
	if err != nil {
		return fmt.Errorf("append transaction to sheet: %w", err)
	}

	slog.InfoContext(ctx, "Transaction synced",
		"id", tx.ID,
		"row_ref", ref)

	return nil
}
