package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"finbot/internal/amqp"
	"finbot/internal/core"
	"finbot/internal/sheets/memory"
)

type fakeGetter struct {
	txs map[int64]core.Transaction
}

func (f *fakeGetter) GetTransaction(_ context.Context, id int64) (core.Transaction, error) {
	tx, ok := f.txs[id]
	if !ok {
		return core.Transaction{}, errors.New("not found")
	}
	return tx, nil
}

func TestHandleSyncMessage(t *testing.T) {
	tx := core.Transaction{
		ID:       7,
		User:     "alice",
		Type:     core.Expense,
		Amount:   core.Money{Cents: 1000},
		Category: "Dining",
		Date:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	sheet := memory.New()
	w := NewExportWorker(&fakeGetter{txs: map[int64]core.Transaction{7: tx}}, sheet)

	if err := w.HandleSyncMessage(context.Background(), &amqp.TransactionSyncMessage{ID: 7}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	rows := sheet.Rows()
	if len(rows) != 1 || rows[0].ID != 7 {
		t.Fatalf("expected transaction 7 appended, got %+v", rows)
	}
}

func TestHandleSyncMessageMissingRow(t *testing.T) {
	w := NewExportWorker(&fakeGetter{}, memory.New())
	if err := w.HandleSyncMessage(context.Background(), &amqp.TransactionSyncMessage{ID: 99}); err == nil {
		t.Fatalf("expected error for missing transaction")
	}
}
