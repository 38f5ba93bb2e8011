package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finbot/internal/core"
)

type (
	// Store is the ledger persistence surface the service needs.
	Store interface {
		Record(ctx context.Context, user string, typ core.Type, amount core.Money, category string) (core.Transaction, error)
		ListByUserAndType(ctx context.Context, user string, typ core.Type) ([]core.Transaction, error)
		TransactionsInRange(ctx context.Context, start, end time.Time) ([]core.Transaction, error)
		SumByTypeInRange(ctx context.Context, start, end time.Time) (core.DateTotals, error)
		GroupedByTypeAndCategory(ctx context.Context) ([]core.CategoryTotal, error)
		Close() error
	}

	// SyncPublisher queues a recorded transaction for export. Nil
	// disables the export pipeline.
	SyncPublisher interface {
		PublishTransactionSync(ctx context.Context, id int64) error
		Close() error
	}
)

// LedgerService orchestrates ledger writes across SQLite and AMQP.
// Reads pass straight through to the store.
type LedgerService struct {
	store     Store
	publisher SyncPublisher
}

func NewLedgerService(store Store, publisher SyncPublisher) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
	}
}

// Record persists the transaction, then queues it for spreadsheet
// export. A publish failure is logged but never fails the command; the
// row is already durable.
func (s *LedgerService) Record(ctx context.Context, user string, typ core.Type, amount core.Money, category string) (core.Transaction, error) {
	tx, err := s.store.Record(ctx, user, typ, amount, category)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("record transaction: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishTransactionSync(ctx, tx.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to publish sync message",
				"id", tx.ID, "error", err)
		}
	}

	return tx, nil
}

func (s *LedgerService) ListByUserAndType(ctx context.Context, user string, typ core.Type) ([]core.Transaction, error) {
	return s.store.ListByUserAndType(ctx, user, typ)
}

func (s *LedgerService) TransactionsInRange(ctx context.Context, start, end time.Time) ([]core.Transaction, error) {
	return s.store.TransactionsInRange(ctx, start, end)
}

func (s *LedgerService) SumByTypeInRange(ctx context.Context, start, end time.Time) (core.DateTotals, error) {
	return s.store.SumByTypeInRange(ctx, start, end)
}

func (s *LedgerService) GroupedByTypeAndCategory(ctx context.Context) ([]core.CategoryTotal, error) {
	return s.store.GroupedByTypeAndCategory(ctx)
}

// Close closes both the store and the AMQP connection.
func (s *LedgerService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}
	return nil
}
