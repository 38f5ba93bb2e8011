package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"finbot/internal/core"
)

type fakeStore struct {
	Store
	nextID int64
	rows   []core.Transaction
}

func (f *fakeStore) Record(_ context.Context, user string, typ core.Type, amount core.Money, category string) (core.Transaction, error) {
	f.nextID++
	tx := core.Transaction{
		ID:       f.nextID,
		User:     user,
		Type:     typ,
		Amount:   amount,
		Category: category,
		Date:     time.Now().UTC(),
	}
	f.rows = append(f.rows, tx)
	return tx, nil
}

func (f *fakeStore) Close() error { return nil }

type fakePublisher struct {
	published []int64
	err       error
}

func (f *fakePublisher) PublishTransactionSync(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, id)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func TestRecordPublishesSync(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{}
	svc := NewLedgerService(store, pub)

	tx, err := svc.Record(context.Background(), "alice", core.Expense, core.Money{Cents: 1000}, "Dining")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(pub.published) != 1 || pub.published[0] != tx.ID {
		t.Fatalf("expected one publish for id %d, got %v", tx.ID, pub.published)
	}
}

func TestRecordSurvivesPublishFailure(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewLedgerService(store, pub)

	tx, err := svc.Record(context.Background(), "alice", core.Income, core.Money{Cents: 5000}, "Salary")
	if err != nil {
		t.Fatalf("record must not fail on publish error: %v", err)
	}
	if tx.ID == 0 || len(store.rows) != 1 {
		t.Fatalf("transaction not stored: %+v", tx)
	}
}

func TestRecordWithoutPublisher(t *testing.T) {
	svc := NewLedgerService(&fakeStore{}, nil)
	if _, err := svc.Record(context.Background(), "alice", core.Expense, core.Money{Cents: 100}, "Dining"); err != nil {
		t.Fatalf("record without publisher: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
