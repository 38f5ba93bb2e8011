package memory

import (
	"context"
	"testing"
	"time"

	"finbot/internal/core"
)

func TestAppendTransaction(t *testing.T) {
	s := New()

	ref, err := s.AppendTransaction(context.Background(), core.Transaction{
		User:     "alice",
		Type:     core.Expense,
		Amount:   core.Money{Cents: 1000},
		Category: "Dining",
		Date:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil || ref != "mem:1" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}
	if rows := s.Rows(); len(rows) != 1 || rows[0].Category != "Dining" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestAppendTransactionRejectsInvalid(t *testing.T) {
	s := New()
	_, err := s.AppendTransaction(context.Background(), core.Transaction{User: "alice"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if len(s.Rows()) != 0 {
		t.Fatalf("invalid row must not be stored")
	}
}
