package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Type = "income"
	Expense Type = "expense"
)

type (
	// Type is the kind of a transaction: income or expense.
	Type string

	// Transaction is a single recorded income or expense event.
	// The ledger is append-only: a transaction is never updated or deleted.
	Transaction struct {
		ID       int64
		User     string
		Type     Type
		Amount   Money
		Category string
		Date     time.Time
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyUser     = errors.New("empty user")
	ErrEmptyCategory = errors.New("empty category")
)

// ParseType parses a transaction type string.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case Income, Expense:
		return Type(s), nil
	default:
		return "", ErrInvalidType
	}
}

func (t Type) Valid() bool {
	return t == Income || t == Expense
}

func (tx Transaction) Validate() error {
	if strings.TrimSpace(tx.User) == "" {
		return ErrEmptyUser
	}
	if !tx.Type.Valid() {
		return ErrInvalidType
	}
	if tx.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	if tx.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}
