package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"finbot/internal/core"

	_ "modernc.org/sqlite"
)

// dateLayout is the format transactions are stored with. Second precision
// and a fixed-length layout keep string comparison equivalent to time
// comparison for the range queries below.
const dateLayout = time.RFC3339

// SQLiteRepository is the durable, append-only ledger store.
type SQLiteRepository struct {
	db *sql.DB

	// now is overridable in tests; Record stamps rows with it.
	now func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:  db,
		now: time.Now,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Record inserts a single transaction stamped with the current UTC time
// and returns the stored row. Each write commits independently; there
// are no multi-row batches.
func (r *SQLiteRepository) Record(ctx context.Context, user string, typ core.Type, amount core.Money, category string) (core.Transaction, error) {
	tx := core.Transaction{
		User:     user,
		Type:     typ,
		Amount:   amount,
		Category: category,
		Date:     r.now().UTC().Truncate(time.Second),
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (user, type, amount_cents, category, date) VALUES (?, ?, ?, ?, ?)`,
		tx.User, string(tx.Type), tx.Amount.Cents, tx.Category, tx.Date.Format(dateLayout))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("last insert id: %w", err)
	}
	tx.ID = id

	slog.InfoContext(ctx, "Transaction recorded",
		"id", tx.ID,
		"user", tx.User,
		"type", tx.Type,
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category)

	return tx, nil
}

// ListByUserAndType returns all matching transactions in insertion order.
// An empty slice is a valid, non-error result.
func (r *SQLiteRepository) ListByUserAndType(ctx context.Context, user string, typ core.Type) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user, type, amount_cents, category, date
		 FROM transactions
		 WHERE user = ? AND type = ?
		 ORDER BY id`,
		user, string(typ))
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// TransactionsInRange returns transactions with date in the closed range
// [start, end], ordered by date ascending.
func (r *SQLiteRepository) TransactionsInRange(ctx context.Context, start, end time.Time) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user, type, amount_cents, category, date
		 FROM transactions
		 WHERE date >= ? AND date <= ?
		 ORDER BY date, id`,
		start.UTC().Format(dateLayout), end.UTC().Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("transactions in range: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// SumByTypeInRange sums amounts per type over the closed range
// [start, end]. A type with no rows yields zero.
func (r *SQLiteRepository) SumByTypeInRange(ctx context.Context, start, end time.Time) (core.DateTotals, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT type, COALESCE(SUM(amount_cents), 0)
		 FROM transactions
		 WHERE date >= ? AND date <= ?
		 GROUP BY type`,
		start.UTC().Format(dateLayout), end.UTC().Format(dateLayout))
	if err != nil {
		return core.DateTotals{}, fmt.Errorf("sum by type in range: %w", err)
	}
	defer rows.Close()

	var totals core.DateTotals
	for rows.Next() {
		var typ string
		var cents int64
		if err := rows.Scan(&typ, &cents); err != nil {
			return core.DateTotals{}, fmt.Errorf("scan type sum: %w", err)
		}
		switch core.Type(typ) {
		case core.Income:
			totals.Income = core.Money{Cents: cents}
		case core.Expense:
			totals.Expense = core.Money{Cents: cents}
		}
	}
	if err := rows.Err(); err != nil {
		return core.DateTotals{}, fmt.Errorf("iterate type sums: %w", err)
	}

	return totals, nil
}

// GroupedByTypeAndCategory is the full-table aggregate behind the weekly
// report: lifetime sums per (type, category), ordered by type then
// category for determinism.
func (r *SQLiteRepository) GroupedByTypeAndCategory(ctx context.Context) ([]core.CategoryTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT type, category, SUM(amount_cents)
		 FROM transactions
		 GROUP BY type, category
		 ORDER BY type, category`)
	if err != nil {
		return nil, fmt.Errorf("group by type and category: %w", err)
	}
	defer rows.Close()

	var totals []core.CategoryTotal
	for rows.Next() {
		var ct core.CategoryTotal
		var typ string
		var cents int64
		if err := rows.Scan(&typ, &ct.Category, &cents); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		ct.Type = core.Type(typ)
		ct.Total = core.Money{Cents: cents}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category totals: %w", err)
	}

	return totals, nil
}

// GetTransaction fetches a single transaction by ID (export worker path).
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user, type, amount_cents, category, date
		 FROM transactions
		 WHERE id = ?`, id)

	tx, err := scanTransaction(row)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return tx, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var tx core.Transaction
	var typ, date string
	var cents int64
	if err := row.Scan(&tx.ID, &tx.User, &typ, &cents, &tx.Category, &date); err != nil {
		return core.Transaction{}, err
	}
	tx.Type = core.Type(typ)
	tx.Amount = core.Money{Cents: cents}

	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", date, err)
	}
	tx.Date = parsed

	return tx, nil
}

func scanTransactions(rows *sql.Rows) ([]core.Transaction, error) {
	var out []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}
