package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"jeopsu/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists the receipt collection in a local SQLite
// database. Save replaces all rows in one transaction; the stored position
// column preserves the register's newest-first ordering exactly.
type SQLiteRepository struct {
	db *sql.DB
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

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context) ([]core.ReceiptItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, date, customer, issue, qty, etc, status, done_date,
		       dev_period, dev_cost, dev_due, created_at
		FROM receipts ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query receipts: %w", err)
	}
	defer rows.Close()

	items := []core.ReceiptItem{}
	for rows.Next() {
		var it core.ReceiptItem
		if err := rows.Scan(&it.ID, &it.Type, &it.Date, &it.Customer, &it.Issue,
			&it.Qty, &it.Etc, &it.Status, &it.DoneDate,
			&it.DevPeriod, &it.DevCost, &it.DevDue, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate receipts: %w", err)
	}

	slog.InfoContext(ctx, "Loaded receipts from sqlite", "count", len(items))
	return items, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, items []core.ReceiptItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM receipts`); err != nil {
		return fmt.Errorf("clear receipts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO receipts (id, type, date, customer, issue, qty, etc, status,
		                      done_date, dev_period, dev_cost, dev_due, created_at, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, it := range items {
		if _, err := stmt.ExecContext(ctx, it.ID, it.Type, it.Date, it.Customer, it.Issue,
			it.Qty, it.Etc, it.Status, it.DoneDate,
			it.DevPeriod, it.DevCost, it.DevDue, it.CreatedAt, i); err != nil {
			return fmt.Errorf("insert receipt %s: %w", it.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.DebugContext(ctx, "Saved receipts to sqlite", "count", len(items))
	return nil
}
