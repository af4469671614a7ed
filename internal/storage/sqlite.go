package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gastobot/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore decomposes the document into relational tables. Save rewrites
// the whole document inside one transaction, which doubles as the required
// write serialization point; the mutex additionally keeps load-before-save
// pairs from interleaving within this process.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
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

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*core.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := core.NewDocument()

	rows, err := s.db.QueryContext(ctx, `
		SELECT type, amount, date, concept, category, raw_text, items, created_at
		FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			rec       core.TransactionRecord
			typ       string
			amount    sql.NullString
			items     string
			createdAt string
		)
		if err := rows.Scan(&typ, &amount, &rec.Date, &rec.Concept, &rec.Category, &rec.RawText, &items, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		rec.Type = core.TransactionType(typ)
		if amount.Valid {
			v := amount.String
			rec.Amount = &v
		}
		if err := json.Unmarshal([]byte(items), &rec.Items); err != nil {
			return nil, fmt.Errorf("decode line items: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = t
		}
		doc.Transactions = append(doc.Transactions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	if err := s.loadFixedEntries(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.loadGoals(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.loadBudget(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *SQLiteStore) loadFixedEntries(ctx context.Context, doc *core.Document) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, description, amount, category, every, start_date, last_applied
		FROM fixed_entries ORDER BY id`)
	if err != nil {
		return fmt.Errorf("query fixed entries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var e core.FixedEntry
		var every string
		if err := rows.Scan(&kind, &e.Description, &e.Amount, &e.Category, &every, &e.StartDate, &e.LastApplied); err != nil {
			return fmt.Errorf("scan fixed entry: %w", err)
		}
		e.Every = core.Frequency(every)
		if kind == string(core.Income) {
			doc.FixedIncomes = append(doc.FixedIncomes, e)
		} else {
			doc.FixedExpenses = append(doc.FixedExpenses, e)
		}
	}
	return rows.Err()
}

func (s *SQLiteStore) loadGoals(ctx context.Context, doc *core.Document) error {
	rows, err := s.db.QueryContext(ctx, `SELECT name, target, created_at FROM financial_goals ORDER BY id`)
	if err != nil {
		return fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var g core.FinancialGoal
		var createdAt string
		if err := rows.Scan(&g.Name, &g.Target, &createdAt); err != nil {
			return fmt.Errorf("scan goal: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			g.CreatedAt = t
		}
		doc.FinancialGoals = append(doc.FinancialGoals, g)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadBudget(ctx context.Context, doc *core.Document) error {
	rows, err := s.db.QueryContext(ctx, `SELECT category, limit_amount FROM budget_limits`)
	if err != nil {
		return fmt.Errorf("query budget: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var category, limit string
		if err := rows.Scan(&category, &limit); err != nil {
			return fmt.Errorf("scan budget limit: %w", err)
		}
		doc.Budget[category] = limit
	}
	return rows.Err()
}

func (s *SQLiteStore) Save(ctx context.Context, doc *core.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"transactions", "fixed_entries", "financial_goals", "budget_limits"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, rec := range doc.Transactions {
		items, err := json.Marshal(rec.Items)
		if err != nil {
			return fmt.Errorf("encode line items: %w", err)
		}
		var amount interface{}
		if rec.Amount != nil {
			amount = *rec.Amount
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO transactions (type, amount, date, concept, category, raw_text, items, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			string(rec.Type), amount, rec.Date, rec.Concept, rec.Category,
			rec.RawText, string(items), rec.CreatedAt.Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}

	insertFixed := func(kind string, entries []core.FixedEntry) error {
		for _, e := range entries {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO fixed_entries (kind, description, amount, category, every, start_date, last_applied)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				kind, e.Description, e.Amount, e.Category, string(e.Every), e.StartDate, e.LastApplied)
			if err != nil {
				return fmt.Errorf("insert fixed entry: %w", err)
			}
		}
		return nil
	}
	if err := insertFixed(string(core.Expense), doc.FixedExpenses); err != nil {
		return err
	}
	if err := insertFixed(string(core.Income), doc.FixedIncomes); err != nil {
		return err
	}

	for _, g := range doc.FinancialGoals {
		_, err := tx.ExecContext(ctx, `INSERT INTO financial_goals (name, target, created_at) VALUES (?, ?, ?)`,
			g.Name, g.Target, g.CreatedAt.Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("insert goal: %w", err)
		}
	}

	for category, limit := range doc.Budget {
		_, err := tx.ExecContext(ctx, `INSERT INTO budget_limits (category, limit_amount) VALUES (?, ?)`,
			category, limit)
		if err != nil {
			return fmt.Errorf("insert budget limit: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	slog.DebugContext(ctx, "Document saved to SQLite",
		"transactions", len(doc.Transactions),
		"goals", len(doc.FinancialGoals),
		"budget_categories", len(doc.Budget))
	return nil
}
