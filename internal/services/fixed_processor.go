package services

import (
	"context"
	"fmt"
	"time"

	"gastobot/internal/core"
	"gastobot/internal/log"
	"gastobot/internal/storage"
)

// FixedProcessor materializes due fixed expenses and incomes into
// transactions. It runs the whole pass as one load-modify-save so a crash
// mid-pass never leaves half the entries applied.
type FixedProcessor struct {
	store  storage.DocumentStore
	logger *log.Logger
}

func NewFixedProcessor(store storage.DocumentStore, logger *log.Logger) *FixedProcessor {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &FixedProcessor{
		store:  store,
		logger: logger.WithComponent(log.ComponentFixed),
	}
}

// ProcessDue applies every due fixed entry and returns how many transactions
// were created.
func (p *FixedProcessor) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	if p.store == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	doc, err := p.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load document: %w", err)
	}

	p.logger.InfoContext(ctx, "Processing fixed entries",
		"fixed_expenses", len(doc.FixedExpenses),
		"fixed_incomes", len(doc.FixedIncomes),
		"processing_date", now.Format(core.DateLayout))

	count := 0
	count += p.applyDue(ctx, doc, doc.FixedExpenses, core.Expense, now)
	count += p.applyDue(ctx, doc, doc.FixedIncomes, core.Income, now)

	if count == 0 {
		return 0, nil
	}

	if err := p.store.Save(ctx, doc); err != nil {
		return 0, fmt.Errorf("save document: %w", err)
	}
	return count, nil
}

// applyDue appends a transaction for each due entry in entries and stamps
// the entry's LastApplied. entries aliases a slice inside doc, so the stamp
// mutates the document that will be saved.
func (p *FixedProcessor) applyDue(ctx context.Context, doc *core.Document, entries []core.FixedEntry, typ core.TransactionType, now time.Time) int {
	count := 0
	for i := range entries {
		entry := &entries[i]

		due, err := p.isDue(*entry, now)
		if err != nil {
			p.logger.ErrorContext(ctx, "Failed to check if entry is due",
				"description", entry.Description, "error", err)
			continue
		}
		if !due {
			continue
		}

		amount := entry.Amount
		doc.Transactions = append(doc.Transactions, core.TransactionRecord{
			Type:      typ,
			Amount:    &amount,
			Date:      now.Format(core.DateLayout),
			Concept:   entry.Description,
			Category:  entry.Category,
			RawText:   fmt.Sprintf("fixed:%s", entry.Description),
			CreatedAt: now,
		})
		entry.LastApplied = now.Format(core.DateLayout)
		count++

		p.logger.InfoContext(ctx, "Fixed entry applied",
			"description", entry.Description,
			"type", string(typ),
			"every", string(entry.Every))
	}
	return count
}

func (p *FixedProcessor) isDue(entry core.FixedEntry, now time.Time) (bool, error) {
	checker, err := GetDuenessChecker(entry.Every)
	if err != nil {
		return false, err
	}

	var lastApplied time.Time
	if entry.LastApplied != "" {
		lastApplied, err = time.Parse(core.DateLayout, entry.LastApplied)
		if err != nil {
			return false, fmt.Errorf("parse last applied date: %w", err)
		}
	}
	startDate, err := time.Parse(core.DateLayout, entry.StartDate)
	if err != nil {
		return false, fmt.Errorf("parse start date: %w", err)
	}

	return checker.IsDue(lastApplied, now, startDate), nil
}
