package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Expense TransactionType = "expense"
	Income  TransactionType = "income"
)

// DateLayout is the fixed textual form every record date is normalized to.
const DateLayout = "2006-01-02"

type (
	TransactionType string

	// LineItem is one (label, price) pair detected on a receipt line.
	LineItem struct {
		Label string `json:"label"`
		Price string `json:"price"`
	}

	// TransactionRecord is the sole output entity of the interpreters.
	// A record is assembled once per input and never mutated afterwards;
	// storage treats it as an append-only fact with no identity beyond
	// its position.
	TransactionRecord struct {
		Type      TransactionType `json:"type"`
		Amount    *string         `json:"amount"` // nil signals extraction failure
		Date      string          `json:"date"`   // always DateLayout, never empty
		Concept   string          `json:"concept"`
		Category  string          `json:"category"`
		RawText   string          `json:"raw_text"`
		Items     []LineItem      `json:"items,omitempty"`
		CreatedAt time.Time       `json:"created_at"`
	}

	// FixedEntry is a recurring expense or income template. Due entries
	// are materialized into transactions by the fixed-entry processor.
	FixedEntry struct {
		Description string    `json:"description"`
		Amount      string    `json:"amount"`
		Category    string    `json:"category"`
		Every       Frequency `json:"every"`
		StartDate   string    `json:"start_date"`
		LastApplied string    `json:"last_applied,omitempty"`
	}

	// FinancialGoal is a savings target captured from a goal message.
	FinancialGoal struct {
		Name      string    `json:"name"`
		Target    string    `json:"target"`
		CreatedAt time.Time `json:"created_at"`
	}

	// Document is the whole persisted state, loaded and saved as one unit.
	Document struct {
		Transactions   []TransactionRecord `json:"transactions"`
		FixedExpenses  []FixedEntry        `json:"fixed_expenses"`
		FixedIncomes   []FixedEntry        `json:"fixed_incomes"`
		FinancialGoals []FinancialGoal     `json:"financial_goals"`
		Budget         map[string]string   `json:"budget"` // category -> decimal limit
	}

	Frequency string
)

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

var (
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyConcept     = errors.New("empty concept")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidFrequency = errors.New("invalid frequency")
)

// NewDocument returns an empty document with an initialized budget map.
func NewDocument() *Document {
	return &Document{Budget: make(map[string]string)}
}

// HasAmount reports whether amount extraction produced a usable value.
// Downstream consumers must treat records without an amount as not usable.
func (r TransactionRecord) HasAmount() bool {
	return r.Amount != nil && *r.Amount != ""
}

// Validate checks the record invariants. Amount may be nil (extraction miss)
// but when present it must be a plain decimal.
func (r TransactionRecord) Validate() error {
	if r.Type != Expense && r.Type != Income {
		return ErrInvalidType
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return ErrInvalidDate
	}
	if strings.TrimSpace(r.Concept) == "" {
		return ErrEmptyConcept
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if r.Amount != nil && !ValidDecimal(*r.Amount) {
		return ErrInvalidAmount
	}
	return nil
}

func (f FixedEntry) Validate() error {
	if strings.TrimSpace(f.Description) == "" {
		return ErrEmptyConcept
	}
	if !ValidDecimal(f.Amount) {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(f.Category) == "" {
		return ErrEmptyCategory
	}
	switch f.Every {
	case Daily, Weekly, Monthly, Yearly:
	default:
		return ErrInvalidFrequency
	}
	if _, err := time.Parse(DateLayout, f.StartDate); err != nil {
		return ErrInvalidDate
	}
	return nil
}
