package interpret

import (
	"errors"
	"testing"
	"time"

	"gastobot/internal/core"
	"gastobot/internal/lexicon"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestMessageInterpreter_Interpret_Expense(t *testing.T) {
	mi := NewMessageInterpreter(lexicon.Default())

	rec, err := mi.Interpret("Gasté $45000 en el supermercado ayer", core.Expense, testNow)
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}

	if rec.Type != core.Expense {
		t.Errorf("Type = %q, want expense", rec.Type)
	}
	if rec.Amount == nil || *rec.Amount != "45000" {
		t.Errorf("Amount = %v, want 45000", rec.Amount)
	}
	if rec.Date != "2024-03-09" {
		t.Errorf("Date = %q, want 2024-03-09", rec.Date)
	}
	if rec.Concept != "Supermercado" {
		t.Errorf("Concept = %q, want Supermercado", rec.Concept)
	}
	if rec.Category != "supermercado" {
		t.Errorf("Category = %q, want supermercado", rec.Category)
	}
	if rec.RawText != "Gasté $45000 en el supermercado ayer" {
		t.Errorf("RawText = %q, want the original message", rec.RawText)
	}
	if !rec.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, want %v", rec.CreatedAt, testNow)
	}
	if err := rec.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestMessageInterpreter_Interpret_Income(t *testing.T) {
	mi := NewMessageInterpreter(lexicon.Default())

	rec, err := mi.Interpret("Cobré $80000 de sueldo", core.Income, testNow)
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}

	if rec.Type != core.Income {
		t.Errorf("Type = %q, want income", rec.Type)
	}
	if rec.Amount == nil || *rec.Amount != "80000" {
		t.Errorf("Amount = %v, want 80000", rec.Amount)
	}
	if rec.Category != "ingreso" {
		t.Errorf("Category = %q, want ingreso", rec.Category)
	}
	if rec.Concept != "Sueldo" {
		t.Errorf("Concept = %q, want Sueldo", rec.Concept)
	}
	if rec.Date != "2024-03-10" {
		t.Errorf("Date = %q, want processing date", rec.Date)
	}
}

func TestMessageInterpreter_Interpret_MissingAmount(t *testing.T) {
	mi := NewMessageInterpreter(lexicon.Default())

	rec, err := mi.Interpret("Gasté en el cine", core.Expense, testNow)
	if !errors.Is(err, ErrAmountNotFound) {
		t.Fatalf("Interpret() error = %v, want ErrAmountNotFound", err)
	}

	// The partial record is still usable for a clarification reply.
	if rec.Amount != nil {
		t.Errorf("Amount = %v, want nil", rec.Amount)
	}
	if rec.Category != "entretenimiento" {
		t.Errorf("Category = %q, want entretenimiento", rec.Category)
	}
	if rec.Date != "2024-03-10" {
		t.Errorf("Date = %q, want processing date", rec.Date)
	}
}

func TestMessageInterpreter_BudgetUpdate(t *testing.T) {
	mi := NewMessageInterpreter(lexicon.Default())

	tests := []struct {
		name         string
		text         string
		wantCategory string
		wantLimit    string
		wantErr      error
	}{
		{
			name:         "category and limit",
			text:         "presupuesto comida $50000",
			wantCategory: "comida",
			wantLimit:    "50000",
		},
		{
			name:         "limite keyword",
			text:         "límite ropa $2000",
			wantCategory: "ropa",
			wantLimit:    "2000",
		},
		{
			name:         "fuzzy category name",
			text:         "presupuesto supermercados $120000",
			wantCategory: "supermercado",
			wantLimit:    "120000",
		},
		{
			name:    "no amount",
			text:    "presupuesto comida",
			wantErr: ErrAmountNotFound,
		},
		{
			name:    "no matching category",
			text:    "presupuesto xyzzy $100",
			wantErr: ErrNoCategoryMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, limit, err := mi.BudgetUpdate(tt.text)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("BudgetUpdate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BudgetUpdate() error = %v", err)
			}
			if category != tt.wantCategory {
				t.Errorf("category = %q, want %q", category, tt.wantCategory)
			}
			if limit != tt.wantLimit {
				t.Errorf("limit = %q, want %q", limit, tt.wantLimit)
			}
		})
	}
}
