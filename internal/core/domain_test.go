package core

import (
	"errors"
	"testing"
)

func validRecord() TransactionRecord {
	return TransactionRecord{
		Type:     Expense,
		Amount:   Dec("45000"),
		Date:     "2024-03-09",
		Concept:  "Supermercado",
		Category: "supermercado",
		RawText:  "gasté $45000 en el super",
	}
}

func TestTransactionRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TransactionRecord)
		wantErr error
	}{
		{"valid", func(*TransactionRecord) {}, nil},
		{"nil amount is valid", func(r *TransactionRecord) { r.Amount = nil }, nil},
		{"income type", func(r *TransactionRecord) { r.Type = Income }, nil},
		{"bad type", func(r *TransactionRecord) { r.Type = "transfer" }, ErrInvalidType},
		{"bad date", func(r *TransactionRecord) { r.Date = "09/03/2024" }, ErrInvalidDate},
		{"empty date", func(r *TransactionRecord) { r.Date = "" }, ErrInvalidDate},
		{"blank concept", func(r *TransactionRecord) { r.Concept = "  " }, ErrEmptyConcept},
		{"blank category", func(r *TransactionRecord) { r.Category = "" }, ErrEmptyCategory},
		{"amount with comma", func(r *TransactionRecord) { r.Amount = Dec("450,50") }, ErrInvalidAmount},
		{"amount with currency", func(r *TransactionRecord) { r.Amount = Dec("$450") }, ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)
			if err := rec.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFixedEntry_Validate(t *testing.T) {
	valid := FixedEntry{
		Description: "Alquiler",
		Amount:      "250000",
		Category:    "vivienda",
		Every:       Monthly,
		StartDate:   "2024-01-05",
	}

	tests := []struct {
		name    string
		mutate  func(*FixedEntry)
		wantErr error
	}{
		{"valid", func(*FixedEntry) {}, nil},
		{"blank description", func(f *FixedEntry) { f.Description = " " }, ErrEmptyConcept},
		{"empty amount", func(f *FixedEntry) { f.Amount = "" }, ErrInvalidAmount},
		{"blank category", func(f *FixedEntry) { f.Category = "" }, ErrEmptyCategory},
		{"bad frequency", func(f *FixedEntry) { f.Every = "fortnightly" }, ErrInvalidFrequency},
		{"bad start date", func(f *FixedEntry) { f.StartDate = "05/01/2024" }, ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := valid
			tt.mutate(&entry)
			if err := entry.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransactionRecord_HasAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount *string
		want   bool
	}{
		{"present", Dec("100"), true},
		{"empty string", Dec(""), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := TransactionRecord{Amount: tt.amount}
			if got := rec.HasAmount(); got != tt.want {
				t.Errorf("HasAmount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"45000", true},
		{"450.50", true},
		{"1.234.567", true},
		{"", false},
		{"450,50", false},
		{"$450", false},
		{"abc", false},
		{".5", false},
		{"45.", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ValidDecimal(tt.in); got != tt.want {
				t.Errorf("ValidDecimal(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
