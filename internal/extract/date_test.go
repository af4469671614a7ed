package extract

import (
	"testing"
	"time"

	"gastobot/internal/lexicon"
)

func TestDate(t *testing.T) {
	lex := lexicon.Default()
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"anchored day/month", "gasté $500 el 15/3", "2024-03-15"},
		{"anchored full date", "pagué $200 del 15/03/2023", "2023-03-15"},
		{"anchored with dash", "fecha 5-2", "2024-02-05"},
		{"two digit year below 50", "el 5/2/24", "2024-02-05"},
		{"two digit year above 50", "el 5/2/99", "1999-02-05"},
		{"impossible date falls back", "el 31/2/2024 compré algo", "2024-03-10"},
		{"yesterday", "gasté $45000 ayer", "2024-03-09"},
		{"today", "compré $300 hoy", "2024-03-10"},
		{"day before yesterday", "pagué $100 anteayer", "2024-03-08"},
		{"day before yesterday spelled out", "pagué $100 antes de ayer", "2024-03-08"},
		{"anchored beats relative", "el 15/3 compré lo de ayer", "2024-03-15"},
		{"no date mention", "gasté $500 en el cine", "2024-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Date(lex, tt.text, now); got != tt.want {
				t.Errorf("Date(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDate_RelativeAcrossMonthBoundary(t *testing.T) {
	lex := lexicon.Default()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	if got := Date(lex, "gasté $500 ayer", now); got != "2024-02-29" {
		t.Errorf("Date() = %q, want 2024-02-29", got)
	}
}

func TestReceiptDate(t *testing.T) {
	lex := lexicon.Default()
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"year first layout", "FECHA: 2024/03/05", "2024-03-05"},
		{"day first layout", "Fecha 05-03-24", "2024-03-05"},
		{"day first with full year", "fecha: 05/03/2024", "2024-03-05"},
		{"garbage date falls back to now", "fecha: 99/99/99", "2024-03-10"},
		{"no label falls back to free-form", "TOTAL $ 500\ncompra de ayer", "2024-03-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReceiptDate(lex, tt.text, now); got != tt.want {
				t.Errorf("ReceiptDate(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalizeYear(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{24, 2024},
		{0, 2000},
		{49, 2049},
		{50, 1950},
		{99, 1999},
		{2024, 2024},
	}

	for _, tt := range tests {
		if got := normalizeYear(tt.in); got != tt.want {
			t.Errorf("normalizeYear(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
