package extract

import (
	"testing"

	"gastobot/internal/lexicon"
)

func TestAmount(t *testing.T) {
	lex := lexicon.Default()

	tests := []struct {
		name string
		text string
		want string // "" means no amount
	}{
		{"currency symbol before", "Gasté $45000 en el supermercado ayer", "45000"},
		{"currency symbol with space", "pagamos $ 1200 de luz", "1200"},
		{"pesos suffix", "compré 300 pesos de pan", "300"},
		{"currency symbol after", "450,50 $ la entrada", "450.50"},
		{"currency code suffix", "recibí 1200 usd por el proyecto", "1200"},
		{"verb followed by number", "pagué 800 en el kiosco", "800"},
		{"number before preposition", "500 en juguetes", "500"},
		{"comma becomes decimal point", "$45,99 de helado", "45.99"},
		{"thousands dot preserved", "$1.234,56 en muebles", "1.234.56"},
		{"no amount", "no hay nada con plata acá", ""},
		{"bare number is not an amount", "vinieron 4 personas", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Amount(lex, tt.text)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("Amount(%q) = %q, want nil", tt.text, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Amount(%q) = nil, want %q", tt.text, tt.want)
			}
			if *got != tt.want {
				t.Errorf("Amount(%q) = %q, want %q", tt.text, *got, tt.want)
			}
		})
	}
}

func TestAmount_ChainPriority(t *testing.T) {
	lex := lexicon.Default()

	// The currency-symbol pattern outranks the number-before-preposition
	// pattern even when the latter matches earlier in the text.
	got := Amount(lex, "500 en el super, total $200")
	if got == nil || *got != "200" {
		t.Fatalf("Amount() = %v, want 200", got)
	}
}

func TestReceiptTotal(t *testing.T) {
	lex := lexicon.Default()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"labeled total wins over subtotal", "SUBTOTAL $ 21.000\nTOTAL $ 23.500", "23.500"},
		{"importe label", "IMPORTE: 1.500", "1.500"},
		{"total label before bare amounts", "Leche $ 3.200\nTOTAL $ 23.500", "23.500"},
		{"bare currency fallback", "cosas $ 800", "800"},
		{"no amount", "gracias por su compra", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReceiptTotal(lex, tt.text)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("ReceiptTotal(%q) = %q, want nil", tt.text, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ReceiptTotal(%q) = nil, want %q", tt.text, tt.want)
			}
			if *got != tt.want {
				t.Errorf("ReceiptTotal(%q) = %q, want %q", tt.text, *got, tt.want)
			}
		})
	}
}

func TestNormalizeDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"45000", "45000"},
		{"45,50", "45.50"},
		{"1.234,56", "1.234.56"},
		{"1,2,3", "1.2,3"}, // only the first comma is the decimal point
	}

	for _, tt := range tests {
		if got := NormalizeDecimal(tt.in); got != tt.want {
			t.Errorf("NormalizeDecimal(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
