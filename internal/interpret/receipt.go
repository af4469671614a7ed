package interpret

import (
	"strings"
	"time"

	"gastobot/internal/classify"
	"gastobot/internal/core"
	"gastobot/internal/extract"
	"gastobot/internal/lexicon"
)

// ReceiptInterpreter turns OCR output into transaction records using
// receipt-specific layout heuristics: labeled totals win over incidental
// amounts, the merchant comes from the header lines, and every line with a
// trailing price becomes a line item.
type ReceiptInterpreter struct {
	lex *lexicon.Lexicon
}

func NewReceiptInterpreter(lex *lexicon.Lexicon) *ReceiptInterpreter {
	return &ReceiptInterpreter{lex: lex}
}

// Interpret builds an expense record from OCR text. Empty text or a missing
// total is not fatal: the record still materializes with a nil amount and
// the caller decides how to surface it.
func (ri *ReceiptInterpreter) Interpret(ocrText string, now time.Time) core.TransactionRecord {
	category := classify.Category(ri.lex, ocrText)

	return core.TransactionRecord{
		Type:      core.Expense,
		Amount:    extract.ReceiptTotal(ri.lex, ocrText),
		Date:      extract.ReceiptDate(ri.lex, ocrText, now),
		Concept:   extract.Merchant(ri.lex, ocrText, category),
		Category:  category,
		RawText:   ocrText,
		Items:     ri.lineItems(ocrText),
		CreatedAt: now,
	}
}

// lineItems matches a trailing price against a leading label on every
// non-empty line. Lines whose label contains a total/tax word are rejected;
// the rest are retained in order, unbounded.
func (ri *ReceiptInterpreter) lineItems(ocrText string) []core.LineItem {
	var items []core.LineItem
	for _, line := range strings.Split(ocrText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := ri.lex.LineItem.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		label := strings.TrimSpace(m[1])
		if label == "" || ri.rejectedLabel(label) {
			continue
		}
		items = append(items, core.LineItem{
			Label: label,
			Price: extract.NormalizeDecimal(m[2]),
		})
	}
	return items
}

func (ri *ReceiptInterpreter) rejectedLabel(label string) bool {
	lower := strings.ToLower(label)
	for _, w := range ri.lex.ItemRejectWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
