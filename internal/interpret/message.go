// Package interpret assembles TransactionRecords from chat messages and
// receipt OCR text by running the extractors independently over the same raw
// input.
package interpret

import (
	"errors"
	"strings"
	"time"

	"gastobot/internal/classify"
	"gastobot/internal/core"
	"gastobot/internal/extract"
	"gastobot/internal/lexicon"
)

var (
	// ErrAmountNotFound marks a chat message without a usable amount. It
	// is surfaced to the user as a request for clarification, not a hard
	// failure: the partially filled record is still returned.
	ErrAmountNotFound = errors.New("no amount found in message")

	// ErrNoCategoryMatch marks a budget update whose category name could
	// not be fuzzy-matched to any configured category.
	ErrNoCategoryMatch = errors.New("no category matches the given name")
)

// MessageInterpreter turns free-text chat messages into transaction records.
type MessageInterpreter struct {
	lex *lexicon.Lexicon
}

func NewMessageInterpreter(lex *lexicon.Lexicon) *MessageInterpreter {
	return &MessageInterpreter{lex: lex}
}

// Interpret runs amount, date, concept and category extraction independently
// against text and assembles a record of the given type. now is the
// processing date used for relative and fallback dates. When no amount is
// found the record is returned together with ErrAmountNotFound.
func (mi *MessageInterpreter) Interpret(text string, typ core.TransactionType, now time.Time) (core.TransactionRecord, error) {
	category := mi.lex.IncomeCategory
	if typ == core.Expense {
		category = classify.Category(mi.lex, text)
	}

	rec := core.TransactionRecord{
		Type:      typ,
		Amount:    extract.Amount(mi.lex, text),
		Date:      extract.Date(mi.lex, text, now),
		Concept:   extract.Concept(mi.lex, text, typ, category),
		Category:  category,
		RawText:   text,
		CreatedAt: now,
	}

	if !rec.HasAmount() {
		return rec, ErrAmountNotFound
	}
	return rec, nil
}

// BudgetUpdate parses a budget message ("presupuesto comida 50000") into a
// configured category key and a normalized limit. The category name left
// after removing the budget keyword and the amount is fuzzy-matched against
// every configured category (see classify.BestCategory).
func (mi *MessageInterpreter) BudgetUpdate(text string) (category, limit string, err error) {
	amount := extract.Amount(mi.lex, text)
	if amount == nil {
		return "", "", ErrAmountNotFound
	}

	name := strings.ToLower(text)
	for _, group := range mi.lex.Intents {
		if group.Intent != string(classify.IntentBudget) {
			continue
		}
		for _, kw := range group.Keywords {
			name = strings.ReplaceAll(name, strings.ToLower(kw), " ")
		}
	}
	name = stripAmountTokens(name)

	cat, ok := classify.BestCategory(mi.lex, name)
	if !ok {
		return "", "", ErrNoCategoryMatch
	}
	return cat, *amount, nil
}

// stripAmountTokens drops numeric and currency tokens, keeping only the
// words that can name a category.
func stripAmountTokens(s string) string {
	var words []string
	for _, w := range strings.Fields(s) {
		if strings.ContainsAny(w, "0123456789$") {
			continue
		}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}
