// Package classify maps free text onto the closed category and intent
// enumerations. Classification is pure first-match-in-declared-order keyword
// scanning; the only scoring heuristic is the budget fuzzy match.
package classify

import (
	"strings"

	"gastobot/internal/lexicon"
)

// Category returns the key of the first configured category whose keyword
// list contains a case-insensitive substring match against the text, or the
// "other" sentinel. Declared order is the tie-break: an earlier category
// always wins even when a later one also matches.
func Category(lex *lexicon.Lexicon, text string) string {
	lower := strings.ToLower(text)
	for _, cat := range lex.Categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return cat.Key
			}
		}
	}
	return lex.OtherCategory
}
