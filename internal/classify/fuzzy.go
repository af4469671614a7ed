package classify

import (
	"strings"

	"gastobot/internal/lexicon"
)

// BestCategory resolves a free-text category name for the budget-update flow.
// Unlike Category it scores every configured category instead of stopping at
// the first hit: the score is the longest mutual-substring containment
// between the input and either the category key or any of its keywords. The
// single highest-scoring category wins, ties keep the first found; a zero
// score everywhere reports no match.
func BestCategory(lex *lexicon.Lexicon, name string) (string, bool) {
	input := strings.ToLower(strings.TrimSpace(name))
	if input == "" {
		return "", false
	}

	best := ""
	bestScore := 0
	for _, cat := range lex.Categories {
		score := containment(input, strings.ToLower(cat.Key))
		for _, kw := range cat.Keywords {
			if s := containment(input, strings.ToLower(kw)); s > score {
				score = s
			}
		}
		if score > bestScore {
			best, bestScore = cat.Key, score
		}
	}
	if bestScore == 0 {
		return "", false
	}
	return best, true
}

// containment scores two strings by the length of the shorter one when
// either contains the other, zero otherwise.
func containment(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		if len(a) < len(b) {
			return len(a)
		}
		return len(b)
	}
	return 0
}
