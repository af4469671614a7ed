package extract

import (
	"strings"
	"unicode"

	"gastobot/internal/core"
	"gastobot/internal/lexicon"
)

// Fallback labels used when no concept can be extracted.
const (
	ConceptUnspecified    = "Sin especificar"
	ConceptVariableIncome = "Ingreso variable"
	MerchantUnidentified  = "Comercio no identificado"

	freelancePrefix = "Freelance: "
)

// Merchant name length band for receipt header lines.
const (
	merchantMinLen    = 3
	merchantMaxLen    = 40
	merchantScanLines = 5
)

// Concept extracts the counterparty/purpose string from a chat message.
// It never returns an empty string: misses fall back to a category-derived
// label or a fixed sentinel. category is the independently classified
// category for the same text (used only for the expense fallback).
func Concept(lex *lexicon.Lexicon, text string, typ core.TransactionType, category string) string {
	phrase := prepositionPhrase(lex, text)

	if typ == core.Income {
		concept := phrase
		if concept == "" {
			concept = ConceptVariableIncome
		}
		if containsAny(strings.ToLower(text), lex.IncomeMarkers) {
			concept = freelancePrefix + concept
		}
		return concept
	}

	if phrase != "" {
		return phrase
	}
	if category != "" && category != lex.OtherCategory {
		return capitalize(category)
	}
	return ConceptUnspecified
}

// Merchant extracts the merchant name from receipt OCR text: the first of
// the leading non-empty lines that is neither a total/header/tax-id line nor
// digit-led, and that fits the length band.
func Merchant(lex *lexicon.Lexicon, ocrText string, category string) string {
	seen := 0
	for _, line := range strings.Split(ocrText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seen++
		if seen > merchantScanLines {
			break
		}
		if lex.MerchantReject.MatchString(strings.ToLower(line)) {
			continue
		}
		if r := []rune(line); unicode.IsDigit(r[0]) {
			continue
		}
		if n := len([]rune(line)); n < merchantMinLen || n > merchantMaxLen {
			continue
		}
		return line
	}

	if category != "" && category != lex.OtherCategory {
		return capitalize(category)
	}
	return MerchantUnidentified
}

// prepositionPhrase scans the fixed preposition list in order and returns the
// first cleaned noun phrase, or "".
func prepositionPhrase(lex *lexicon.Lexicon, text string) string {
	for _, re := range lex.ConceptPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if phrase := cleanPhrase(lex, m[1]); phrase != "" {
			return capitalize(phrase)
		}
	}
	return ""
}

// cleanPhrase strips trailing numeric and date fragments ("ayer", "45000")
// from a captured phrase.
func cleanPhrase(lex *lexicon.Lexicon, phrase string) string {
	stop := map[string]bool{"pesos": true}
	for _, rel := range lex.RelativeDays {
		for _, w := range strings.Fields(rel.Keyword) {
			stop[w] = true
		}
	}

	words := strings.Fields(phrase)
	for len(words) > 0 {
		last := strings.ToLower(words[len(words)-1])
		if stop[last] || strings.ContainsAny(last, "0123456789") {
			words = words[:len(words)-1]
			continue
		}
		break
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
