// Package extract implements the amount, date and concept extractors. Every
// function here is total over arbitrary input text: a miss is reported as a
// nil pointer or a documented fallback value, never as an error.
package extract

import (
	"regexp"
	"strings"

	"gastobot/internal/lexicon"
)

// Amount returns the first amount-like substring matched by the lexicon's
// ordered pattern chain, or nil when nothing matches. The chain order is the
// tie-break contract: a lower-priority pattern never overrides an earlier hit.
func Amount(lex *lexicon.Lexicon, text string) *string {
	return firstAmount(lex.AmountPatterns, text)
}

// ReceiptTotal is the receipt variant: labeled totals ("TOTAL", "IMPORTE")
// are prioritized over incidental currency-symbol amounts, the reverse of the
// free-text priority.
func ReceiptTotal(lex *lexicon.Lexicon, text string) *string {
	return firstAmount(lex.TotalPatterns, text)
}

func firstAmount(patterns []*regexp.Regexp, text string) *string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			v := NormalizeDecimal(m[1])
			return &v
		}
	}
	return nil
}

// NormalizeDecimal applies the documented comma rule: the first comma of the
// matched substring becomes the decimal point. No thousands-separator
// disambiguation is attempted; "1.234" stays as written.
func NormalizeDecimal(s string) string {
	return strings.Replace(s, ",", ".", 1)
}
