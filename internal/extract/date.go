package extract

import (
	"strconv"
	"strings"
	"time"

	"gastobot/internal/core"
	"gastobot/internal/lexicon"
)

// Date returns the transaction date for free-form text, normalized to
// core.DateLayout. Policy, in priority order: anchored day/month[/year]
// pattern, relative keywords, processing date. The result is always a valid
// calendar date.
func Date(lex *lexicon.Lexicon, text string, now time.Time) string {
	if d, ok := anchoredDate(lex, text, now); ok {
		return d
	}
	if d, ok := relativeDate(lex, text, now); ok {
		return d
	}
	return now.Format(core.DateLayout)
}

// ReceiptDate tries the explicit "FECHA:" label first, disambiguating
// year-first from day-first layouts by whether the leading numeric group
// exceeds 31, then falls back to the free-form policy.
func ReceiptDate(lex *lexicon.Lexicon, text string, now time.Time) string {
	m := lex.ReceiptDate.FindStringSubmatch(text)
	if m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		c, _ := strconv.Atoi(m[3])

		var day, month, year int
		if a > 31 {
			year, month, day = a, b, c
		} else {
			day, month, year = a, b, normalizeYear(c)
		}
		if d, ok := calendarDate(year, month, day); ok {
			return d
		}
	}
	return Date(lex, text, now)
}

func anchoredDate(lex *lexicon.Lexicon, text string, now time.Time) (string, bool) {
	m := lex.AnchoredDate.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year := now.Year()
	if m[3] != "" {
		y, _ := strconv.Atoi(m[3])
		year = normalizeYear(y)
	}
	return calendarDate(year, month, day)
}

func relativeDate(lex *lexicon.Lexicon, text string, now time.Time) (string, bool) {
	lower := strings.ToLower(text)
	for _, rel := range lex.RelativeDays {
		if strings.Contains(lower, rel.Keyword) {
			return now.AddDate(0, 0, -rel.DaysAgo).Format(core.DateLayout), true
		}
	}
	return "", false
}

// normalizeYear maps two-digit years: below 50 to 2000+yy, 50-99 to 1900+yy.
func normalizeYear(y int) int {
	switch {
	case y >= 100:
		return y
	case y < 50:
		return 2000 + y
	default:
		return 1900 + y
	}
}

// calendarDate rejects out-of-range components instead of letting time.Date
// roll them over into a different month.
func calendarDate(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1900 || year > 2200 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return "", false // e.g. 31/02 rolled over
	}
	return t.Format(core.DateLayout), true
}
