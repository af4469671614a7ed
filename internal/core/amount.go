// Amount values travel through the system as the decimal strings the
// extractors captured, comma already normalized to a period. They are never
// re-parsed into floats by the core: the first-comma rule is lossy on
// locale-ambiguous input and re-interpreting the digits would invent
// precision the source text does not have.
package core

import "regexp"

// decimalShape accepts digit groups separated by periods. More than one
// period can legitimately survive normalization ("1.234.567"), so the shape
// check is deliberately loose.
var decimalShape = regexp.MustCompile(`^\d+(?:\.\d+)*$`)

// ValidDecimal reports whether s looks like a normalized amount string.
func ValidDecimal(s string) bool {
	return decimalShape.MatchString(s)
}

// Dec is a convenience for building *string amounts in literals and tests.
func Dec(s string) *string {
	return &s
}
