package numeric

import (
	"math"
	"strconv"
	"strings"
)

// Placeholder tokens suppliers use for "no price". Matched case-insensitively
// after trimming.
var placeholders = map[string]struct{}{
	"":     {},
	"-":    {},
	"n/a":  {},
	"null": {},
	"#n/a": {},
	"tbc":  {},
	"tba":  {},
	"poa":  {},
	"call": {},
}

// Currency symbols seen in supplier price lists.
const currencySymbols = "$£€¥₹R"

// Unicode space variants that show up in pasted spreadsheet text: NBSP,
// the en/em quad family, thin and hair spaces, zero-width space, narrow
// no-break space and the ideographic space.
var unicodeSpaces = []rune{
	'\u00a0', '\u2000', '\u2001', '\u2002', '\u2003', '\u2004', '\u2005',
	'\u2006', '\u2007', '\u2008', '\u2009', '\u200a', '\u200b', '\u202f',
	'\u3000',
}

// Parse turns arbitrary cell text into a clean number. The second return
// value is false when the text carries no numeric value, which callers treat
// as "no value", never as an error.
//
// Parsing proceeds in stages: placeholder rejection, direct parse, then a
// cleanup pass that strips currency symbols, thousands separators, unicode
// spaces, parentheses and quotes before re-parsing. Text containing '%' is
// interpreted as a percentage and divided by 100. Negative results are
// normalized to their absolute value: accounting-style minus signs and
// parentheses are treated as formatting noise, so downstream validity checks
// only ever see non-negative values.
func Parse(text string) (float64, bool) {
	trimmed := strings.TrimSpace(text)
	if _, ok := placeholders[strings.ToLower(trimmed)]; ok {
		return 0, false
	}

	value, ok := parseFloat(trimmed)
	if !ok {
		value, ok = parseFloat(clean(trimmed))
	}
	if !ok {
		return 0, false
	}

	if strings.ContainsRune(text, '%') {
		value /= 100
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, false
	}
	return math.Abs(value), true
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// clean strips currency and formatting noise, then retains only digits,
// the decimal point and the minus sign.
func clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(currencySymbols, r) || isUnicodeSpace(r) {
			continue
		}
		switch r {
		case ',', '(', ')', '\'', '"', '‘', '’', '“', '”':
			continue
		}
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isUnicodeSpace(r rune) bool {
	for _, sp := range unicodeSpaces {
		if r == sp {
			return true
		}
	}
	return false
}
