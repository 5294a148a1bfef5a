package text

import (
	"strconv"
	"strings"
)

// Spoken-word building blocks for number expansion. Values below twenty are
// irregular and rendered by direct lookup.
var onesWords = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen",
}

var tensWords = [...]string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy",
	"eighty", "ninety",
}

var scaleWords = [...]string{"", "thousand", "million", "billion", "trillion"}

// maxSpokenInt is the largest magnitude intWords can render (999 trillion
// and change). Larger literals are left unexpanded by the pipeline.
const maxSpokenInt = 1_000_000_000_000_000 - 1

// ordinalExceptions holds the irregular cardinal→ordinal forms.
var ordinalExceptions = map[string]string{
	"one":    "first",
	"two":    "second",
	"three":  "third",
	"five":   "fifth",
	"eight":  "eighth",
	"nine":   "ninth",
	"twelve": "twelfth",
}

// intWords renders n as English words. The caller must ensure
// |n| <= maxSpokenInt. Exact multiples of 100 between 100 and 9999 that are
// not multiples of 1000 render in the "twelve hundred" form rather than
// "one thousand two hundred"; the deployed model was trained against that
// pronunciation.
func intWords(n int64) string {
	if n < 0 {
		return "minus " + intWords(-n)
	}

	if n < 20 {
		return onesWords[n]
	}

	if n >= 100 && n < 10000 && n%100 == 0 && n%1000 != 0 {
		return intWords(n/100) + " hundred"
	}

	// Split into 3-digit groups, least significant first.
	var groups []int64
	for n > 0 {
		groups = append(groups, n%1000)
		n /= 1000
	}

	var parts []string

	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i] == 0 {
			continue
		}

		parts = append(parts, threeDigitWords(groups[i]))
		if i > 0 {
			parts = append(parts, scaleWords[i])
		}
	}

	return strings.Join(parts, " ")
}

// threeDigitWords renders 1..999.
func threeDigitWords(n int64) string {
	var parts []string

	if n >= 100 {
		parts = append(parts, onesWords[n/100], "hundred")
		n %= 100
	}

	switch {
	case n == 0:
	case n < 20:
		parts = append(parts, onesWords[n])
	default:
		w := tensWords[n/10]
		if n%10 != 0 {
			w += "-" + onesWords[n%10]
		}

		parts = append(parts, w)
	}

	return strings.Join(parts, " ")
}

// digitWords renders each decimal digit in s individually ("14" → "one
// four"). Non-digit runes are skipped.
func digitWords(s string) string {
	var parts []string

	for _, r := range s {
		if r >= '0' && r <= '9' {
			parts = append(parts, onesWords[r-'0'])
		}
	}

	return strings.Join(parts, " ")
}

// ordinalWords renders n as an ordinal ("1" → "first", "22" → "twenty-
// second", "20" → "twentieth"). The final word of the cardinal form is
// transformed: irregulars by lookup, then y→ieth, t→+h, trailing e dropped
// before th, otherwise +th.
func ordinalWords(n int64) string {
	cardinal := intWords(n)

	// Transform only the last word; it may follow a space or a hyphen.
	cut := strings.LastIndexAny(cardinal, " -")
	head, last := "", cardinal
	if cut >= 0 {
		head, last = cardinal[:cut+1], cardinal[cut+1:]
	}

	if irregular, ok := ordinalExceptions[last]; ok {
		return head + irregular
	}

	switch {
	case strings.HasSuffix(last, "y"):
		last = last[:len(last)-1] + "ieth"
	case strings.HasSuffix(last, "t"):
		last += "h"
	case strings.HasSuffix(last, "e"):
		last = last[:len(last)-1] + "th"
	default:
		last += "th"
	}

	return head + last
}

// numberWords expands a decimal literal (optionally signed, optionally with
// a fractional part) into words, reading fractional digits individually and
// joining them with sep ("3.14" → "three point one four"). It reports false
// when the literal cannot be confidently expanded, in which case the caller
// must leave the input unmodified.
func numberWords(literal, sep string) (string, bool) {
	s := literal

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if intPart == "" {
		return "", false
	}

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || n > maxSpokenInt {
		return "", false
	}

	out := intWords(n)
	if neg {
		out = "minus " + out
	}

	if hasFrac {
		if fracPart == "" {
			return "", false
		}

		out += " " + sep + " " + digitWords(fracPart)
	}

	return out, true
}
