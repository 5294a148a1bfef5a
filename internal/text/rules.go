package text

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// A rule is one pure rewrite step of the normalization pipeline.
type rule func(s string, opts Options) string

// pipeline lists the rewrite rules in their fixed order. Later rules operate
// on the output of earlier ones; the order is part of the model contract and
// must not be rearranged.
var pipeline = []rule{
	composeUnicode,
	stripStructure,
	stripSocialHandles,
	expandAbbreviations,
	expandIPAddresses,
	normalizeLeadingDecimals,
	expandCurrency,
	expandPercentages,
	expandTimes,
	expandRanges,
	splitModelNames,
	expandUnits,
	expandScientific,
	expandScaleSuffixes,
	expandFractions,
	expandOrdinals,
	expandDecades,
	expandPhoneNumbers,
	expandNumbers,
	finalizeText,
}

var (
	htmlTagRe        = regexp.MustCompile(`<[^<>]+>`)
	urlRe            = regexp.MustCompile(`\bhttps?://[^\s<>"]+|\bwww\.[^\s<>"]+`)
	emailRe          = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	socialHandleRe   = regexp.MustCompile(`[#@][A-Za-z0-9_]+`)
	ipAddressRe      = regexp.MustCompile(`\b(\d{1,3})\.(\d{1,3})\.(\d{1,3})\.(\d{1,3})\b`)
	leadingDecimalRe = regexp.MustCompile(`(^|[^0-9])\.([0-9])`)
	currencyRe       = regexp.MustCompile(`([$€£¥₹])\s*([0-9]+(?:\.[0-9]+)?)(?:\s*([KMBT])\b)?`)
	percentRe        = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*%`)
	timeRe           = regexp.MustCompile(`\b(\d{1,2}):(\d{2})(?::(\d{2}))?(?:\s*([AaPp])\.?[Mm]\.?\b|\b)`)
	rangeRe          = regexp.MustCompile(`(^|[^-.\d])(\d+(?:\.\d+)?)-(\d+(?:\.\d+)?)($|[^-.\d])`)
	modelNameRe      = regexp.MustCompile(`\b([A-Za-z][A-Za-z0-9]*)-(\d+(?:\.\d+)?)\b`)
	scientificRe     = regexp.MustCompile(`\b(\d+(?:\.\d+)?)[eE]([+-]?\d+)\b`)
	scaleSuffixRe    = regexp.MustCompile(`\b(\d+(?:\.\d+)?)([KMBT])\b`)
	fractionRe       = regexp.MustCompile(`\b(\d+)/(\d+)\b`)
	ordinalRe        = regexp.MustCompile(`(?i)\b(\d+)(st|nd|rd|th)\b`)
	decadeRe         = regexp.MustCompile(`\b(\d{1,2})?([1-9])0s\b`)
	phoneIntlRe      = regexp.MustCompile(`\+1[-. ](\d{3})[-. ](\d{3})[-. ](\d{4})\b`)
	phoneParenRe     = regexp.MustCompile(`\((\d{3})\)\s*(\d{3})[-.](\d{4})\b`)
	phoneDashRe      = regexp.MustCompile(`\b(\d{3})[-.](\d{3})[-.](\d{4})\b`)
	thousandsRe      = regexp.MustCompile(`(\d),(\d{3})\b`)
	negativeRe       = regexp.MustCompile(`(^|[^\pL\pN])-(\d+(?:\.\d+)?)\b`)
	numberRe         = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
	degreesRe        = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*°\s*([CF])\b`)
	punctStripRe     = regexp.MustCompile(`[^\pL\pN\s']`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
)

var unitRe = buildUnitRe()

func buildUnitRe() *regexp.Regexp {
	escaped := make([]string, 0, len(unitPatternOrder))
	for _, u := range unitPatternOrder {
		escaped = append(escaped, regexp.QuoteMeta(u))
	}

	return regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(` + strings.Join(escaped, "|") + `)\b`)
}

type literalReplacer struct {
	re   *regexp.Regexp
	full string
}

var wordReplacers = buildWordReplacers()

func buildWordReplacers() []literalReplacer {
	out := make([]literalReplacer, 0, len(abbreviations)+len(contractions))

	// Dotted abbreviations end at their own period, so no trailing \b.
	for _, a := range abbreviations {
		out = append(out, literalReplacer{
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(a.abbr)),
			full: a.full,
		})
	}

	for _, c := range contractions {
		out = append(out, literalReplacer{
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(c.short) + `\b`),
			full: c.full,
		})
	}

	return out
}

// Rule 1: canonical composition so lookalike sequences compare equal
// downstream.
func composeUnicode(s string, _ Options) string {
	return norm.NFC.String(s)
}

// Rule 2: HTML tags become spaces; URLs and email addresses vanish.
func stripStructure(s string, _ Options) string {
	s = htmlTagRe.ReplaceAllString(s, " ")
	s = urlRe.ReplaceAllString(s, "")

	return emailRe.ReplaceAllString(s, "")
}

// Rule 3: optional #hashtag / @mention removal.
func stripSocialHandles(s string, opts Options) string {
	if !opts.RemoveSocialHandles {
		return s
	}

	return socialHandleRe.ReplaceAllString(s, "")
}

// Rule 4: literal abbreviation and contraction tables, case-insensitive and
// word-boundary matched.
func expandAbbreviations(s string, _ Options) string {
	for _, r := range wordReplacers {
		s = r.re.ReplaceAllLiteralString(s, r.full)
	}

	return s
}

// Rule 5: IPv4 addresses are spoken digit by digit, octets joined by "dot".
func expandIPAddresses(s string, _ Options) string {
	return ipAddressRe.ReplaceAllStringFunc(s, func(m string) string {
		octets := strings.Split(m, ".")

		parts := make([]string, 0, len(octets))
		for _, o := range octets {
			n, err := strconv.Atoi(o)
			if err != nil || n > 255 {
				return m
			}

			parts = append(parts, digitWords(o))
		}

		return strings.Join(parts, " dot ")
	})
}

// Rule 6: ".5" → "0.5", "-.5" → "-0.5".
func normalizeLeadingDecimals(s string, _ Options) string {
	return leadingDecimalRe.ReplaceAllString(s, "${1}0.${2}")
}

// Rule 7: currency amounts with optional magnitude suffix and cents.
func expandCurrency(s string, opts Options) string {
	if !opts.ExpandCurrency {
		return s
	}

	return currencyRe.ReplaceAllStringFunc(s, func(m string) string {
		g := currencyRe.FindStringSubmatch(m)

		names, ok := currencyNames[g[1]]
		if !ok {
			return m
		}

		amount, scale := g[2], g[3]
		if scale != "" {
			words, ok := numberWords(amount, opts.decimalSeparator())
			if !ok {
				return m
			}

			return words + " " + scaleSuffixWords[scale] + " " + pluralize(names.unit)
		}

		intPart, fracPart, hasFrac := strings.Cut(amount, ".")

		n, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil || n > maxSpokenInt {
			return m
		}

		cents := 0
		if hasFrac {
			cents = parseCents(fracPart)
			if cents < 0 {
				return m
			}
		}

		unit := names.unit
		if n != 1 {
			unit = pluralize(unit)
		}

		out := intWords(n) + " " + unit

		if cents > 0 {
			sub := names.subunit
			if cents != 1 {
				sub = pluralize(sub)
			}

			out += " and " + intWords(int64(cents)) + " " + sub
		}

		return out
	})
}

// parseCents interprets the fractional part of a currency amount as cents.
// A single digit means tenths ("5.3" → 30 cents); more than two digits is
// not a money amount and yields -1.
func parseCents(frac string) int {
	switch len(frac) {
	case 1:
		n, err := strconv.Atoi(frac)
		if err != nil {
			return -1
		}

		return n * 10
	case 2:
		n, err := strconv.Atoi(frac)
		if err != nil {
			return -1
		}

		return n
	default:
		return -1
	}
}

// Rule 8: "50%" → "fifty percent".
func expandPercentages(s string, opts Options) string {
	return percentRe.ReplaceAllStringFunc(s, func(m string) string {
		g := percentRe.FindStringSubmatch(m)

		words, ok := numberWords(g[1], opts.decimalSeparator())
		if !ok {
			return m
		}

		return words + " percent"
	})
}

// Rule 9: clock times. Minutes 1–9 get an "oh" prefix; on-the-hour 24-style
// times without a meridiem get a "hundred" suffix.
func expandTimes(s string, _ Options) string {
	return timeRe.ReplaceAllStringFunc(s, func(m string) string {
		g := timeRe.FindStringSubmatch(m)

		hour, err := strconv.ParseInt(g[1], 10, 64)
		if err != nil || hour > 23 {
			return m
		}

		minute, err := strconv.ParseInt(g[2], 10, 64)
		if err != nil || minute > 59 {
			return m
		}

		var second int64
		if g[3] != "" {
			second, err = strconv.ParseInt(g[3], 10, 64)
			if err != nil || second > 59 {
				return m
			}
		}

		meridiem := g[4]

		parts := []string{intWords(hour)}

		switch {
		case minute == 0 && meridiem == "":
			parts = append(parts, "hundred")
		case minute == 0:
			// Hour and meridiem alone ("5 p m").
		case minute < 10:
			parts = append(parts, "oh", intWords(minute))
		default:
			parts = append(parts, intWords(minute))
		}

		if second > 0 {
			word := "seconds"
			if second == 1 {
				word = "second"
			}

			parts = append(parts, "and", intWords(second), word)
		}

		if meridiem != "" {
			parts = append(parts, strings.ToLower(meridiem)+" m")
		}

		return strings.Join(parts, " ")
	})
}

// Rule 10: numeric ranges ("12-34" → "12 to 34"; words come from rule 19).
// Phone-number groups are protected by the digit guards on either side.
// Replacement re-runs until stable because adjacent ranges share guard
// characters.
func expandRanges(s string, _ Options) string {
	for {
		replaced := false
		out := rangeRe.ReplaceAllStringFunc(s, func(m string) string {
			g := rangeRe.FindStringSubmatch(m)
			// A three-digit group followed by a four-digit group is the
			// tail of a phone number, not a range.
			if len(g[2]) == 3 && len(g[3]) == 4 {
				return m
			}

			replaced = true
			return g[1] + g[2] + " to " + g[3] + g[4]
		})
		if !replaced || out == s {
			return out
		}

		s = out
	}
}

// Rule 11: hyphenated model/version names ("gpt-4" → "gpt 4") so the hyphen
// is not misread as a minus sign.
func splitModelNames(s string, _ Options) string {
	return modelNameRe.ReplaceAllString(s, "$1 $2")
}

// Rule 12: units of measure; the numeric value stays literal here and is
// expanded by rule 19.
func expandUnits(s string, _ Options) string {
	s = unitRe.ReplaceAllStringFunc(s, func(m string) string {
		g := unitRe.FindStringSubmatch(m)
		value, unit := g[1], g[2]

		if phrase, ok := invariantUnits[unit]; ok {
			return value + " " + phrase
		}

		name := unitNames[unit]
		if value != "1" {
			name = pluralize(name)
		}

		return value + " " + name
	})

	return degreesRe.ReplaceAllStringFunc(s, func(m string) string {
		g := degreesRe.FindStringSubmatch(m)

		word := "degrees"
		if g[1] == "1" {
			word = "degree"
		}

		return g[1] + " " + word + " " + degreeNames[g[2]]
	})
}

// Rule 13: scientific notation ("1.5e6" → "one point five times ten to the
// six").
func expandScientific(s string, opts Options) string {
	return scientificRe.ReplaceAllStringFunc(s, func(m string) string {
		g := scientificRe.FindStringSubmatch(m)

		mantissa, ok := numberWords(g[1], opts.decimalSeparator())
		if !ok {
			return m
		}

		exp, err := strconv.ParseInt(strings.TrimPrefix(g[2], "+"), 10, 64)
		if err != nil || exp > maxSpokenInt || exp < -maxSpokenInt {
			return m
		}

		return mantissa + " times ten to the " + intWords(exp)
	})
}

// Rule 14: bare magnitude suffixes ("3K" → "three thousand").
func expandScaleSuffixes(s string, opts Options) string {
	return scaleSuffixRe.ReplaceAllStringFunc(s, func(m string) string {
		g := scaleSuffixRe.FindStringSubmatch(m)

		words, ok := numberWords(g[1], opts.decimalSeparator())
		if !ok {
			return m
		}

		return words + " " + scaleSuffixWords[g[2]]
	})
}

// Rule 15: fractions. Denominator 2 and 4 are irregular (halves, quarters);
// the rest use the ordinal form plus "s" when plural.
func expandFractions(s string, _ Options) string {
	return fractionRe.ReplaceAllStringFunc(s, func(m string) string {
		g := fractionRe.FindStringSubmatch(m)

		num, err := strconv.ParseInt(g[1], 10, 64)
		if err != nil || num > maxSpokenInt {
			return m
		}

		den, err := strconv.ParseInt(g[2], 10, 64)
		if err != nil || den > maxSpokenInt {
			return m
		}

		var denWord string

		switch den {
		case 0, 1:
			return m
		case 2:
			denWord = "half"
			if num != 1 {
				denWord = "halves"
			}
		case 4:
			denWord = "quarter"
			if num != 1 {
				denWord += "s"
			}
		default:
			denWord = ordinalWords(den)
			if num != 1 {
				denWord += "s"
			}
		}

		return intWords(num) + " " + denWord
	})
}

// Rule 16: ordinals ("1st" → "first").
func expandOrdinals(s string, _ Options) string {
	return ordinalRe.ReplaceAllStringFunc(s, func(m string) string {
		g := ordinalRe.FindStringSubmatch(m)

		n, err := strconv.ParseInt(g[1], 10, 64)
		if err != nil || n > maxSpokenInt {
			return m
		}

		return ordinalWords(n)
	})
}

// Rule 17: decades ("1990s" → "nineteen nineties", "90s" → "nineties").
func expandDecades(s string, _ Options) string {
	return decadeRe.ReplaceAllStringFunc(s, func(m string) string {
		g := decadeRe.FindStringSubmatch(m)

		decade, ok := decadeWords[g[2]]
		if !ok {
			return m
		}

		if g[1] == "" {
			return decade
		}

		century, err := strconv.ParseInt(g[1], 10, 64)
		if err != nil {
			return m
		}

		return intWords(century) + " " + decade
	})
}

// Rule 18: common phone-number shapes, spoken digit by digit with a pause
// comma between groups.
func expandPhoneNumbers(s string, _ Options) string {
	groupWords := func(groups ...string) string {
		parts := make([]string, 0, len(groups))
		for _, g := range groups {
			parts = append(parts, digitWords(g))
		}

		return strings.Join(parts, ", ")
	}

	s = phoneIntlRe.ReplaceAllStringFunc(s, func(m string) string {
		g := phoneIntlRe.FindStringSubmatch(m)
		return "one, " + groupWords(g[1], g[2], g[3])
	})

	s = phoneParenRe.ReplaceAllStringFunc(s, func(m string) string {
		g := phoneParenRe.FindStringSubmatch(m)
		return groupWords(g[1], g[2], g[3])
	})

	return phoneDashRe.ReplaceAllStringFunc(s, func(m string) string {
		g := phoneDashRe.FindStringSubmatch(m)
		return groupWords(g[1], g[2], g[3])
	})
}

// Rule 19: every remaining bare integer or float, thousands separators
// stripped first. Literals too large to speak stay untouched.
func expandNumbers(s string, opts Options) string {
	for {
		out := thousandsRe.ReplaceAllString(s, "$1$2")
		if out == s {
			break
		}

		s = out
	}

	s = negativeRe.ReplaceAllString(s, "${1}minus ${2}")

	return numberRe.ReplaceAllStringFunc(s, func(m string) string {
		words, ok := numberWords(m, opts.decimalSeparator())
		if !ok {
			return m
		}

		return words
	})
}

// Rule 20: optional punctuation stripping and lowercasing, then whitespace
// collapse and trim (always).
func finalizeText(s string, opts Options) string {
	if opts.StripPunctuation {
		s = punctStripRe.ReplaceAllString(s, " ")
	}

	if opts.Lowercase {
		s = strings.ToLower(s)
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
