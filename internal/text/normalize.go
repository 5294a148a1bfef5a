// Package text prepares raw input text for phonemization: it expands
// numeric and symbolic constructs into spoken words and splits long text
// into bounded, punctuation-terminated chunks.
package text

// Options controls which rewrite rules the normalizer applies. The zero
// value is usable; DefaultOptions returns the documented defaults.
type Options struct {
	// Lowercase lowercases the final output.
	Lowercase bool

	// StripPunctuation removes punctuation from the final output,
	// keeping word-internal apostrophes.
	StripPunctuation bool

	// RemoveSocialHandles removes #hashtags and @mentions.
	RemoveSocialHandles bool

	// ExpandCurrency expands currency amounts ($5 → "five dollars").
	ExpandCurrency bool

	// DecimalSeparator is the word spoken between the integer part and the
	// digits of a decimal fraction. Empty selects "point".
	DecimalSeparator string
}

// DefaultOptions returns the normalizer defaults: currency expansion on,
// case and punctuation preserved, "point" as the decimal separator.
func DefaultOptions() Options {
	return Options{
		ExpandCurrency:   true,
		DecimalSeparator: "point",
	}
}

func (o Options) decimalSeparator() string {
	if o.DecimalSeparator == "" {
		return "point"
	}

	return o.DecimalSeparator
}

// Process runs the full normalization pipeline over text. It is a pure
// function and never fails: any construct that cannot be confidently parsed
// is left unmodified in place.
func Process(text string, opts Options) string {
	for _, r := range pipeline {
		text = r(text, opts)
	}

	return text
}
