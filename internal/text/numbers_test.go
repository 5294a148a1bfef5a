package text

import "testing"

func TestIntWords(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "zero"},
		{1, "one"},
		{13, "thirteen"},
		{19, "nineteen"},
		{20, "twenty"},
		{21, "twenty-one"},
		{99, "ninety-nine"},
		{100, "one hundred"},
		{101, "one hundred one"},
		{115, "one hundred fifteen"},
		{342, "three hundred forty-two"},
		{1000, "one thousand"},
		{1001, "one thousand one"},
		{1234, "one thousand two hundred thirty-four"},
		{1000000, "one million"},
		{2000001, "two million one"},
		{1000000000, "one billion"},
		{1000000000000, "one trillion"},
		{-42, "minus forty-two"},
	}

	for _, tt := range tests {
		if got := intWords(tt.n); got != tt.want {
			t.Errorf("intWords(%d) = %q; want %q", tt.n, got, tt.want)
		}
	}
}

func TestIntWordsHundredForm(t *testing.T) {
	// Exact multiples of 100 from 100 to 9999 that are not multiples of
	// 1000 use the "<N> hundred" reading.
	tests := []struct {
		n    int64
		want string
	}{
		{200, "two hundred"},
		{1200, "twelve hundred"},
		{1500, "fifteen hundred"},
		{9900, "ninety-nine hundred"},
		{2000, "two thousand"},
		{10000, "ten thousand"},
		{10100, "ten thousand one hundred"},
	}

	for _, tt := range tests {
		if got := intWords(tt.n); got != tt.want {
			t.Errorf("intWords(%d) = %q; want %q", tt.n, got, tt.want)
		}
	}
}

func TestOrdinalWords(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, "fourth"},
		{5, "fifth"},
		{8, "eighth"},
		{9, "ninth"},
		{11, "eleventh"},
		{12, "twelfth"},
		{13, "thirteenth"},
		{20, "twentieth"},
		{21, "twenty-first"},
		{30, "thirtieth"},
		{42, "forty-second"},
		{100, "one hundredth"},
		{1000, "one thousandth"},
	}

	for _, tt := range tests {
		if got := ordinalWords(tt.n); got != tt.want {
			t.Errorf("ordinalWords(%d) = %q; want %q", tt.n, got, tt.want)
		}
	}
}

func TestNumberWords(t *testing.T) {
	tests := []struct {
		literal string
		want    string
		ok      bool
	}{
		{"0", "zero", true},
		{"3.14", "three point one four", true},
		{"-0.5", "minus zero point five", true},
		{"1200", "twelve hundred", true},
		{"1000000000000000000000", "", false},
		{"1.", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := numberWords(tt.literal, "point")
		if ok != tt.ok {
			t.Errorf("numberWords(%q) ok = %v; want %v", tt.literal, ok, tt.ok)
			continue
		}

		if got != tt.want {
			t.Errorf("numberWords(%q) = %q; want %q", tt.literal, got, tt.want)
		}
	}
}

func TestNumberWordsSeparator(t *testing.T) {
	got, ok := numberWords("1.5", "comma")
	if !ok || got != "one comma five" {
		t.Errorf("numberWords(1.5, comma) = %q, %v; want %q, true", got, ok, "one comma five")
	}
}

func TestDigitWords(t *testing.T) {
	if got := digitWords("192"); got != "one nine two" {
		t.Errorf("digitWords(192) = %q; want %q", got, "one nine two")
	}
}
