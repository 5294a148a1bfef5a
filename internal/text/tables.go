package text

// Literal lookup tables used by the normalizer rules. Entries are expanded
// case-insensitively at word boundaries; replacements are lowercase because
// expansion runs before the optional lowercasing step and spoken output is
// case-insensitive anyway.

var abbreviations = []struct{ abbr, full string }{
	{"mr.", "mister"},
	{"mrs.", "misses"},
	{"ms.", "miss"},
	{"dr.", "doctor"},
	{"prof.", "professor"},
	{"st.", "saint"},
	{"jr.", "junior"},
	{"sr.", "senior"},
	{"vs.", "versus"},
	{"etc.", "et cetera"},
	{"e.g.", "for example"},
	{"i.e.", "that is"},
	{"approx.", "approximately"},
	{"dept.", "department"},
	{"apt.", "apartment"},
	{"est.", "established"},
}

var contractions = []struct{ short, full string }{
	{"can't", "cannot"},
	{"won't", "will not"},
	{"shan't", "shall not"},
	{"let's", "let us"},
	{"o'clock", "oh clock"},
	{"gonna", "going to"},
	{"wanna", "want to"},
	{"gotta", "got to"},
}

// currencyNames maps a currency symbol to its spoken unit and subunit.
// Plurals are regular (+s) except where pluralOverrides says otherwise.
var currencyNames = map[string]struct{ unit, subunit string }{
	"$": {"dollar", "cent"},
	"€": {"euro", "cent"},
	"£": {"pound", "penny"},
	"¥": {"yen", "sen"},
	"₹": {"rupee", "paisa"},
}

var pluralOverrides = map[string]string{
	"penny": "pence",
	"paisa": "paise",
	"yen":   "yen",
	"foot":  "feet",
	"hertz": "hertz",
}

// scaleSuffixWords expands the K/M/B/T magnitude suffixes.
var scaleSuffixWords = map[string]string{
	"K": "thousand",
	"M": "million",
	"B": "billion",
	"T": "trillion",
}

// unitNames maps measurement abbreviations to their spoken singular form.
// Invariant phrases (already plural or unit-less) are listed in
// invariantUnits instead.
var unitNames = map[string]string{
	"km":   "kilometer",
	"cm":   "centimeter",
	"mm":   "millimeter",
	"mi":   "mile",
	"ft":   "foot",
	"yd":   "yard",
	"kg":   "kilogram",
	"mg":   "milligram",
	"lb":   "pound",
	"oz":   "ounce",
	"ml":   "milliliter",
	"tbsp": "tablespoon",
	"tsp":  "teaspoon",
	"ms":   "millisecond",
	"Hz":   "hertz",
	"kHz":  "kilohertz",
	"MHz":  "megahertz",
	"GHz":  "gigahertz",
	"KB":   "kilobyte",
	"MB":   "megabyte",
	"GB":   "gigabyte",
	"TB":   "terabyte",
}

var invariantUnits = map[string]string{
	"mph":  "miles per hour",
	"km/h": "kilometers per hour",
}

// unitPatternOrder lists unit abbreviations longest-first so the regexp
// alternation never matches a prefix of a longer unit.
var unitPatternOrder = []string{
	"km/h", "tbsp", "mph", "tsp", "kHz", "MHz", "GHz", "km", "cm", "mm",
	"mi", "ft", "yd", "kg", "mg", "lb", "oz", "ml", "ms", "Hz", "KB", "MB",
	"GB", "TB",
}

var degreeNames = map[string]string{
	"C": "celsius",
	"F": "fahrenheit",
}

// decadeWords maps the tens digit of a decade to its spoken plural form.
var decadeWords = map[string]string{
	"1": "tens",
	"2": "twenties",
	"3": "thirties",
	"4": "forties",
	"5": "fifties",
	"6": "sixties",
	"7": "seventies",
	"8": "eighties",
	"9": "nineties",
}

// pluralize returns the spoken plural of a unit word.
func pluralize(word string) string {
	if p, ok := pluralOverrides[word]; ok {
		return p
	}

	return word + "s"
}
