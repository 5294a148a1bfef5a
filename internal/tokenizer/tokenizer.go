package tokenizer

// Tokenizer converts phonetic text into framed model token ids.
type Tokenizer struct {
	table *SymbolTable
}

// New returns a Tokenizer over the given symbol table. A nil table selects
// the process-wide default.
func New(table *SymbolTable) *Tokenizer {
	if table == nil {
		table = Default()
	}

	return &Tokenizer{table: table}
}

// Tokenize maps phonetic text to the id sequence [pad, content..., sentinel,
// pad]. Input is walked by Unicode codepoint in input order; codepoints
// absent from the vocabulary are dropped silently.
func (tk *Tokenizer) Tokenize(phonetic string) []int64 {
	ids := make([]int64, 0, len(phonetic)+3)
	ids = append(ids, PadID)

	for _, r := range phonetic {
		if id, ok := tk.table.index[r]; ok {
			ids = append(ids, id)
		}
	}

	return append(ids, SentinelID, PadID)
}

// Table returns the symbol table backing this tokenizer.
func (tk *Tokenizer) Table() *SymbolTable {
	return tk.table
}

// ContentCount returns the number of content ids inside a framed sequence
// produced by Tokenize.
func ContentCount(seq []int64) int {
	if len(seq) < 3 {
		return 0
	}

	return len(seq) - 3
}
