// Package tokenizer maps phonetic symbol strings onto the fixed integer
// vocabulary expected by the deployed KittenTTS model. The vocabulary
// ordering is part of the trained model's contract: changing it produces
// wrong (not crashing) audio.
package tokenizer

import "sync"

const (
	// PadID frames every token sequence on both ends.
	PadID int64 = 0

	// SentinelID is inserted before the final pad of every sequence. It is
	// the vocabulary index of the full stop in the canonical 178-symbol
	// table below; the deployed model expects sequences to close with it.
	SentinelID int64 = 4

	// VocabSize is the number of entries in the canonical symbol table,
	// counting the duplicate apostrophe in the IPA block (the index map
	// resolves it last-write-wins, the table length does not shrink).
	VocabSize = 178
)

// Vocabulary building blocks, concatenated in this exact order. Index 0 is
// always the pad symbol.
const (
	padSymbol   = "$"
	punctuation = `;:,.!?¡¿—…"«»“” `
	letters     = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	lettersIPA  = "ɑɐɒæɓʙβɔɕçɗɖðʤəɘɚɛɜɝɞɟʄɡɠɢʛɦɧħɥʜɨɪʝɭɬɫɮʟɱɯɰŋɳɲɴøɵɸθœɶʘɹɺɾɻʀʁɽʂʃʈʧʉʊʋⱱʌɣɤʍχʎʏʑʐʒʔʡʕʢǀǁǂǃˈˌːˑʼʴʰʱʲʷˠˤ˞↓↑→↗↘'̩'ᵻ"
)

// SymbolTable is the ordered, immutable model vocabulary. It is safe for
// concurrent use after construction.
type SymbolTable struct {
	symbols []string
	index   map[rune]int64
}

func newSymbolTable() *SymbolTable {
	runes := []rune(padSymbol + punctuation + letters + lettersIPA)

	t := &SymbolTable{
		symbols: make([]string, 0, len(runes)),
		index:   make(map[rune]int64, len(runes)),
	}

	for i, r := range runes {
		t.symbols = append(t.symbols, string(r))
		// Duplicate symbols resolve to the last-assigned index.
		t.index[r] = int64(i)
	}

	return t
}

var (
	defaultTable     *SymbolTable
	defaultTableOnce sync.Once
)

// Default returns the process-wide symbol table, built once on first use.
func Default() *SymbolTable {
	defaultTableOnce.Do(func() {
		defaultTable = newSymbolTable()
	})

	return defaultTable
}

// VocabSize returns the number of vocabulary entries.
func (t *SymbolTable) VocabSize() int {
	return len(t.symbols)
}

// Symbols returns a copy of the ordered vocabulary for diagnostics.
func (t *SymbolTable) Symbols() []string {
	return append([]string(nil), t.symbols...)
}

// ID returns the vocabulary index of r, or false if r is not a known symbol.
func (t *SymbolTable) ID(r rune) (int64, bool) {
	id, ok := t.index[r]
	return id, ok
}
