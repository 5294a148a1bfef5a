package text

import (
	"strings"
	"unicode/utf8"
)

// MaxChunkChars is the synthesis chunk budget in runes. Longer sentences are
// re-split greedily on whitespace.
const MaxChunkChars = 400

// sentenceEnders terminate a sentence candidate during splitting.
const sentenceEnders = ".!?"

// terminalPunctuation is the set a finished chunk may end with; chunks that
// end with anything else get a trailing comma. The comma is a deliberate
// low-cost placeholder, not sentence-final punctuation, so downstream
// prosody is not misrepresented.
const terminalPunctuation = ".!?,;:"

// Chunk splits text into bounded, punctuation-terminated chunks using the
// default budget. Blank input yields nil.
func Chunk(text string) []string {
	return ChunkWithBudget(text, MaxChunkChars)
}

// ChunkWithBudget is Chunk with an explicit rune budget. Budgets below 1
// select the default. The split preserves sentence delimiters: terminators
// stay attached to their sentence, with runs of terminators kept together.
func ChunkWithBudget(text string, budget int) []string {
	if budget <= 1 {
		budget = MaxChunkChars
	}

	var chunks []string

	for _, candidate := range splitSentences(text) {
		var pieces []string
		if utf8.RuneCountInString(candidate) <= budget && hasTerminalPunctuation(candidate) {
			pieces = []string{candidate}
		} else {
			// Reserve one rune so the appended comma never pushes a
			// chunk past the budget.
			pieces = splitByBudget(candidate, budget-1)
		}

		for _, piece := range pieces {
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}

			if !hasTerminalPunctuation(piece) {
				piece += ","
			}

			chunks = append(chunks, piece)
		}
	}

	return chunks
}

// splitSentences splits text on sentence-ending punctuation, keeping the
// terminator (and any immediately following terminators) attached to its
// sentence. Empty segments are dropped.
func splitSentences(text string) []string {
	var sentences []string

	runes := []rune(text)
	start := 0

	for i, r := range runes {
		if !strings.ContainsRune(sentenceEnders, r) {
			continue
		}

		// "Wait!!" keeps both marks on the same sentence.
		if i+1 < len(runes) && strings.ContainsRune(sentenceEnders, runes[i+1]) {
			continue
		}

		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}

		start = i + 1
	}

	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			sentences = append(sentences, s)
		}
	}

	return sentences
}

// splitByBudget re-splits an oversized sentence greedily on whitespace.
// Single words longer than the budget are hard-split at the budget so the
// chunk-length invariant holds for any input.
func splitByBudget(s string, budget int) []string {
	if utf8.RuneCountInString(s) <= budget {
		return []string{s}
	}

	var parts []string

	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			parts = append(parts, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, word := range strings.Fields(s) {
		for _, piece := range hardSplit(word, budget) {
			pieceLen := utf8.RuneCountInString(piece)

			if currentLen > 0 && currentLen+1+pieceLen > budget {
				flush()
			}

			if currentLen > 0 {
				current.WriteByte(' ')
				currentLen++
			}

			current.WriteString(piece)
			currentLen += pieceLen
		}
	}

	flush()

	return parts
}

// hardSplit cuts a single overlong word into budget-sized rune slices.
func hardSplit(word string, budget int) []string {
	if utf8.RuneCountInString(word) <= budget {
		return []string{word}
	}

	runes := []rune(word)

	var out []string
	for len(runes) > budget {
		out = append(out, string(runes[:budget]))
		runes = runes[budget:]
	}

	return append(out, string(runes))
}

func hasTerminalPunctuation(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return strings.ContainsRune(terminalPunctuation, r)
}
