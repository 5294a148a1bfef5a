package tts

import "context"

// Phonemizer converts normalized text into a phonetic symbol string.
// Punctuation is preserved verbatim and word boundaries are whitespace.
// Implementations must be deterministic for deterministic input.
type Phonemizer interface {
	Phonemize(ctx context.Context, text string) (string, error)
}

// Engine runs the pretrained synthesis model: framed token ids, one style
// vector and a speed factor in, a raw float32 waveform out. A loaded engine
// instance supports at most one in-flight request unless its implementation
// documents otherwise; the Service serializes its calls accordingly.
type Engine interface {
	Infer(ctx context.Context, tokenIDs []int64, style []float32, speed float32) ([]float32, error)
	Close()
}
