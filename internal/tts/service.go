// Package tts sequences the synthesis pipeline: normalize text, chunk it,
// phonemize each chunk, tokenize the phonetic string, select a style vector
// and hand the assembled inputs to the inference engine, preserving chunk
// order in the assembled audio.
package tts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Algiras/kitten-tts-go/internal/audio"
	"github.com/Algiras/kitten-tts-go/internal/config"
	"github.com/Algiras/kitten-tts-go/internal/text"
	"github.com/Algiras/kitten-tts-go/internal/tokenizer"
)

// InferenceInputs is the per-chunk contract handed to the Engine. Style
// borrows a row of the loaded voice archive and must not outlive it.
type InferenceInputs struct {
	TokenIDs []int64
	Style    []float32
	Speed    float32
}

// AudioChunk is one streamed synthesis result.
type AudioChunk struct {
	Index   int
	Text    string
	Samples []float32
	Final   bool
}

// Service is the synthesis orchestrator. Immutable after construction and
// safe for concurrent use up to the Engine's single-caller limit.
type Service struct {
	phonemizer Phonemizer
	engine     Engine
	voices     *Voices
	tok        *tokenizer.Tokenizer
	normOpts   text.Options
	ttsCfg     config.TTSConfig
}

// NewService wires the orchestrator. Both capabilities are selected here,
// once; there is no runtime backend probing.
func NewService(phonemizer Phonemizer, engine Engine, voices *Voices, cfg config.Config) (*Service, error) {
	if phonemizer == nil {
		return nil, fmt.Errorf("tts: phonemizer is required")
	}

	if engine == nil {
		return nil, fmt.Errorf("tts: engine is required")
	}

	if voices == nil {
		return nil, fmt.Errorf("tts: voices are required")
	}

	return &Service{
		phonemizer: phonemizer,
		engine:     engine,
		voices:     voices,
		tok:        tokenizer.New(nil),
		normOpts: text.Options{
			Lowercase:           cfg.Normalizer.Lowercase,
			StripPunctuation:    cfg.Normalizer.StripPunctuation,
			RemoveSocialHandles: cfg.Normalizer.RemoveSocialHandles,
			ExpandCurrency:      cfg.Normalizer.ExpandCurrency,
			DecimalSeparator:    cfg.Normalizer.DecimalSeparator,
		},
		ttsCfg: cfg.TTS,
	}, nil
}

// Voices lists the available archive keys.
func (s *Service) Voices() []string {
	return s.voices.List()
}

// PrepareInputs builds the engine inputs for one chunk: optional
// normalization, phonemization, tokenization, style-row selection and the
// per-voice speed prior.
func (s *Service) PrepareInputs(ctx context.Context, chunk, voiceName string, speed float64, applyNormalization bool) (InferenceInputs, error) {
	if applyNormalization {
		chunk = text.Process(chunk, s.normOpts)
	}

	phonetic, err := s.phonemizer.Phonemize(ctx, chunk)
	if err != nil {
		return InferenceInputs{}, fmt.Errorf("tts: phonemize: %w", err)
	}

	ids := s.tok.Tokenize(phonetic)

	key, style, err := s.voices.Resolve(voiceName)
	if err != nil {
		return InferenceInputs{}, err
	}

	// The style row is keyed by content length, clamped to the matrix.
	refID := tokenizer.ContentCount(ids)
	if last := style.Rows() - 1; refID > last {
		refID = last
	}

	row, err := style.Row(refID)
	if err != nil {
		return InferenceInputs{}, err
	}

	if speed <= 0 {
		speed = s.defaultSpeed()
	}

	speed *= s.voices.SpeedPrior(key)

	slog.Debug("inference inputs prepared",
		"voice", key,
		"tokens", len(ids),
		"ref_id", refID,
		"speed", speed,
	)

	return InferenceInputs{
		TokenIDs: ids,
		Style:    row,
		Speed:    float32(speed),
	}, nil
}

// Synthesize renders whole text as one continuous waveform: normalize,
// chunk, synthesize each chunk in order, trim each chunk's trailing pad and
// concatenate.
func (s *Service) Synthesize(ctx context.Context, input, voiceName string, speed float64) ([]float32, error) {
	start := time.Now()

	chunks := s.chunkText(input)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("tts: input text is empty")
	}

	waves := make([][]float32, 0, len(chunks))

	for i, chunk := range chunks {
		wave, err := s.synthesizeChunk(ctx, chunk, voiceName, speed)
		if err != nil {
			return nil, fmt.Errorf("tts: chunk %d/%d: %w", i+1, len(chunks), err)
		}

		waves = append(waves, wave)
	}

	out := audio.Concat(waves)

	slog.Info("synthesis complete",
		"chunks", len(chunks),
		"samples", len(out),
		"ms", time.Since(start).Milliseconds(),
	)

	return out, nil
}

// SynthesizeStream yields each chunk's waveform on out in chunk order,
// paired with its source text, without buffering subsequent chunks. The
// channel is closed on every path; a cancelled context stops the stream
// between chunks.
func (s *Service) SynthesizeStream(ctx context.Context, input, voiceName string, speed float64, out chan<- AudioChunk) error {
	defer close(out)

	chunks := s.chunkText(input)
	if len(chunks) == 0 {
		return fmt.Errorf("tts: input text is empty")
	}

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}

		wave, err := s.synthesizeChunk(ctx, chunk, voiceName, speed)
		if err != nil {
			return fmt.Errorf("tts: chunk %d/%d: %w", i+1, len(chunks), err)
		}

		result := AudioChunk{
			Index:   i,
			Text:    chunk,
			Samples: wave,
			Final:   i == len(chunks)-1,
		}

		select {
		case out <- result:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// chunkText runs the normalizer over raw input and splits the result into
// synthesis chunks.
func (s *Service) chunkText(input string) []string {
	normalized := text.Process(input, s.normOpts)
	return text.ChunkWithBudget(normalized, s.ttsCfg.MaxChunkChars)
}

// synthesizeChunk prepares inputs for an already-normalized chunk, runs the
// engine and trims the model's trailing padding artifact.
func (s *Service) synthesizeChunk(ctx context.Context, chunk, voiceName string, speed float64) ([]float32, error) {
	start := time.Now()

	in, err := s.PrepareInputs(ctx, chunk, voiceName, speed, false)
	if err != nil {
		return nil, err
	}

	wave, err := s.engine.Infer(ctx, in.TokenIDs, in.Style, in.Speed)
	if err != nil {
		return nil, fmt.Errorf("infer: %w", err)
	}

	wave = audio.TrimTrailing(wave, s.ttsCfg.TrimTrailingSamples)

	slog.Debug("chunk synthesized",
		"tokens", len(in.TokenIDs),
		"samples", len(wave),
		"ms", time.Since(start).Milliseconds(),
	)

	return wave, nil
}

func (s *Service) defaultSpeed() float64 {
	if s.ttsCfg.Speed > 0 {
		return s.ttsCfg.Speed
	}

	return 1.0
}
