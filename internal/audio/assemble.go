// Package audio assembles per-chunk model output into one waveform. It does
// no encoding, playback or file I/O; consumers get float32 PCM or a go-audio
// buffer carrying the model's fixed output format.
package audio

import (
	goaudio "github.com/go-audio/audio"
)

// Model output format: 24 kHz mono float32 PCM.
const (
	SampleRate = 24000
	Channels   = 1
)

// Concat joins chunk waveforms in order into one continuous waveform.
func Concat(chunks [][]float32) []float32 {
	total := 0
	for _, c := range chunks {
		total += len(c)
	}

	out := make([]float32, 0, total)
	for _, c := range chunks {
		out = append(out, c...)
	}

	return out
}

// TrimTrailing drops the last n samples, a known padding artifact of the
// model. Waveforms shorter than n collapse to empty.
func TrimTrailing(samples []float32, n int) []float32 {
	if n <= 0 {
		return samples
	}

	if len(samples) <= n {
		return samples[:0]
	}

	return samples[:len(samples)-n]
}

// Buffer wraps samples in a go-audio buffer with the model's output format.
func Buffer(samples []float32) *goaudio.Float32Buffer {
	return &goaudio.Float32Buffer{
		Data:           samples,
		Format:         &goaudio.Format{SampleRate: SampleRate, NumChannels: Channels},
		SourceBitDepth: 32,
	}
}
