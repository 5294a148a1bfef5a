package audio

import (
	"reflect"
	"testing"
)

func TestConcat(t *testing.T) {
	tests := []struct {
		name   string
		chunks [][]float32
		want   []float32
	}{
		{"nil input", nil, []float32{}},
		{"single chunk", [][]float32{{1, 2}}, []float32{1, 2}},
		{"order preserved", [][]float32{{1}, {2, 3}, {4}}, []float32{1, 2, 3, 4}},
		{"empty chunks skipped", [][]float32{{}, {5}, nil, {6}}, []float32{5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Concat(tt.chunks); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Concat(%v) = %v; want %v", tt.chunks, got, tt.want)
			}
		})
	}
}

func TestTrimTrailing(t *testing.T) {
	tests := []struct {
		name    string
		samples []float32
		n       int
		want    []float32
	}{
		{"drops last n", []float32{1, 2, 3, 4}, 2, []float32{1, 2}},
		{"zero is a no-op", []float32{1, 2}, 0, []float32{1, 2}},
		{"negative is a no-op", []float32{1, 2}, -3, []float32{1, 2}},
		{"shorter than n collapses", []float32{1, 2}, 5, []float32{}},
		{"exactly n collapses", []float32{1, 2}, 2, []float32{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimTrailing(tt.samples, tt.n); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TrimTrailing(%v, %d) = %v; want %v", tt.samples, tt.n, got, tt.want)
			}
		})
	}
}

func TestBuffer(t *testing.T) {
	samples := []float32{0.1, -0.2}

	buf := Buffer(samples)

	if buf.Format.SampleRate != SampleRate || buf.Format.NumChannels != Channels {
		t.Errorf("format = %+v; want %d Hz mono", buf.Format, SampleRate)
	}

	if buf.SourceBitDepth != 32 {
		t.Errorf("SourceBitDepth = %d; want 32", buf.SourceBitDepth)
	}

	if !reflect.DeepEqual(buf.Data, samples) {
		t.Errorf("Data = %v; want %v", buf.Data, samples)
	}
}
