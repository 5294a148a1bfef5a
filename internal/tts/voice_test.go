package tts

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/Algiras/kitten-tts-go/internal/npz"
)

func loadArchive(t *testing.T, entries []npz.Entry) *npz.Archive {
	t.Helper()

	var buf bytes.Buffer
	if err := npz.Write(&buf, entries); err != nil {
		t.Fatalf("write archive: %v", err)
	}

	archive, err := npz.Load(buf.Bytes())
	if err != nil {
		t.Fatalf("load archive: %v", err)
	}

	return archive
}

func TestNewVoicesRejectsNonMatrixEntries(t *testing.T) {
	archive := loadArchive(t, []npz.Entry{
		{Name: "flat", Shape: []int64{4}, Data: []float32{1, 2, 3, 4}},
	})

	if _, err := NewVoices(archive, nil, nil); err == nil {
		t.Error("NewVoices accepted a 1-D entry; want error")
	}

	if _, err := NewVoices(nil, nil, nil); err == nil {
		t.Error("NewVoices accepted a nil archive; want error")
	}
}

func TestVoicesResolve(t *testing.T) {
	archive := loadArchive(t, []npz.Entry{
		{Name: "expr-voice-5-m", Shape: []int64{2, 2}, Data: []float32{1, 2, 3, 4}},
		{Name: "expr-voice-2-f", Shape: []int64{2, 2}, Data: []float32{5, 6, 7, 8}},
	})

	voices, err := NewVoices(archive, map[string]string{"bella": "expr-voice-2-f"}, nil)
	if err != nil {
		t.Fatalf("NewVoices: %v", err)
	}

	tests := []struct {
		name    string
		lookup  string
		wantKey string
	}{
		{"direct key", "expr-voice-5-m", "expr-voice-5-m"},
		{"alias", "bella", "expr-voice-2-f"},
		{"surrounding whitespace trimmed", "  expr-voice-5-m ", "expr-voice-5-m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, style, err := voices.Resolve(tt.lookup)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.lookup, err)
			}

			if key != tt.wantKey {
				t.Errorf("key = %q; want %q", key, tt.wantKey)
			}

			if style == nil || style.Rows() != 2 {
				t.Errorf("style = %+v; want 2-row matrix", style)
			}
		})
	}

	_, _, err = voices.Resolve("missing")

	var notFound *VoiceNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Resolve(missing) err = %v; want VoiceNotFoundError", err)
	}

	if want := []string{"expr-voice-2-f", "expr-voice-5-m"}; !reflect.DeepEqual(notFound.Available, want) {
		t.Errorf("Available = %v; want %v", notFound.Available, want)
	}
}

func TestVoicesSpeedPrior(t *testing.T) {
	archive := loadArchive(t, []npz.Entry{
		{Name: "v", Shape: []int64{1, 2}, Data: []float32{1, 2}},
	})

	voices, err := NewVoices(archive, nil, map[string]float64{"v": 1.2, "zero": 0, "negative": -1})
	if err != nil {
		t.Fatalf("NewVoices: %v", err)
	}

	tests := []struct {
		key  string
		want float64
	}{
		{"v", 1.2},
		{"absent", 1.0},
		{"zero", 1.0},
		{"negative", 1.0},
	}

	for _, tt := range tests {
		if got := voices.SpeedPrior(tt.key); got != tt.want {
			t.Errorf("SpeedPrior(%q) = %v; want %v", tt.key, got, tt.want)
		}
	}
}
