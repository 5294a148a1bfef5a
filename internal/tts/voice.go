package tts

import (
	"fmt"
	"strings"

	"github.com/Algiras/kitten-tts-go/internal/npz"
)

// Voices resolves voice names against a loaded archive. Friendly aliases
// map to archive keys; names without an alias are treated as keys directly.
// Immutable after construction, safe for concurrent use.
type Voices struct {
	archive *npz.Archive
	aliases map[string]string
	priors  map[string]float64
}

// NewVoices validates that every archive entry is a 2-D float style matrix
// and wires in the alias and speed-prior tables (either may be nil).
func NewVoices(archive *npz.Archive, aliases map[string]string, priors map[string]float64) (*Voices, error) {
	if archive == nil {
		return nil, fmt.Errorf("tts: voice archive is required")
	}

	for _, name := range archive.Names() {
		t, err := archive.Tensor(name)
		if err != nil {
			return nil, err
		}

		if len(t.Shape) != 2 || t.Data == nil {
			return nil, fmt.Errorf("tts: voice %q: want a 2-D float style matrix, got shape %v", name, t.Shape)
		}
	}

	return &Voices{
		archive: archive,
		aliases: aliases,
		priors:  priors,
	}, nil
}

// List returns the sorted archive keys.
func (v *Voices) List() []string {
	return v.archive.Names()
}

// Resolve maps a voice name to its archive key and style matrix.
func (v *Voices) Resolve(name string) (string, *npz.Tensor, error) {
	key := strings.TrimSpace(name)
	if alias, ok := v.aliases[key]; ok {
		key = alias
	}

	if !v.archive.Has(key) {
		return "", nil, &VoiceNotFoundError{Name: name, Available: v.archive.Names()}
	}

	t, err := v.archive.Tensor(key)
	if err != nil {
		return "", nil, err
	}

	return key, t, nil
}

// SpeedPrior returns the configured per-voice speed factor, 1.0 if absent.
func (v *Voices) SpeedPrior(key string) float64 {
	if p, ok := v.priors[key]; ok && p > 0 {
		return p
	}

	return 1.0
}
