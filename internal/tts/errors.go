package tts

import (
	"fmt"
	"strings"
)

// VoiceNotFoundError reports a voice name that resolves to no archive entry.
// It carries the available keys so callers can surface them; a missing voice
// is never silently substituted with a default.
type VoiceNotFoundError struct {
	Name      string
	Available []string
}

func (e *VoiceNotFoundError) Error() string {
	return fmt.Sprintf("tts: voice %q not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}
