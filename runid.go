package tokenizers

import (
	"strings"

	"github.com/google/uuid"
)

// newRunID returns a short, hyphen-free correlation id for one Train call's
// log lines, the same construction the teacher used for its HTTP
// User-Agent SessionId (uuid.NewRandom, hyphens stripped), repurposed here
// from session correlation to training-run correlation.
func newRunID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		// Extremely unlikely (would mean the OS entropy source failed);
		// fall back to a fixed marker rather than fail a training run
		// over an unused log-correlation id.
		return "unknown-run"
	}
	return strings.ReplaceAll(id.String(), "-", "")
}
