package webhook

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
)

const secretPrefix = "whsec_"

// Secret holds the shared signing key for the lifetime of the process.
// It is loaded once at startup and immutable afterwards, so concurrent
// verifications read it without locking. An empty value leaves the Secret
// permanently unconfigured and every verification fails closed.
type Secret struct {
	key []byte
}

func NewSecret(value string) *Secret {
	if value == "" {
		return &Secret{}
	}
	return &Secret{key: []byte(value)}
}

func (s *Secret) Configured() bool {
	return len(s.key) > 0
}

// String keeps the key out of accidental %v / %s formatting.
func (s *Secret) String() string {
	return "[redacted]"
}

// LogValue keeps the key out of structured logs.
func (s *Secret) LogValue() slog.Value {
	return slog.StringValue("[redacted]")
}

// GenerateSecret returns a new whsec_-prefixed signing secret with 256 bits
// of entropy, for provisioning a processor endpoint or rotation drills.
func GenerateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return secretPrefix + hex.EncodeToString(buf), nil
}
