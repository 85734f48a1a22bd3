package webhook

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// BuildSignatureHeader produces a t=...,v1=... header for the given body,
// signed with each secret in turn. Passing both the outgoing and the
// previous secret yields the dual-signed header a processor sends during
// rotation. Used by the operator CLI and by tests.
func BuildSignatureHeader(timestamp int64, body []byte, secrets ...string) string {
	var b strings.Builder
	b.WriteString("t=")
	b.WriteString(strconv.FormatInt(timestamp, 10))
	for _, secret := range secrets {
		b.WriteString(",v1=")
		b.WriteString(hex.EncodeToString(computeSignature([]byte(secret), timestamp, body)))
	}
	return b.String()
}
