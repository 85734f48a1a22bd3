package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"strconv"
)

// computeSignature builds the canonical signed message (the ASCII decimal
// timestamp, a single '.', then the body bytes verbatim) and returns its
// HMAC-SHA256 digest under the given key.
func computeSignature(key []byte, timestamp int64, body []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte{'.'})
	mac.Write(body)
	return mac.Sum(nil)
}

// matchesAny compares the expected digest against every candidate with a
// fixed-time comparison. Candidates are fixed-length (the parser enforces
// it), so hmac.Equal never short-circuits on length. Returning on the first
// match is fine; only early inequality exits would leak timing.
func matchesAny(expected []byte, candidates [][]byte) bool {
	for _, candidate := range candidates {
		if hmac.Equal(expected, candidate) {
			return true
		}
	}
	return false
}
