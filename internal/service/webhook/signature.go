package webhook

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

const (
	// signatureHexLength is the length of one hex-encoded HMAC-SHA256 digest.
	signatureHexLength = sha256.Size * 2

	// maxCandidateSignatures caps the number of v1 entries a single header
	// may carry, so a hostile header cannot force unbounded HMAC work.
	// Dual-signing during rotation needs two.
	maxCandidateSignatures = 16
)

// SignatureHeader is the parsed form of a t=...,v1=...[,v1=...] header.
// Multiple v1 entries occur during secret rotation, when the processor signs
// with both the old and the new secret.
type SignatureHeader struct {
	Timestamp  int64
	Signatures [][]byte
}

// ParseSignatureHeader decodes the comma-separated key=value header format.
// Exactly one t entry and at least one v1 entry are required; unknown keys
// are ignored. Parsing never touches the secret or the clock.
func ParseSignatureHeader(header string) (*SignatureHeader, error) {
	var (
		timestamp    int64
		sawTimestamp bool
		signatures   [][]byte
	)

	for pair := range strings.SplitSeq(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			return nil, fmt.Errorf("%w: entry %q is not key=value", ErrMalformedSignatureHeader, pair)
		}

		switch key {
		case "t":
			if sawTimestamp {
				return nil, fmt.Errorf("%w: duplicate t entry", ErrMalformedSignatureHeader)
			}
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil || ts < 0 {
				return nil, fmt.Errorf("%w: t is not a non-negative integer", ErrMalformedSignatureHeader)
			}
			timestamp = ts
			sawTimestamp = true
		case "v1":
			if len(value) != signatureHexLength {
				return nil, fmt.Errorf("%w: v1 entry has length %d, want %d", ErrMalformedSignatureHeader, len(value), signatureHexLength)
			}
			sig, err := hex.DecodeString(value)
			if err != nil {
				return nil, fmt.Errorf("%w: v1 entry is not hex", ErrMalformedSignatureHeader)
			}
			if len(signatures) == maxCandidateSignatures {
				return nil, fmt.Errorf("%w: more than %d v1 entries", ErrMalformedSignatureHeader, maxCandidateSignatures)
			}
			signatures = append(signatures, sig)
		}
	}

	if !sawTimestamp {
		return nil, fmt.Errorf("%w: missing t entry", ErrMalformedSignatureHeader)
	}
	if len(signatures) == 0 {
		return nil, fmt.Errorf("%w: missing v1 entry", ErrMalformedSignatureHeader)
	}

	return &SignatureHeader{Timestamp: timestamp, Signatures: signatures}, nil
}
