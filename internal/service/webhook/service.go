package webhook

import (
	"context"
	"errors"
	"time"
)

var (
	ErrMissingSignatureHeader   = errors.New("missing signature header")
	ErrMalformedSignatureHeader = errors.New("malformed signature header")
	ErrUnconfiguredSecret       = errors.New("signing secret not configured")
	ErrStaleTimestamp           = errors.New("timestamp outside tolerance window")
	ErrInvalidSignature         = errors.New("invalid signature")
)

// verdictLabel maps a rejection to its audit-log and metric label.
func verdictLabel(err error) string {
	switch {
	case errors.Is(err, ErrMissingSignatureHeader):
		return "missing_signature_header"
	case errors.Is(err, ErrMalformedSignatureHeader):
		return "malformed_signature_header"
	case errors.Is(err, ErrUnconfiguredSecret):
		return "unconfigured_secret"
	case errors.Is(err, ErrStaleTimestamp):
		return "stale_timestamp"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	default:
		return "error"
	}
}

type ProcessRequest struct {
	// Body holds the raw request bytes exactly as received. Any
	// transformation before verification invalidates the digest.
	Body []byte

	// Header is the raw value of the signature header. Empty means the
	// header was absent from the request.
	Header string
}

// Verdict is the result of a successful verification: the raw body for the
// downstream collaborator to decode, plus the verified event time.
type Verdict struct {
	Body      []byte
	Timestamp time.Time
}

type Service interface {
	// ProcessWebhook verifies the request and records the accepted event.
	// Returns ErrMissingSignatureHeader if the signature header was absent.
	// Returns ErrMalformedSignatureHeader if it was present but unparseable.
	// Returns ErrUnconfiguredSecret if no signing secret is loaded.
	// Returns ErrStaleTimestamp if the claimed time is outside tolerance.
	// Returns ErrInvalidSignature if no candidate signature matches.
	ProcessWebhook(ctx context.Context, req ProcessRequest) error
}
