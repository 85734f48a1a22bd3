package webhook

import "time"

// DefaultTolerance is the freshness window for the claimed event time.
const DefaultTolerance = 5 * time.Minute

// freshWithin reports whether the claimed unix timestamp is within tolerance
// of now, in either direction. A future timestamp is rejected the same way a
// stale one is: clock skew and a forged future timestamp are
// indistinguishable here.
func freshWithin(claimed int64, now time.Time, tolerance time.Duration) bool {
	delta := now.Sub(time.Unix(claimed, 0))
	if delta < 0 {
		delta = -delta
	}
	return delta <= tolerance
}

// timestampDelta returns now minus the claimed time, for audit logging.
func timestampDelta(claimed int64, now time.Time) time.Duration {
	return now.Sub(time.Unix(claimed, 0))
}
