package storage

import "testing"

func TestMemoryRateLimiter(t *testing.T) {
	t.Parallel()

	limiter := NewMemoryRateLimiter(1, 2)

	for i := range 2 {
		result, err := limiter.Allow(t.Context(), "10.0.0.1")
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !result.Allowed {
			t.Fatalf("Allow() call %d = false, want burst allowed", i+1)
		}
	}

	result, err := limiter.Allow(t.Context(), "10.0.0.1")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if result.Allowed {
		t.Error("Allow() past burst = true, want limited")
	}
	if result.RetryAfter <= 0 {
		t.Error("limited result has no RetryAfter")
	}

	// other keys have their own bucket
	other, err := limiter.Allow(t.Context(), "10.0.0.2")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if !other.Allowed {
		t.Error("Allow() for distinct key = false, want true")
	}
}
