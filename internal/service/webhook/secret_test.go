package webhook

import (
	"fmt"
	"strings"
	"testing"
)

func TestGenerateSecret(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for range 10 {
		secret, err := GenerateSecret()
		if err != nil {
			t.Fatalf("GenerateSecret() error = %v", err)
		}
		if !strings.HasPrefix(secret, secretPrefix) {
			t.Errorf("secret %q missing %q prefix", secret, secretPrefix)
		}
		if got, want := len(secret), len(secretPrefix)+64; got != want {
			t.Errorf("secret length = %d, want %d", got, want)
		}
		if seen[secret] {
			t.Errorf("GenerateSecret() produced duplicate %q", secret)
		}
		seen[secret] = true
	}
}

func TestSecretNeverFormats(t *testing.T) {
	t.Parallel()

	secret := NewSecret("whsec_supersecret")

	for _, formatted := range []string{
		fmt.Sprintf("%v", secret),
		fmt.Sprintf("%s", secret),
		fmt.Sprintf("%+v", secret),
		secret.LogValue().String(),
	} {
		if strings.Contains(formatted, "supersecret") {
			t.Errorf("secret material leaked into %q", formatted)
		}
	}
}

func TestSecretConfigured(t *testing.T) {
	t.Parallel()

	if NewSecret("").Configured() {
		t.Error("empty secret reports configured")
	}
	if !NewSecret("whsec_x").Configured() {
		t.Error("non-empty secret reports unconfigured")
	}
}
