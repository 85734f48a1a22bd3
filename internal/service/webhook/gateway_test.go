package webhook

import (
	"errors"
	"testing"
	"time"
)

const (
	testSecret = "whsec_test123"
	testBody   = `{"id":"evt_1","amount":500}`

	// hex(HMAC-SHA256(whsec_test123, "1700000000." + testBody))
	testBodySignature = "7a29c87eaa5ad093288346c11cc99ca67f3155dc531f31ed108989297f500ffb"
)

var testNow = time.Unix(1700000010, 0)

func newTestGateway(t *testing.T, secret string, opts ...Option) *Gateway {
	t.Helper()

	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return NewGateway(NewSecret(secret), opts...)
}

func TestVerifyAccepted(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t, testSecret)

	header := "t=1700000000,v1=" + testBodySignature
	verdict, err := g.Verify([]byte(testBody), header)
	if err != nil {
		t.Fatalf("Verify() error = %v, want accepted", err)
	}

	if got := string(verdict.Body); got != testBody {
		t.Errorf("verdict body = %q, want %q", got, testBody)
	}
	if want := time.Unix(1700000000, 0).UTC(); !verdict.Timestamp.Equal(want) {
		t.Errorf("verdict timestamp = %v, want %v", verdict.Timestamp, want)
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t, testSecret)

	bodies := []string{
		`{}`,
		`{"id":"evt_2","amount":0}`,
		`not json at all`,
		"",
		"body with\nnewlines\tand tabs",
	}

	for _, body := range bodies {
		header := BuildSignatureHeader(testNow.Unix(), []byte(body), testSecret)
		if _, err := g.Verify([]byte(body), header); err != nil {
			t.Errorf("Verify(%q) error = %v, want accepted", body, err)
		}
	}
}

func TestVerifyMutatedBody(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t, testSecret)
	header := "t=1700000000,v1=" + testBodySignature

	// the spec scenario: amount 500 -> 501 under the original header
	mutated := `{"id":"evt_1","amount":501}`
	if _, err := g.Verify([]byte(mutated), header); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("Verify(mutated) error = %v, want ErrInvalidSignature", err)
	}

	// every single-byte mutation fails the same way
	for i := range testBody {
		flipped := []byte(testBody)
		flipped[i] ^= 0x01
		if _, err := g.Verify(flipped, header); !errors.Is(err, ErrInvalidSignature) {
			t.Errorf("Verify(body with byte %d flipped) error = %v, want ErrInvalidSignature", i, err)
		}
	}
}

func TestVerifyTimestampWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		timestamp int64
		wantErr   error
	}{
		{name: "within window", timestamp: testNow.Unix() - 10},
		{name: "exactly at past edge", timestamp: testNow.Unix() - 300},
		{name: "exactly at future edge", timestamp: testNow.Unix() + 300},
		{name: "one past the edge", timestamp: testNow.Unix() - 301, wantErr: ErrStaleTimestamp},
		{name: "too far in the future", timestamp: testNow.Unix() + 301, wantErr: ErrStaleTimestamp},
		{name: "ancient", timestamp: 0, wantErr: ErrStaleTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := newTestGateway(t, testSecret)

			// correctly signed over the claimed timestamp, so only
			// freshness decides the verdict
			header := BuildSignatureHeader(tt.timestamp, []byte(testBody), testSecret)
			_, err := g.Verify([]byte(testBody), header)

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Verify() error = %v, want accepted", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Verify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifyHeaderErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{name: "absent header", header: "", wantErr: ErrMissingSignatureHeader},
		{name: "no v1 entry", header: "t=1700000000", wantErr: ErrMalformedSignatureHeader},
		{name: "garbage", header: "sha256=abcdef", wantErr: ErrMalformedSignatureHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := newTestGateway(t, testSecret)
			if _, err := g.Verify([]byte(testBody), tt.header); !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifyUnconfiguredSecret(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t, "")

	// a header that would verify under testSecret still fails closed
	header := "t=1700000000,v1=" + testBodySignature
	if _, err := g.Verify([]byte(testBody), header); !errors.Is(err, ErrUnconfiguredSecret) {
		t.Errorf("Verify() error = %v, want ErrUnconfiguredSecret", err)
	}
	if _, err := g.Verify(nil, ""); !errors.Is(err, ErrUnconfiguredSecret) {
		t.Errorf("Verify() with absent header error = %v, want ErrUnconfiguredSecret", err)
	}
}

func TestVerifySecretRotation(t *testing.T) {
	t.Parallel()

	const (
		oldSecret = "whsec_old"
		newSecret = "whsec_new"
	)

	// processor dual-signs with both secrets during rotation
	header := BuildSignatureHeader(testNow.Unix(), []byte(testBody), newSecret, oldSecret)

	for _, secret := range []string{oldSecret, newSecret} {
		g := newTestGateway(t, secret)
		if _, err := g.Verify([]byte(testBody), header); err != nil {
			t.Errorf("Verify() with secret %q error = %v, want accepted", secret, err)
		}
	}

	g := newTestGateway(t, "whsec_neither")
	if _, err := g.Verify([]byte(testBody), header); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("Verify() with unrelated secret error = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifyStaleBeatsInvalid(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t, testSecret)

	// stale timestamp and wrong signature: the timestamp check runs first
	header := BuildSignatureHeader(testNow.Unix()-1000, []byte(testBody), "whsec_wrong")
	if _, err := g.Verify([]byte(testBody), header); !errors.Is(err, ErrStaleTimestamp) {
		t.Errorf("Verify() error = %v, want ErrStaleTimestamp", err)
	}
}
