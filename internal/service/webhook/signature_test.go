package webhook

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	testSigHexA = "7a29c87eaa5ad093288346c11cc99ca67f3155dc531f31ed108989297f500ffb"
	testSigHexB = "48d4c8c2f3e896f89455ba818718cc07fbe32ed69a62dc6b4bf7221ccd6049ac"
)

func TestParseSignatureHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   *SignatureHeader
	}{
		{
			name:   "single signature",
			header: "t=1700000000,v1=" + testSigHexA,
			want: &SignatureHeader{
				Timestamp:  1700000000,
				Signatures: [][]byte{mustHex(t, testSigHexA)},
			},
		},
		{
			name:   "dual signatures for rotation",
			header: "t=1700000000,v1=" + testSigHexA + ",v1=" + testSigHexB,
			want: &SignatureHeader{
				Timestamp:  1700000000,
				Signatures: [][]byte{mustHex(t, testSigHexA), mustHex(t, testSigHexB)},
			},
		},
		{
			name:   "unknown keys ignored",
			header: "t=1700000000,v0=legacy,v1=" + testSigHexA + ",scheme=hmac-sha256",
			want: &SignatureHeader{
				Timestamp:  1700000000,
				Signatures: [][]byte{mustHex(t, testSigHexA)},
			},
		},
		{
			name:   "whitespace around entries",
			header: "t=1700000000, v1=" + testSigHexA,
			want: &SignatureHeader{
				Timestamp:  1700000000,
				Signatures: [][]byte{mustHex(t, testSigHexA)},
			},
		},
		{
			name:   "zero timestamp is valid",
			header: "t=0,v1=" + testSigHexA,
			want: &SignatureHeader{
				Timestamp:  0,
				Signatures: [][]byte{mustHex(t, testSigHexA)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSignatureHeader(tt.header)
			if err != nil {
				t.Fatalf("ParseSignatureHeader(%q) error = %v", tt.header, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseSignatureHeader(%q) mismatch (-want +got):\n%s", tt.header, diff)
			}
		})
	}
}

func TestParseSignatureHeaderMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
	}{
		{name: "empty", header: ""},
		{name: "missing timestamp", header: "v1=" + testSigHexA},
		{name: "missing signature", header: "t=1700000000"},
		{name: "duplicate timestamp", header: "t=1700000000,t=1700000001,v1=" + testSigHexA},
		{name: "negative timestamp", header: "t=-1,v1=" + testSigHexA},
		{name: "non-numeric timestamp", header: "t=yesterday,v1=" + testSigHexA},
		{name: "entry without equals", header: "t=1700000000,v1" + testSigHexA},
		{name: "signature too short", header: "t=1700000000,v1=abcdef"},
		{name: "signature too long", header: "t=1700000000,v1=" + testSigHexA + "00"},
		{name: "signature not hex", header: "t=1700000000,v1=" + strings.Repeat("zz", 32)},
		{name: "too many signatures", header: "t=1700000000" + strings.Repeat(",v1="+testSigHexA, 17)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseSignatureHeader(tt.header); !errors.Is(err, ErrMalformedSignatureHeader) {
				t.Errorf("ParseSignatureHeader(%q) error = %v, want ErrMalformedSignatureHeader", tt.header, err)
			}
		})
	}
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("failed to decode hex %q: %v", s, err)
	}
	return b
}
