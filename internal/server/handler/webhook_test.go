package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/oakpos/paygate/internal/service/webhook"
	"github.com/oakpos/paygate/internal/storage"
)

const (
	testSecret = "whsec_handler_test"
	testBody   = `{"id":"evt_h1","type":"payment.captured","amount":700}`
)

var testNow = time.Unix(1700000010, 0)

func newTestHandler(t *testing.T, secret string) (*Webhook, *storage.MemoryEventStore) {
	t.Helper()

	events := storage.NewMemoryEventStore()
	gateway := webhook.NewGateway(webhook.NewSecret(secret),
		webhook.WithClock(func() time.Time { return testNow }),
		webhook.WithEventStore(events),
	)
	return NewWebhook(gateway), events
}

func postWebhook(t *testing.T, h *Webhook, body, header string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", bytes.NewReader([]byte(body)))
	if header != "" {
		req.Header.Set(HeaderPaymentSignature, header)
	}

	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, req)
	return rec
}

func TestHandleWebhookAccepted(t *testing.T) {
	t.Parallel()

	h, events := newTestHandler(t, testSecret)

	header := webhook.BuildSignatureHeader(testNow.Unix(), []byte(testBody), testSecret)
	rec := postWebhook(t, h, testBody, header)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if _, ok := events.Get("evt_h1"); !ok {
		t.Error("accepted event was not recorded")
	}
}

func TestHandleWebhookRejections(t *testing.T) {
	t.Parallel()

	staleHeader := webhook.BuildSignatureHeader(testNow.Unix()-1000, []byte(testBody), testSecret)
	wrongHeader := webhook.BuildSignatureHeader(testNow.Unix(), []byte(testBody), "whsec_wrong")

	tests := []struct {
		name   string
		secret string
		header string
	}{
		{name: "missing header", secret: testSecret, header: ""},
		{name: "malformed header", secret: testSecret, header: "not-a-signature"},
		{name: "stale timestamp", secret: testSecret, header: staleHeader},
		{name: "invalid signature", secret: testSecret, header: wrongHeader},
		{name: "unconfigured secret", secret: "", header: wrongHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, events := newTestHandler(t, tt.secret)
			rec := postWebhook(t, h, testBody, tt.header)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			if events.Len() != 0 {
				t.Error("rejected request reached the event store")
			}

			// the response body stays generic; the reason is log-only
			var resp struct {
				Message string `json:"message"`
			}
			if err := go_json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error body: %v", err)
			}
			if resp.Message != "webhook verification failed" {
				t.Errorf("message = %q, want generic rejection", resp.Message)
			}
			for _, needle := range []string{"stale", "secret", "signature header", "malformed"} {
				if strings.Contains(strings.ToLower(resp.Message), needle) {
					t.Errorf("response message %q reveals rejection detail %q", resp.Message, needle)
				}
			}
		})
	}
}

func TestHandleWebhookBodyTooLarge(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, testSecret)

	huge := strings.Repeat("a", maxBodyBytes+1)
	header := webhook.BuildSignatureHeader(testNow.Unix(), []byte(huge), testSecret)
	rec := postWebhook(t, h, huge, header)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
