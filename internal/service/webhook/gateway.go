package webhook

import (
	"context"
	"time"

	"github.com/oakpos/paygate/internal/metrics"
	"github.com/oakpos/paygate/internal/storage"
	"github.com/oakpos/paygate/internal/xslog"
)

// Gateway runs the verification pipeline in a fixed order: secret check,
// header parse, timestamp check, signature check. The first failure is the
// verdict. Every verification is a pure computation over immutable inputs;
// the only shared state is the read-only Secret.
type Gateway struct {
	secret    *Secret
	tolerance time.Duration
	now       func() time.Time

	events storage.EventStore
	ledger storage.ReplayLedger
}

var _ Service = (*Gateway)(nil)

type Option func(*Gateway)

func WithTolerance(tolerance time.Duration) Option {
	return func(g *Gateway) { g.tolerance = tolerance }
}

// WithClock substitutes the receipt-time source. Tests use a fixed clock.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

func WithEventStore(events storage.EventStore) Option {
	return func(g *Gateway) { g.events = events }
}

func WithReplayLedger(ledger storage.ReplayLedger) Option {
	return func(g *Gateway) { g.ledger = ledger }
}

func NewGateway(secret *Secret, opts ...Option) *Gateway {
	g := &Gateway{
		secret:    secret,
		tolerance: DefaultTolerance,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Verify decides authenticity and freshness for one request. It reads the
// clock and nothing else; recording and dedup belong to ProcessWebhook.
func (g *Gateway) Verify(body []byte, header string) (*Verdict, error) {
	if !g.secret.Configured() {
		return nil, ErrUnconfiguredSecret
	}

	if header == "" {
		return nil, ErrMissingSignatureHeader
	}

	sig, err := ParseSignatureHeader(header)
	if err != nil {
		return nil, err
	}

	// The timestamp check always runs before the signature check. A forged
	// signature over an attacker-chosen timestamp must not bypass it.
	now := g.now()
	if !freshWithin(sig.Timestamp, now, g.tolerance) {
		return nil, ErrStaleTimestamp
	}

	expected := computeSignature(g.secret.key, sig.Timestamp, body)
	if !matchesAny(expected, sig.Signatures) {
		return nil, ErrInvalidSignature
	}

	return &Verdict{Body: body, Timestamp: time.Unix(sig.Timestamp, 0).UTC()}, nil
}

// ProcessWebhook verifies the request, then hands the accepted event to the
// downstream collaborators: the replay ledger claims the event id and the
// event store records it. Rejections map 1:1 to the sentinel errors.
func (g *Gateway) ProcessWebhook(ctx context.Context, req ProcessRequest) error {
	logger := xslog.FromContext(ctx)
	start := time.Now()

	verdict, err := g.Verify(req.Body, req.Header)
	metrics.VerificationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.WebhookVerdicts.WithLabelValues(verdictLabel(err)).Inc()
		g.audit(ctx, req.Header, err)
		return err
	}
	metrics.WebhookVerdicts.WithLabelValues("accepted").Inc()

	logger.InfoContext(ctx, "webhook accepted",
		xslog.Verdict("accepted"),
		xslog.TimestampDelta(g.now().Sub(verdict.Timestamp)),
	)

	event, err := ParseEvent(verdict.Body)
	if err != nil {
		// Authentic but undecodable. Verification has passed, so this is
		// not a rejection; the sender gets a 2xx and the payload is only
		// logged by shape, never by content.
		logger.WarnContext(ctx, "accepted event has unknown shape", xslog.Error(err))
		return nil
	}

	return g.record(ctx, event, verdict)
}

func (g *Gateway) record(ctx context.Context, event *PaymentEvent, verdict *Verdict) error {
	logger := xslog.FromContext(ctx)

	if g.ledger != nil {
		// TTL of twice the tolerance: once an event is stale enough to be
		// rejected by the timestamp check, its ledger entry is dead weight.
		claimed, err := g.ledger.MarkProcessed(ctx, event.ID, 2*g.tolerance)
		if err != nil {
			logger.ErrorContext(ctx, "replay ledger unavailable, recording anyway",
				xslog.Error(err),
				xslog.EventID(event.ID),
			)
		} else if !claimed {
			metrics.EventsDeduplicated.Inc()
			logger.InfoContext(ctx, "duplicate delivery skipped",
				xslog.EventID(event.ID),
				xslog.EventType(event.Type),
			)
			return nil
		}
	}

	if g.events == nil {
		return nil
	}

	accepted := storage.AcceptedEvent{
		EventID:    event.ID,
		EventType:  event.Type,
		OrderID:    event.OrderID,
		Amount:     event.Amount,
		Currency:   event.Currency,
		Timestamp:  verdict.Timestamp,
		ReceivedAt: g.now().UTC(),
		Payload:    verdict.Body,
	}

	if err := g.events.Record(ctx, accepted); err != nil {
		// The event is verified; losing it here is an operational fault,
		// not a verification verdict. Surface it so the sender redelivers.
		logger.ErrorContext(ctx, "failed to record accepted event",
			xslog.Error(err),
			xslog.EventID(event.ID),
		)
		return err
	}
	metrics.EventsRecorded.Inc()

	logger.InfoContext(ctx, "recorded payment event",
		xslog.EventID(event.ID),
		xslog.EventType(event.Type),
		xslog.OrderID(event.OrderID),
	)

	return nil
}

// audit logs a rejection: verdict, reason and timestamp delta when one was
// parsed. Signature material never reaches an attr.
func (g *Gateway) audit(ctx context.Context, header string, verdictErr error) {
	logger := xslog.FromContext(ctx)

	attrs := []any{xslog.Verdict(verdictLabel(verdictErr)), xslog.Error(verdictErr)}
	if sig, err := ParseSignatureHeader(header); err == nil {
		attrs = append(attrs, xslog.TimestampDelta(timestampDelta(sig.Timestamp, g.now())))
	}

	logger.WarnContext(ctx, "webhook rejected", attrs...)
}
