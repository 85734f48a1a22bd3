package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/oakpos/paygate/internal/service/webhook"
	"github.com/oakpos/paygate/internal/xerrors"
	"github.com/oakpos/paygate/internal/xslog"
)

// HeaderPaymentSignature carries the t=...,v1=... signature over the raw body.
const HeaderPaymentSignature = "Pay-Signature"

// maxBodyBytes bounds how much of a hostile body we read before verifying.
const maxBodyBytes = 1 << 20

type Webhook struct {
	service webhook.Service
}

func NewWebhook(service webhook.Service) *Webhook {
	return &Webhook{service: service}
}

// HandleWebhook handles POST /webhooks/payments requests. Rejections all
// answer with the same generic message; the specific reason only reaches
// the audit log.
func (h *Webhook) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := xslog.FromContext(ctx)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		logger.WarnContext(ctx, "failed to read webhook body", xslog.Error(err))
		xerrors.WriteError(ctx, w, xerrors.BadRequest(xerrors.WithMessage("failed to read request body")))
		return
	}

	req := webhook.ProcessRequest{
		Body:   body,
		Header: r.Header.Get(HeaderPaymentSignature),
	}

	if err := h.service.ProcessWebhook(ctx, req); err != nil {
		if isVerificationError(err) {
			xerrors.WriteError(ctx, w, xerrors.Unauthorized(
				xerrors.WithMessage("webhook verification failed"),
			))
			return
		}

		logger.ErrorContext(ctx, "failed to process webhook", xslog.Error(err))
		xerrors.WriteError(ctx, w, xerrors.Internal(
			xerrors.WithMessage("failed to process webhook"),
			xerrors.WithCause(err),
		))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func isVerificationError(err error) bool {
	return errors.Is(err, webhook.ErrMissingSignatureHeader) ||
		errors.Is(err, webhook.ErrMalformedSignatureHeader) ||
		errors.Is(err, webhook.ErrUnconfiguredSecret) ||
		errors.Is(err, webhook.ErrStaleTimestamp) ||
		errors.Is(err, webhook.ErrInvalidSignature)
}
