package xerrors

import (
	"context"
	"net/http"

	go_json "github.com/goccy/go-json"

	"github.com/oakpos/paygate/internal/xhttp"
	"github.com/oakpos/paygate/internal/xslog"
)

type errorResponse struct {
	Message string `json:"message"`
}

func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	appErr := As(err)
	if appErr == nil {
		appErr = Internal(WithCause(err))
	}

	logError(ctx, appErr)

	xhttp.SetHeaderContentTypeApplicationJSON(w)

	if appErr.RateLimit != nil {
		if appErr.RateLimit.RetryAfter > 0 {
			xhttp.SetHeaderRetryAfter(w, appErr.RateLimit.RetryAfter)
		}
		if appErr.RateLimit.Reason != "" {
			w.Header().Set(xhttp.XRateLimitReason, appErr.RateLimit.Reason)
		}
	}

	w.WriteHeader(appErr.StatusCode)

	_ = go_json.NewEncoder(w).Encode(errorResponse{Message: appErr.Message})
}

func logError(ctx context.Context, err *Error) {
	logger := xslog.FromContext(ctx)
	attrs := []any{xslog.HTTPStatus(err.StatusCode)}
	if err.Cause != nil {
		attrs = append(attrs, xslog.ErrorGroup(err.Cause))
	}

	if err.StatusCode >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, err.Message, attrs...)
		return
	}
	logger.WarnContext(ctx, err.Message, attrs...)
}
