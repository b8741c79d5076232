package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "digilist/pkg/errors"
)

type contextKey string

const RequestIDKey contextKey = "request_id"

// RequestIDFromContext returns the id RequestLogging attached, or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

func writeAppError(w http.ResponseWriter, appErr *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	_ = json.NewEncoder(w).Encode(apperrors.ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}
