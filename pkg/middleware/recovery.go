package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "digilist/pkg/errors"
	"digilist/pkg/logger"
)

func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("Panic recovered",
						"request_id", RequestIDFromContext(r.Context()),
						"error", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					writeAppError(w, apperrors.Internal("Internal server error", fmt.Errorf("panic: %v", rec)))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
