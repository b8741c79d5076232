package middleware

import (
	"mime"
	"net/http"

	apperrors "digilist/pkg/errors"
	"digilist/pkg/logger"
)

// ContentTypeValidation rejects bodies that are not JSON.
func ContentTypeValidation(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requiresContentType(r.Method) {
				contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
				if contentType != "application/json" {
					log.Warn("Invalid Content-Type header",
						"request_id", RequestIDFromContext(r.Context()),
						"content_type", contentType,
						"path", r.URL.Path,
						"method", r.Method,
					)
					writeAppError(w, apperrors.New(apperrors.CodeInvalidInput, "Content-Type must be application/json", http.StatusUnsupportedMediaType))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requiresContentType(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

// MaxRequestSize caps request bodies at limit bytes.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeAppError(w, apperrors.New(apperrors.CodeInvalidInput, "request body too large", http.StatusRequestEntityTooLarge))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
