package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound      = "NOT_FOUND"
	CodeValidation    = "VALIDATION_ERROR"
	CodeConstraint    = "CONSTRAINT_VIOLATION"
	CodeInvalidStatus = "INVALID_STATUS_TRANSITION"
	CodeConflict      = "CONFLICT"
	CodeInternal      = "INTERNAL_ERROR"
	CodeTimeout       = "TIMEOUT"
	CodeUnavailable   = "SERVICE_UNAVAILABLE"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeRateLimited   = "RATE_LIMITED"
)

// AppError is the error type every handler understands. HTTPStatus decides
// the response code; Err keeps the cause for logs and is never serialized.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	if e.HTTPStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.HTTPStatus
}

func (e *AppError) ToJSON() []byte {
	data, _ := json.Marshal(ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
	return data
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

// ConstraintViolation reports a booking outside a listing's bounds.
// The messages are shown to the person booking.
func ConstraintViolation(messages []string) *AppError {
	return &AppError{
		Code:       CodeConstraint,
		Message:    "booking violates listing constraints",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"errors": messages},
	}
}

func InvalidStatusTransition(from, to string) *AppError {
	return &AppError{
		Code:       CodeInvalidStatus,
		Message:    fmt.Sprintf("cannot change status from %s to %s", from, to),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"from": from, "to": to},
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func Timeout(message string) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    message,
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

func Unavailable(service string) *AppError {
	return &AppError{
		Code:       CodeUnavailable,
		Message:    fmt.Sprintf("%s is temporarily unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

func RateLimited() *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    "too many requests",
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// IsAppError reports whether err or anything it wraps is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError finds the AppError in err's chain, or wraps err as an internal
// error.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
