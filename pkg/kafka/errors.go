package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Error types for Kafka operations
var (
	// ErrProducerClosed indicates the producer has been closed
	ErrProducerClosed = errors.New("kafka producer is closed")

	// ErrConsumerClosed indicates the consumer has been closed
	ErrConsumerClosed = errors.New("kafka consumer is closed")

	// ErrEmptyKey indicates the message key is empty
	ErrEmptyKey = errors.New("message key cannot be empty")

	// ErrEmptyValue indicates the message value is empty
	ErrEmptyValue = errors.New("message value cannot be empty")
)

// ErrorType represents the type of error
type ErrorType int

const (
	// ErrorTypeUnknown represents an unknown error type
	ErrorTypeUnknown ErrorType = iota

	// ErrorTypeTransient represents a transient error (network issues, timeouts)
	ErrorTypeTransient

	// ErrorTypePermanent represents a permanent error (schema mismatch, invalid data)
	ErrorTypePermanent
)

// KafkaError wraps errors with additional context
type KafkaError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]any
}

// Error implements the error interface
func (e *KafkaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *KafkaError) Unwrap() error {
	return e.Err
}

// IsTransient checks if the error is transient (can be retried)
func (e *KafkaError) IsTransient() bool {
	return e.Type == ErrorTypeTransient
}

// IsPermanent checks if the error is permanent (should not be retried)
func (e *KafkaError) IsPermanent() bool {
	return e.Type == ErrorTypePermanent
}

// NewTransientError creates a new transient error
func NewTransientError(message string, err error) *KafkaError {
	return &KafkaError{
		Type:    ErrorTypeTransient,
		Message: message,
		Err:     err,
		Details: make(map[string]any),
	}
}

// NewPermanentError creates a new permanent error
func NewPermanentError(message string, err error) *KafkaError {
	return &KafkaError{
		Type:    ErrorTypePermanent,
		Message: message,
		Err:     err,
		Details: make(map[string]any),
	}
}

// WithDetail adds a detail to the error
func (e *KafkaError) WithDetail(key string, value any) *KafkaError {
	e.Details[key] = value
	return e
}

// ClassifyError classifies an error as transient or permanent
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeUnknown
	}

	// Unwrap KafkaError
	var kafkaErr *KafkaError
	if errors.As(err, &kafkaErr) {
		return kafkaErr.Type
	}

	// Check for known transient errors
	errorMsg := err.Error()
	transientPatterns := []string{
		"connection refused",
		"timeout",
		"deadline exceeded",
		"no such host",
		"network is unreachable",
		"broken pipe",
		"connection reset",
		"i/o timeout",
		"temporary failure",
	}

	for _, pattern := range transientPatterns {
		if contains(errorMsg, pattern) {
			return ErrorTypeTransient
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTypeTransient
	}

	return ErrorTypePermanent
}

// ShouldRetry determines if an error should be retried
func ShouldRetry(err error, currentRetries, maxRetries int) bool {
	if err == nil {
		return false
	}

	if currentRetries >= maxRetries {
		return false
	}

	errorType := ClassifyError(err)
	return errorType == ErrorTypeTransient
}

func contains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
