package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrStatusChanged = errors.New("booking status changed concurrently")

	ErrListingNotFound = errors.New("listing not found")
)
