// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Common application errors.
var (
	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")

	// Report input errors.
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNoSource          = errors.New("no order source")
)
