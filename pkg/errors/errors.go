// Package errors provides custom error types for the fundradar system.
// These errors enable programmatic error checking and make the
// recoverability of a failure explicit: extraction and feed failures
// are recoverable, sink failures abort the run.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's tree matches target.
var Is = errors.Is

// As finds the first error in err's tree that matches target.
var As = errors.As

// Common sentinel errors.
var (
	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrExhausted indicates that every extraction strategy failed for
	// an article.
	ErrExhausted = errors.New("extraction strategies exhausted")

	// ErrRateLimited indicates that a provider rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ExtractionError represents a strategy-local extraction failure:
// malformed or missing JSON, validation rejection, network error, or
// timeout. Always recoverable; the caller falls through to the next
// strategy or skips the article.
type ExtractionError struct {
	Strategy string
	Article  string // article link
	Message  string
	Err      error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("extraction failed in %s: %s", e.Strategy, e.Message)
	}
	return fmt.Sprintf("extraction failed in %s: %v", e.Strategy, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// FeedError represents a source-local feed failure. One feed's fetch
// or parse error never aborts the batch.
type FeedError struct {
	Feed string
	URL  string
	Err  error
}

// Error implements the error interface.
func (e *FeedError) Error() string {
	return fmt.Sprintf("feed %s (%s): %v", e.Feed, e.URL, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *FeedError) Unwrap() error {
	return e.Err
}

// SinkError represents an error reading or writing the external sink.
// Fatal for the run: the batch aborts with a non-zero outcome after
// history has been persisted.
type SinkError struct {
	Op  string // "snapshot", "append", "update"
	Err error
}

// Error implements the error interface.
func (e *SinkError) Error() string {
	return fmt.Sprintf("sink %s: %v", e.Op, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *SinkError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// APIError represents an error from a remote extraction provider.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Provider, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *APIError) Is(target error) bool {
	return e.StatusCode == 429 && target == ErrRateLimited
}
