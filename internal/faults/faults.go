// Package faults defines the error classes every component boundary translates
// into, so handlers can map failures to status codes without inspecting
// provider errors.
package faults

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound indicates a content hash that was never analyzed.
	ErrNotFound = errors.New("document not found")
)

// ValidationError rejects bad input before any external call is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IndexBuildError wraps an embedding or store failure during index build.
type IndexBuildError struct {
	Cause error
}

func (e *IndexBuildError) Error() string { return "index build failed: " + e.Cause.Error() }
func (e *IndexBuildError) Unwrap() error { return e.Cause }

// QueryError wraps an embedding or similarity-search failure during retrieval.
type QueryError struct {
	Cause error
}

func (e *QueryError) Error() string { return "index query failed: " + e.Cause.Error() }
func (e *QueryError) Unwrap() error { return e.Cause }

// GenerationError wraps an LLM failure during answer generation.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string { return "generation failed: " + e.Cause.Error() }
func (e *GenerationError) Unwrap() error { return e.Cause }

// UnavailableError marks a dependency as unreachable or unusable (connection
// refused, timeout at dial, quota/auth exhaustion). Summarization treats it as
// systemic and stops the pass.
type UnavailableError struct {
	Service string
	Cause   error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Service, e.Cause)
}
func (e *UnavailableError) Unwrap() error { return e.Cause }

func Unavailable(service string, cause error) error {
	return &UnavailableError{Service: service, Cause: cause}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsUnavailable(err error) bool {
	var u *UnavailableError
	return errors.As(err, &u)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// HTTPStatus maps an error to the status code its class carries.
func HTTPStatus(err error) int {
	var (
		v *ValidationError
		u *UnavailableError
	)
	switch {
	case errors.As(err, &v):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &u):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
