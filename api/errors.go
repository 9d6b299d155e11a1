// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-bcast.

package api

import "fmt"

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeResourceExhausted
	ErrCodeAlreadyExists
	ErrCodeInternal
)

// String returns a short, log-friendly name of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeInvalidArgument:
		return "invalid_argument"
	case ErrCodeResourceExhausted:
		return "resource_exhausted"
	case ErrCodeAlreadyExists:
		return "already_exists"
	default:
		return "internal"
	}
}

// Channel acquisition errors. They are the only failures the library reports;
// Write and Read never fail.
var (
	// ErrInvalidInput reports a malformed construction argument, such as a zero capacity.
	ErrInvalidInput = NewError(ErrCodeInvalidArgument, "invalid input")
	// ErrWriterAlreadyExists reports a second producer request on one channel.
	ErrWriterAlreadyExists = NewError(ErrCodeAlreadyExists, "writer already exists")
	// ErrNoReaderAvailable reports that every reader slot is taken, or that a
	// slowest-reader query was made with no readers registered.
	ErrNoReaderAvailable = NewError(ErrCodeResourceExhausted, "no reader available")
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Is matches errors by code, so a contextualized copy of a sentinel still
// satisfies errors.Is against that sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithContext returns a copy of the error carrying an extra context entry.
// Sentinels are never mutated.
func (e *Error) WithContext(key string, value any) *Error {
	ctx := make(map[string]any, len(e.Context)+1)
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &Error{Code: e.Code, Message: e.Message, Context: ctx}
}
