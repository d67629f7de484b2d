package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryRuntime  Category = "runtime"
	CategoryProtocol Category = "protocol"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// HookError is a structured error with a code, an explanation and a hint.
type HookError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (runtime, config, ...).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *HookError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *HookError) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *HookError) WithDetail(d string) *HookError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted explanation to the error.
func (e *HookError) WithDetailf(format string, args ...any) *HookError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *HookError) WithSuggestion(s string) *HookError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *HookError) Wrap(err error) *HookError {
	e.Wrapped = err
	return e
}

// New creates a HookError from a registered error code.
func New(code string) *HookError {
	template, ok := registry[code]
	if !ok {
		return &HookError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &HookError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new HookError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *HookError {
	return &HookError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a HookError.
// An error that already is a *HookError is returned unchanged.
func FromError(err error, code string) *HookError {
	if err == nil {
		return nil
	}
	if he, ok := err.(*HookError); ok {
		return he
	}
	return New(code).Wrap(err)
}
