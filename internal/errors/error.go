package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
	CategoryExport   Category = "export"
	CategoryPreview  Category = "preview"
	CategoryInternal Category = "internal"
)

// KrowError is a structured error with a code, a suggestion and an optional
// cause.
type KrowError struct {
	// Code is a unique error identifier (e.g., "K101").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *KrowError) Error() string {
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
func (e *KrowError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *KrowError) WithSuggestion(s string) *KrowError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *KrowError) WithDetail(d string) *KrowError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *KrowError) Wrap(err error) *KrowError {
	e.Wrapped = err
	return e
}

// New creates a KrowError from a registered error code.
func New(code string) *KrowError {
	template, ok := registry[code]
	if !ok {
		return &KrowError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &KrowError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new KrowError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *KrowError {
	return &KrowError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a KrowError.
func FromError(err error, code string) *KrowError {
	if err == nil {
		return nil
	}
	if ke, ok := err.(*KrowError); ok {
		return ke
	}
	return New(code).Wrap(err)
}
