package schema

import "fmt"

// Error codes for structured error reporting.
const (
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeDecode     = "DECODE_ERROR"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeRender     = "RENDER_ERROR"
	ErrCodeOutOfRange = "OUT_OF_RANGE"
	ErrCodeCancelled  = "CANCELLED"
	ErrCodeFilter     = "FILTER_ERROR"
	ErrCodeTransport  = "TRANSPORT_ERROR"
)

// CodemapError is the structured error type for all codemap operations.
type CodemapError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	File    string         `json:"file,omitempty"`
	Cause   error          `json:"-"`
}

func (e *CodemapError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.File, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *CodemapError) Unwrap() error {
	return e.Cause
}

// NewError creates a new CodemapError.
func NewError(code, message string) *CodemapError {
	return &CodemapError{Code: code, Message: message}
}

// NewErrorf creates a new CodemapError with a formatted message.
func NewErrorf(code, format string, args ...any) *CodemapError {
	return &CodemapError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithFile attaches the originating file path to the error.
func (e *CodemapError) WithFile(file string) *CodemapError {
	e.File = file
	return e
}

// WithCause attaches an underlying cause.
func (e *CodemapError) WithCause(err error) *CodemapError {
	e.Cause = err
	return e
}

// WithDetails attaches key-value details.
func (e *CodemapError) WithDetails(details map[string]any) *CodemapError {
	e.Details = details
	return e
}
