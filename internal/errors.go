package internal

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes written into the "error" field of the envelope.
const (
	CodeUnknown             = "Unknown"
	CodeFailedSerialization = "FAILED_SERIALIZATION"
	CodeInvalidBody         = "INVALID_BODY"
	CodeNotFound            = "NOT_FOUND"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodePanic               = "PANIC"
)

var (
	// ErrFailedSerialization marks a response value that could not be encoded.
	ErrFailedSerialization = errors.New("failed to serialize response")
	// ErrTrailingData marks a request body with more than one JSON value.
	ErrTrailingData = errors.New("trailing data after JSON body")
)

// HTTPError carries a status code and an application error code to the
// error handler.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// ErrorCode is the machine-readable code, e.g. "TASK_NOT_FOUND".
	ErrorCode string

	// Code is the HTTP status code.
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates an HTTPError. The error code defaults to the
// upper-snake status text, e.g. "BAD_REQUEST".
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{
		Code:      code,
		Message:   message,
		ErrorCode: statusCode(code),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithErrorCode(code string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.ErrorCode = code
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusConflict, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// AsHTTPError returns the first HTTPError in err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// ToHTTPError maps any error to an HTTPError. Errors without one in their
// chain become a 500 with code "Unknown" and a generic message.
func ToHTTPError(err error) *HTTPError {
	if httpErr := AsHTTPError(err); httpErr != nil {
		return httpErr
	}
	return &HTTPError{
		Err:       err,
		Code:      http.StatusInternalServerError,
		ErrorCode: CodeUnknown,
		Message:   http.StatusText(http.StatusInternalServerError),
	}
}

// PanicError wraps a value recovered from a panicking middleware.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return CodeUnknown
	}
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == ' ' || c == '-':
			out = append(out, '_')
		case c >= 'a' && c <= 'z':
			out = append(out, c-'a'+'A')
		case c == '\'':
		default:
			out = append(out, c)
		}
	}
	return string(out)
}
