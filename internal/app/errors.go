package app

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// Kind classifies an operational error. Every kind maps to exactly one HTTP
// status and carries a client-safe message.
type Kind int

const (
	KindAuthentication Kind = iota + 1
	KindValidation
	KindNotFound
	KindRateLimit
)

// String returns the name of the kind as it appears in logs.
func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindRateLimit:
		return "rate_limit"
	default:
		return "unknown"
	}
}

// StatusCode returns the HTTP status declared for the kind.
func (k Kind) StatusCode() int {
	switch k {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is an operational failure whose Message may be shown to the client.
// Err optionally holds the underlying cause and is never exposed.
type Error struct {
	Kind    Kind
	Message string
	Err     error

	stack string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status of the error's kind.
func (e *Error) StatusCode() int {
	return e.Kind.StatusCode()
}

// Stack returns the call stack captured when the error was constructed.
func (e *Error) Stack() string {
	return e.stack
}

// Is reports whether target is an *Error of the same kind and message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause, stack: captureStack(3)}
}

// Authentication builds a 401 error.
func Authentication(message string) *Error {
	return newError(KindAuthentication, message, nil)
}

// AuthenticationWrap builds a 401 error whose message ends with the reason
// of cause, e.g. "Invalid access token: token is expired".
func AuthenticationWrap(prefix string, cause error) *Error {
	return newError(KindAuthentication, prefix+": "+reason(cause), cause)
}

// Validation builds a 400 error.
func Validation(message string) *Error {
	return newError(KindValidation, message, nil)
}

// NotFound builds a 404 error with the message "<entity> not found".
func NotFound(entity string) *Error {
	return newError(KindNotFound, entity+" not found", nil)
}

// RateLimit builds a 429 error.
func RateLimit(message string) *Error {
	return newError(KindRateLimit, message, nil)
}

// AsError returns the operational error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// reason returns the innermost meaningful message of a verification error.
// jwt errors join their sentinels with ": ", only the last segment is kept.
func reason(err error) string {
	if err == nil {
		return "unknown"
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 && i+2 < len(msg) {
		return msg[i+2:]
	}
	return msg
}

func captureStack(skip int) string {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var b strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return b.String()
}
