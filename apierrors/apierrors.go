// apierrors/apierrors.go
// Package apierrors defines the failure kinds returned by the Jamf client and the
// wrapper that carries the failing operation alongside its cause.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds. Every error returned by an operation matches exactly one of these via errors.Is.
var (
	ErrInvalidURL       = errors.New("invalid url")
	ErrTransport        = errors.New("transport error")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrAuthFailed       = errors.New("authentication failed")
	ErrDecode           = errors.New("decode error")
	ErrCommandFailed    = errors.New("command failed")
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// OperationError describes a failed client operation.
type OperationError struct {
	Op         string // operation name, e.g. "ListComputers"
	URL        string // request URL, empty when the URL could not be built
	StatusCode int    // HTTP status, 0 when no response was received
	Kind       error  // one of the Err* sentinels
	Err        error  // underlying cause, may be nil
}

// New builds an OperationError.
func New(op string, kind error, err error) *OperationError {
	return &OperationError{Op: op, Kind: kind, Err: err}
}

// WithURL sets the request URL and returns the receiver.
func (e *OperationError) WithURL(url string) *OperationError {
	e.URL = url
	return e
}

// WithStatus sets the HTTP status code and returns the receiver.
func (e *OperationError) WithStatus(statusCode int) *OperationError {
	e.StatusCode = statusCode
	return e
}

func (e *OperationError) Error() string {
	msg := e.Op + ": " + kindText(e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (%d %s)", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *OperationError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func kindText(kind error) string {
	if kind == nil {
		return "error"
	}
	return kind.Error()
}

// KindOf returns the sentinel kind carried by err, or nil when err is not one of ours.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrInvalidURL, ErrTransport, ErrUnauthenticated, ErrAuthFailed,
		ErrDecode, ErrCommandFailed, ErrUnexpectedStatus,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// UserMessage renders err as the short text shown to an operator.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch KindOf(err) {
	case ErrAuthFailed:
		return "Authentication failed. Check your credentials."
	case ErrUnauthenticated:
		return "Auth token is missing"
	case ErrInvalidURL:
		return "Invalid URL"
	case ErrTransport:
		return "The Jamf server could not be reached. Check the URL and your network connection."
	case ErrDecode:
		return "The Jamf server returned a response that could not be read."
	case ErrCommandFailed:
		return "Fehler, versuch es später erneut"
	case ErrUnexpectedStatus:
		var opErr *OperationError
		if errors.As(err, &opErr) && opErr.StatusCode != 0 {
			return fmt.Sprintf("The Jamf server answered with status %d.", opErr.StatusCode)
		}
		return "The Jamf server answered with an unexpected status."
	default:
		return err.Error()
	}
}
