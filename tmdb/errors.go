package tmdb

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a catalog failure
type ErrorKind int

const (
	// InvalidURL indicates the configured base URL is malformed
	InvalidURL ErrorKind = iota + 1
	// URLError indicates the request URL for a call could not be built
	URLError
	// DataError indicates a transport failure, a non-2xx status or an empty body
	DataError
	// DecodingError indicates the body did not match the expected schema
	DecodingError
	// DataNotAvailable indicates a test double had no canned response
	DataNotAvailable
)

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case InvalidURL:
		return "invalidURL"
	case URLError:
		return "urlError"
	case DataError:
		return "dataError"
	case DecodingError:
		return "decodingError"
	case DataNotAvailable:
		return "dataNotAvailable"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per kind. Match them with errors.Is.
var (
	ErrInvalidURL       = &Error{Kind: InvalidURL}
	ErrURL              = &Error{Kind: URLError}
	ErrData             = &Error{Kind: DataError}
	ErrDecoding         = &Error{Kind: DecodingError}
	ErrDataNotAvailable = &Error{Kind: DataNotAvailable}
)

// ErrMissingToken is returned by NewClient when no bearer token is configured.
var ErrMissingToken = errors.New("tmdb bearer token is required")

// Error is the failure value returned by every catalog call
type Error struct {
	Kind ErrorKind
	// Op names the logical request, e.g. "movies now_playing page 2".
	Op string
	// StatusCode is set for non-2xx responses.
	StatusCode int
	// Message is the upstream status_message, when the body carried one.
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Err == nil && t.StatusCode == 0 && t.Kind == e.Kind
}

// IsNotFound checks if the upstream answered 404
func (e *Error) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the upstream rejected the token
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// KindOf returns the ErrorKind carried by err, or 0 if err is not a *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
