package ollama

import (
	"errors"
	"fmt"
)

// ErrorKind categorises client failures.
type ErrorKind int

const (
	KindConnection ErrorKind = iota
	KindStatus
	KindDecode
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func statusError(code int, status, body string) *Error {
	reason := body
	if reason == "" {
		reason = status
	}
	return &Error{
		Kind:       KindStatus,
		StatusCode: code,
		Message:    fmt.Sprintf("Error %d: %s", code, reason),
	}
}
