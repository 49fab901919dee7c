package advice

import (
	"errors"
)

// ErrorKind classifies a failed advice request.
type ErrorKind int

const (
	KindTransport ErrorKind = iota
	KindUpstream
)

// Sentinels for errors.Is checks.
var (
	ErrTransport = errors.New("connection error")
	ErrUpstream  = errors.New("upstream error")
	ErrNoProxy   = errors.New("no advice proxy configured")
)

// Error is returned by every provider. Message is safe to show to the user;
// Cause carries the detail that only goes to the log.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrUpstream:
		return e.Kind == KindUpstream
	}
	return false
}

func transportError(cause error) *Error {
	return &Error{Kind: KindTransport, Message: ErrTransport.Error(), Cause: cause}
}

func upstreamError(message, fallback string) *Error {
	if message == "" {
		message = fallback
	}
	return &Error{Kind: KindUpstream, Message: message}
}
