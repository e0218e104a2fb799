// Package fault classifies pipeline failures so callers can branch on what
// went wrong instead of on error strings.
package fault

import (
	"errors"
	"fmt"
)

// Kind tags a failure.
type Kind int

const (
	// Unexpected is any failure nobody classified.
	Unexpected Kind = iota
	// FileNotFound means the text source does not exist.
	FileNotFound
	// ClientRequest means the provider rejected the request (4xx, validation, auth).
	ClientRequest
	// Transport means the provider could not be reached or failed on its side.
	Transport
	// Storage means the storage provider rejected or failed the write.
	Storage
	// InvalidInput means the request was unusable before any call was made.
	InvalidInput
)

func (k Kind) String() string {
	switch k {
	case FileNotFound:
		return "file-not-found"
	case ClientRequest:
		return "client-request"
	case Transport:
		return "transport"
	case Storage:
		return "storage"
	case InvalidInput:
		return "invalid-input"
	default:
		return "unexpected"
	}
}

// Error is a classified failure of operation Op.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an *Error.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf reports the Kind of err. Unclassified non-nil errors are Unexpected.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unexpected
}

// Is reports whether err carries kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
