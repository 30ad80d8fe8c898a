package classroom

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindAlreadyExists
	KindPermissionDenied
	KindUnauthenticated
	KindInvalidArgument
	KindUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAlreadyExists:
		return "already_exists"
	case KindPermissionDenied:
		return "permission_denied"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Error is the result of a failed remote call.
type Error struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func NewError(op string, kind ErrorKind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

// KindFromStatus maps an HTTP status returned by the remote API.
func KindFromStatus(code int) ErrorKind {
	switch code {
	case 400:
		return KindInvalidArgument
	case 401:
		return KindUnauthenticated
	case 403:
		return KindPermissionDenied
	case 404:
		return KindNotFound
	case 409:
		return KindAlreadyExists
	case 429, 500, 502, 503, 504:
		return KindUnavailable
	default:
		return KindUnknown
	}
}
