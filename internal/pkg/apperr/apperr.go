package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds. Services wrap these so handlers can map failures to a
// stable, distinguishable response without inspecting message text.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrForbidden        = errors.New("forbidden")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrValidation       = errors.New("invalid argument")
	ErrStoreUnavailable = errors.New("store unavailable")
)

type Error struct {
	Kind error
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match on the kind as well as the wrapped chain.
func (e *Error) Is(target error) bool { return target == e.Kind }

func NotFound(code string, format string, args ...interface{}) *Error {
	return &Error{Kind: ErrNotFound, Code: code, Err: fmt.Errorf(format, args...)}
}

func Conflict(code string, format string, args ...interface{}) *Error {
	return &Error{Kind: ErrConflict, Code: code, Err: fmt.Errorf(format, args...)}
}

func Forbidden(code string, format string, args ...interface{}) *Error {
	return &Error{Kind: ErrForbidden, Code: code, Err: fmt.Errorf(format, args...)}
}

func Unauthorized(code string, format string, args ...interface{}) *Error {
	return &Error{Kind: ErrUnauthorized, Code: code, Err: fmt.Errorf(format, args...)}
}

func Validation(code string, format string, args ...interface{}) *Error {
	return &Error{Kind: ErrValidation, Code: code, Err: fmt.Errorf(format, args...)}
}

func StoreUnavailable(code string, err error) *Error {
	return &Error{Kind: ErrStoreUnavailable, Code: code, Err: err}
}

// Status maps an error to its HTTP status. Unrecognized errors are 500.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf returns the machine-readable code, or a fallback by kind.
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != "" {
		return ae.Code
	}
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "internal_error"
	}
}
