package domain

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrAccessDenied = errors.New("access denied")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrPersistence  = errors.New("persistence error")
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindAccessDenied ErrorKind = "access_denied"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindPersistence  ErrorKind = "persistence"
)

// KindOf classifies err into one of the five failure kinds. Errors that
// carry none of the sentinels are treated as storage failures.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrAccessDenied):
		return KindAccessDenied
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindPersistence
	}
}
