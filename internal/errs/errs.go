// Package errs classifies the errors surfaced by ledger operations so callers
// can tell malformed input, rule conflicts, illegal lifecycle transitions, and
// storage failures apart without parsing messages.
package errs

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable classification of an operation error.
type Kind int

const (
	// KindUnknown marks an error that carries no classification.
	KindUnknown Kind = iota

	// KindValidation marks malformed input: an empty player name, a
	// non-positive buy-in, a negative cash-out, an unknown entity ID.
	KindValidation

	// KindConflict marks a uniqueness or cardinality violation: a duplicate
	// player name, a second open session, a duplicate participation.
	KindConflict

	// KindState marks an illegal lifecycle transition, such as closing an
	// already-closed session.
	KindState

	// KindPersistence marks a store that failed to durably commit. The
	// in-memory model is unchanged when an operation reports this kind.
	KindPersistence
)

// String returns the kind's name for logging.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindState:
		return "state"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Error is a classified ledger error. It wraps an underlying cause when one
// exists (persistence failures) so errors.Is/As keep working through it.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Validation returns a new KindValidation error.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, msg: fmt.Sprintf(format, args...)}
}

// Conflict returns a new KindConflict error.
func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, msg: fmt.Sprintf(format, args...)}
}

// State returns a new KindState error.
func State(format string, args ...any) error {
	return &Error{Kind: KindState, msg: fmt.Sprintf(format, args...)}
}

// Persistence wraps a storage failure as a KindPersistence error.
func Persistence(err error, format string, args ...any) error {
	return &Error{Kind: KindPersistence, msg: fmt.Sprintf(format, args...), err: err}
}

// KindOf returns the classification of err, or KindUnknown for errors that
// were not produced by this package, even indirectly.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsValidation reports whether err is classified as validation.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsConflict reports whether err is classified as conflict.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsState reports whether err is classified as state.
func IsState(err error) bool { return KindOf(err) == KindState }

// IsPersistence reports whether err is classified as persistence.
func IsPersistence(err error) bool { return KindOf(err) == KindPersistence }
