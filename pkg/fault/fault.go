// Package fault classifies errors so the transport layer can map them to
// status codes without inspecting message text.
package fault

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindUnknown covers infrastructure failures (db, blob, cache).
	KindUnknown Kind = iota
	// KindValidation: malformed input, rejected before any write.
	KindValidation
	// KindConflict: precondition no longer holds because another actor moved
	// the entity first. Safe to re-fetch and retry with fresh state.
	KindConflict
	// KindAuthorization: actor role is not allowed to perform the operation.
	KindAuthorization
	// KindNotFound: referenced entity does not exist.
	KindNotFound
	// KindInvariant: internal consistency breach. Aborts the enclosing
	// transaction entirely and is logged server-side.
	KindInvariant
)

type Error struct {
	kind Kind
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
func (e *Error) Kind() Kind    { return e.kind }

func New(kind Kind, msg string) error { return &Error{kind: kind, msg: msg} }

func Newf(kind Kind, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) error {
	return &Error{kind: kind, msg: msg, err: err}
}

// KindOf returns the kind of err, walking the wrap chain. Unclassified errors
// report KindUnknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.kind
	}
	return KindUnknown
}

func IsValidation(err error) bool    { return KindOf(err) == KindValidation }
func IsConflict(err error) bool      { return KindOf(err) == KindConflict }
func IsAuthorization(err error) bool { return KindOf(err) == KindAuthorization }
func IsNotFound(err error) bool      { return KindOf(err) == KindNotFound }
func IsInvariant(err error) bool     { return KindOf(err) == KindInvariant }
