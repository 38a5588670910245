package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies failures so callers can branch programmatically instead of
// matching on message text.
type Kind int

const (
	KindStorage Kind = iota
	KindNotFound
	KindValidation
	KindAdapter
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewValidation(message string, err error) *Error {
	return &Error{Kind: KindValidation, Message: message, Err: err}
}

// NewAdapter wraps a failure from the answer provider. The service records the
// failure durably before surfacing it with this kind.
func NewAdapter(message string, err error) *Error {
	return &Error{Kind: KindAdapter, Message: message, Err: err}
}

// KindOf extracts the kind of err, defaulting to KindStorage for anything that
// is not an *Error (raw persistence failures propagate unmodified).
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
