package validation

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure so callers can map it to a 400.
var ErrInvalid = errors.New("invalid input")

type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *Error) Unwrap() error {
	return ErrInvalid
}

func invalid(field, format string, args ...any) error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}
