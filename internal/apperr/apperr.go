// Package apperr classifies the failures powertimer reports to the user.
package apperr

import (
	"errors"
	"fmt"
)

// Kind decides how the runner reacts to an error.
type Kind int

const (
	// Unexpected is anything not classified below. It is reported and ends the program.
	Unexpected Kind = iota
	// Validation covers bad user input. It is shown in a box and the menu continues.
	Validation
	// ConfigIO covers unreadable or corrupt config files. Defaults are used instead.
	ConfigIO
	// Interrupt is a user-level interruption (Ctrl+C, SIGINT, SIGTERM).
	Interrupt
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case ConfigIO:
		return "config_io"
	case Interrupt:
		return "interrupt"
	default:
		return "unexpected"
	}
}

// Error carries a Kind alongside the failing operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with kind and op. A nil err yields nil.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Validationf builds a Validation error from a format string.
func Validationf(format string, args ...any) error {
	return &Error{Kind: Validation, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or Unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unexpected
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
