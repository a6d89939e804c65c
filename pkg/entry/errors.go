package entry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDueBeforeDate is returned when an entry is due before the day it was
	// recorded on.
	ErrDueBeforeDate = errors.New("entry: due date is before entry date")
	// ErrRepeatWithoutDue is returned when a repeat interval has nothing to
	// repeat from.
	ErrRepeatWithoutDue = errors.New("entry: repeat requires a due date")
)

// InvalidDateError reports a date that could not be parsed. Field names the
// flag or record field the input came from, when known.
type InvalidDateError struct {
	Input string
	Field string
	Err   error
}

func (e *InvalidDateError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s date %q: expected YYYY-MM-DD", e.Field, e.Input)
	}
	return fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", e.Input)
}

func (e *InvalidDateError) Unwrap() error {
	return e.Err
}

// ValidationError lists every rule an entry breaks. It unwraps to each
// individual problem so callers can match ErrDueBeforeDate and friends.
type ValidationError struct {
	ID   ID
	Errs []error
}

func (e *ValidationError) Error() string {
	prefix := "entry"
	if e.ID != 0 {
		prefix = "entry " + e.ID.String()
	}
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, strings.TrimPrefix(err.Error(), "entry: "))
	}
	return fmt.Sprintf("%s: %s", prefix, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() []error {
	return e.Errs
}
