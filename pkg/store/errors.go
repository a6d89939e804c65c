package store

import (
	"errors"
	"fmt"

	"tableflip.dev/daily/pkg/entry"
)

// ErrNotLoaded is returned by mutating calls made before Load.
var ErrNotLoaded = errors.New("store: journal not loaded")

// CorruptError reports persisted state that cannot be trusted. Line is the
// 1-based line of the journal file at fault, or 0 when the problem concerns
// the file as a whole.
type CorruptError struct {
	Path   string
	Line   int
	Reason string
	Err    error
}

func (e *CorruptError) Error() string {
	msg := "store: corrupt journal " + e.Path
	if e.Line > 0 {
		msg += fmt.Sprintf(" line %d", e.Line)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// NotFoundError reports an id that is not in the journal.
type NotFoundError struct {
	ID entry.ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("store: entry %s not found", e.ID)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
