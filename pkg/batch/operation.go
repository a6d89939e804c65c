// Package batch applies one edit to every entry of a selection and commits
// the successful edits with a single save.
package batch

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/timeutil"
)

// ErrLocked is reported for an entry whose content is immutable.
var ErrLocked = errors.New("batch: entry is locked")

// Operation is a single edit. The set of operations is closed; build them
// with the New* constructors, which reject bad arguments once for the whole
// batch.
type Operation interface {
	// Validate checks the batch-wide argument.
	Validate() error
	String() string

	// apply edits e in place and reports whether anything changed. Delete is
	// handled by the editor.
	apply(e *entry.Entry) (bool, error)
}

// SetText replaces the entry text.
type SetText struct {
	Text string
}

func NewSetText(text string) (SetText, error) {
	op := SetText{Text: strings.TrimSpace(text)}
	return op, op.Validate()
}

func (op SetText) Validate() error {
	if strings.TrimSpace(op.Text) == "" {
		return errors.New("batch: text must not be empty")
	}
	return nil
}

func (op SetText) String() string { return fmt.Sprintf("set text %q", op.Text) }

func (op SetText) apply(e *entry.Entry) (bool, error) {
	if e.Locked {
		return false, ErrLocked
	}
	text := strings.TrimSpace(op.Text)
	if e.Text == text {
		return false, nil
	}
	e.Text = text
	return true, nil
}

// SetDate moves the entry to another day.
type SetDate struct {
	Date entry.Date
}

// NewSetDate parses raw as YYYY-MM-DD.
func NewSetDate(raw string) (SetDate, error) {
	d, err := entry.ParseDate(raw)
	if err != nil {
		return SetDate{}, err
	}
	return SetDate{Date: d}, nil
}

func (op SetDate) Validate() error {
	if op.Date.IsZero() {
		return &entry.InvalidDateError{Field: "date", Err: errors.New("date is required")}
	}
	return nil
}

func (op SetDate) String() string { return "set date " + op.Date.String() }

func (op SetDate) apply(e *entry.Entry) (bool, error) {
	if e.Locked {
		return false, ErrLocked
	}
	if e.Date.Equal(op.Date) {
		return false, nil
	}
	e.Date = op.Date
	return true, nil
}

// SetStatus moves the entry to another status. Allowed on locked entries.
type SetStatus struct {
	Status entry.Status
}

// NewSetStatus accepts a status name or alias.
func NewSetStatus(raw string) (SetStatus, error) {
	s, err := entry.ParseStatus(raw)
	if err != nil {
		return SetStatus{}, err
	}
	return SetStatus{Status: s}, nil
}

func (op SetStatus) Validate() error {
	if !op.Status.Valid() {
		return fmt.Errorf("batch: unknown status %q", op.Status)
	}
	return nil
}

func (op SetStatus) String() string { return "set status " + op.Status.String() }

func (op SetStatus) apply(e *entry.Entry) (bool, error) {
	if e.Status == op.Status {
		return false, nil
	}
	e.Status = op.Status
	return true, nil
}

// SetDue schedules the entry, or clears its schedule when Clear is set.
// Allowed on locked entries.
type SetDue struct {
	Due    entry.Date
	Repeat *timeutil.Interval
	Clear  bool
}

// NewSetDue parses a due date and optional repeat interval. A raw due of
// "none" clears the schedule.
func NewSetDue(rawDue, rawRepeat string) (SetDue, error) {
	if strings.EqualFold(strings.TrimSpace(rawDue), "none") {
		return SetDue{Clear: true}, nil
	}
	d, err := entry.ParseDate(rawDue)
	if err != nil {
		return SetDue{}, err
	}
	op := SetDue{Due: d}
	if rawRepeat != "" {
		iv, err := timeutil.ParseInterval(rawRepeat)
		if err != nil {
			return SetDue{}, fmt.Errorf("batch: repeat: %w", err)
		}
		op.Repeat = &iv
	}
	return op, nil
}

func (op SetDue) Validate() error {
	if op.Clear {
		return nil
	}
	if op.Due.IsZero() {
		return &entry.InvalidDateError{Field: "due", Err: errors.New("due date is required")}
	}
	if op.Repeat != nil && !op.Repeat.Positive() {
		return fmt.Errorf("batch: repeat interval %s must move forward", op.Repeat)
	}
	return nil
}

func (op SetDue) String() string {
	switch {
	case op.Clear:
		return "clear due"
	case op.Repeat != nil:
		return fmt.Sprintf("set due %s every %s", op.Due, op.Repeat)
	default:
		return "set due " + op.Due.String()
	}
}

func (op SetDue) apply(e *entry.Entry) (bool, error) {
	before := e.Clone()
	if op.Clear {
		e.Due, e.Repeat = nil, nil
	} else {
		e.Schedule(op.Due, op.Repeat)
	}
	return !sameSchedule(before, e), nil
}

func sameSchedule(a, b *entry.Entry) bool {
	switch {
	case (a.Due == nil) != (b.Due == nil), (a.Repeat == nil) != (b.Repeat == nil):
		return false
	case a.Due != nil && !a.Due.Equal(*b.Due):
		return false
	case a.Repeat != nil && *a.Repeat != *b.Repeat:
		return false
	}
	return true
}

// SetTags replaces the entry's tags.
type SetTags struct {
	Tags []string
}

func NewSetTags(tags ...string) (SetTags, error) {
	op := SetTags{Tags: entry.NormalizeTags(tags)}
	return op, op.Validate()
}

func (op SetTags) Validate() error { return nil }

func (op SetTags) String() string {
	if len(op.Tags) == 0 {
		return "clear tags"
	}
	return "set tags " + strings.Join(op.Tags, ",")
}

func (op SetTags) apply(e *entry.Entry) (bool, error) {
	if e.Locked {
		return false, ErrLocked
	}
	tags := entry.NormalizeTags(op.Tags)
	if strings.Join(tags, ",") == strings.Join(e.Tags, ",") {
		return false, nil
	}
	e.Tags = tags
	return true, nil
}

// SetLocked locks or unlocks the entry.
type SetLocked struct {
	Locked bool
}

func (op SetLocked) Validate() error { return nil }

func (op SetLocked) String() string {
	if op.Locked {
		return "lock"
	}
	return "unlock"
}

func (op SetLocked) apply(e *entry.Entry) (bool, error) {
	if e.Locked == op.Locked {
		return false, nil
	}
	e.Locked = op.Locked
	return true, nil
}

// Delete removes the entry from the journal.
type Delete struct{}

func (Delete) Validate() error { return nil }
func (Delete) String() string  { return "delete" }

func (Delete) apply(e *entry.Entry) (bool, error) {
	if e.Locked {
		return false, ErrLocked
	}
	return true, nil
}

// Roll reconciles due dates and statuses against Ref. Applying it twice with
// the same Ref changes nothing the second time.
type Roll struct {
	Ref entry.Date
}

func (op Roll) Validate() error {
	if op.Ref.IsZero() {
		return &entry.InvalidDateError{Field: "reference", Err: errors.New("reference date is required")}
	}
	return nil
}

func (op Roll) String() string { return "refresh as of " + op.Ref.String() }

func (op Roll) apply(e *entry.Entry) (bool, error) {
	return e.Reconcile(op.Ref), nil
}
