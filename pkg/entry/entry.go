// Package entry defines the journal record and its date and status types.
package entry

import (
	"sort"
	"strconv"
	"strings"

	"tableflip.dev/daily/pkg/timeutil"
)

// ID identifies an entry for the lifetime of a journal. IDs are handed out by
// the store from a persisted counter and are never reused.
type ID uint64

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseID parses a decimal entry id.
func ParseID(raw string) (ID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(v), nil
}

// Entry is a single journal record.
type Entry struct {
	ID     ID                 `json:"id" validate:"required"`
	Date   Date               `json:"date"`
	Text   string             `json:"text" validate:"required"`
	Tags   []string           `json:"tags,omitempty" validate:"dive,required"`
	Due    *Date              `json:"due,omitempty"`
	Repeat *timeutil.Interval `json:"repeat,omitempty"`
	Status Status             `json:"status" validate:"required,oneof=open done overdue cancelled"`
	Locked bool               `json:"locked,omitempty"`
}

// New creates an open entry for the given day. The id is assigned when the
// entry is added to a store.
func New(date Date, text string, tags ...string) *Entry {
	return &Entry{
		Date:   date,
		Text:   strings.TrimSpace(text),
		Tags:   NormalizeTags(tags),
		Status: StatusOpen,
	}
}

// Scheduled reports whether the entry carries due/recurrence metadata and so
// takes part in upcoming resolution and refresh.
func (e *Entry) Scheduled() bool {
	return e != nil && e.Due != nil
}

// Repeating reports whether the entry rolls forward after its due date.
func (e *Entry) Repeating() bool {
	return e.Scheduled() && e.Repeat != nil
}

// Open reports whether the entry still needs attention.
func (e *Entry) Open() bool {
	return e.Status == StatusOpen || e.Status == StatusOverdue
}

// HasTag reports whether the entry carries tag, compared case-insensitively.
func (e *Entry) HasTag(tag string) bool {
	tag = normalizeTag(tag)
	i := sort.SearchStrings(e.Tags, tag)
	return i < len(e.Tags) && e.Tags[i] == tag
}

// Schedule sets the due date and optional repeat interval.
func (e *Entry) Schedule(due Date, repeat *timeutil.Interval) {
	e.Due = &due
	if repeat != nil {
		iv := *repeat
		e.Repeat = &iv
	} else {
		e.Repeat = nil
	}
}

// Complete marks the entry done.
func (e *Entry) Complete() {
	e.Status = StatusDone
}

// Cancel marks the entry irrelevant.
func (e *Entry) Cancel() {
	e.Status = StatusCancelled
}

// Lock marks the entry's content immutable.
func (e *Entry) Lock() {
	e.Locked = true
}

// Unlock clears the immutable flag.
func (e *Entry) Unlock() {
	e.Locked = false
}

// Reconcile brings the due date and status up to date relative to ref and
// reports whether anything changed. Repeating entries that are past due roll
// forward to their first occurrence on or after ref and reopen. One-off open
// entries past due become overdue, and overdue entries whose due date was
// moved back into the future reopen. Cancelled entries are left alone.
// Calling Reconcile again with the same ref never changes anything.
func (e *Entry) Reconcile(ref Date) bool {
	if !e.Scheduled() || e.Status == StatusCancelled {
		return false
	}

	if e.Repeat != nil && e.Due.Before(ref) {
		due := *e.Due
		for due.Before(ref) {
			next := due.Shift(*e.Repeat)
			if !next.After(due) {
				// A non-advancing interval never passes validation; bail out
				// rather than spin.
				return false
			}
			due = next
		}
		e.Due = &due
		e.Status = StatusOpen
		return true
	}

	switch {
	case e.Status == StatusOpen && e.Due.Before(ref):
		e.Status = StatusOverdue
		return true
	case e.Status == StatusOverdue && !e.Due.Before(ref):
		e.Status = StatusOpen
		return true
	}
	return false
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	if e.Tags != nil {
		cp.Tags = append([]string(nil), e.Tags...)
	}
	if e.Due != nil {
		due := *e.Due
		cp.Due = &due
	}
	if e.Repeat != nil {
		repeat := *e.Repeat
		cp.Repeat = &repeat
	}
	return &cp
}

// NormalizeTags lower-cases, trims, de-duplicates and sorts tags. A leading
// '#' is dropped so "#Work" and "work" name the same tag.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, raw := range tags {
		for _, field := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' }) {
			tag := normalizeTag(field)
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
}
