package entry

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/daily/pkg/timeutil"
)

// LayoutISO is the on-disk and default display layout for dates.
const LayoutISO = "2006-01-02"

// Date is a calendar day. The wrapped time is always midnight UTC so two
// dates compare equal exactly when they name the same day.
type Date struct {
	time.Time
}

// NewDate builds a Date from its parts, normalizing overflow the way
// time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day t falls on in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Today returns the current local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD).
func ParseDate(v string) (Date, error) {
	t, err := time.Parse(LayoutISO, strings.TrimSpace(v))
	if err != nil {
		return Date{}, &InvalidDateError{Input: v, Err: err}
	}
	return DateOf(t), nil
}

// MustDate parses v and panics on error. Intended for tests.
func MustDate(v string) Date {
	d, err := ParseDate(v)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

func (d Date) After(o Date) bool {
	return d.Time.After(o.Time)
}

func (d Date) Equal(o Date) bool {
	return d.Time.Equal(o.Time)
}

// Compare returns -1, 0 or +1 depending on whether d is before, on or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Before(o):
		return -1
	case d.After(o):
		return 1
	default:
		return 0
	}
}

// AddDays shifts the date by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time.AddDate(0, 0, n))
}

// Shift moves the date forward by a calendar interval.
func (d Date) Shift(iv timeutil.Interval) Date {
	return DateOf(iv.AddTo(d.Time))
}

func (d Date) SameMonth(o Date) bool {
	return d.Year() == o.Year() && d.Month() == o.Month()
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(LayoutISO)
}
