package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultHorizon is the fallback upcoming window used when none is provided.
	DefaultHorizon = "1w"
)

var (
	intervalPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap         = map[string]Interval{
		"d":      {Days: 1},
		"day":    {Days: 1},
		"days":   {Days: 1},
		"w":      {Days: 7},
		"wk":     {Days: 7},
		"wks":    {Days: 7},
		"week":   {Days: 7},
		"weeks":  {Days: 7},
		"m":      {Months: 1},
		"mo":     {Months: 1},
		"month":  {Months: 1},
		"months": {Months: 1},
		"y":      {Months: 12},
		"yr":     {Months: 12},
		"yrs":    {Months: 12},
		"year":   {Months: 12},
		"years":  {Months: 12},
	}
)

// Interval is a calendar-aware span of months and days. Unlike a
// time.Duration it survives month length and DST changes, so "1m" always
// lands on the same day of the next month where that day exists.
type Interval struct {
	Months int
	Days   int
}

// ParseInterval parses a human-friendly interval such as "3d", "2w", "1m",
// "1y" or the composite "1m2w". Empty input yields an error; callers that
// want a default pass DefaultHorizon.
func ParseInterval(input string) (Interval, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return Interval{}, fmt.Errorf("empty interval")
	}

	remaining := trimmed
	total := Interval{}
	for len(remaining) > 0 {
		matches := intervalPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return Interval{}, fmt.Errorf("invalid interval segment %q", strings.TrimSpace(remaining))
		}
		valueStr := matches[1]
		unitStr := matches[2]

		value, err := strconv.Atoi(valueStr)
		if err != nil {
			return Interval{}, fmt.Errorf("invalid interval value %q: %w", valueStr, err)
		}
		base, ok := unitMap[unitStr]
		if !ok {
			return Interval{}, fmt.Errorf("unsupported interval unit %q", unitStr)
		}
		total.Months += value * base.Months
		total.Days += value * base.Days

		remaining = strings.TrimSpace(remaining[len(matches[0]):])
	}

	if total.IsZero() {
		return Interval{}, fmt.Errorf("interval must be greater than zero")
	}
	return total, nil
}

// MustInterval parses the input and panics on error. Intended for tests and
// package-level defaults.
func MustInterval(raw string) Interval {
	iv, err := ParseInterval(raw)
	if err != nil {
		panic(err)
	}
	return iv
}

// IsZero reports whether the interval spans no time at all.
func (iv Interval) IsZero() bool {
	return iv.Months == 0 && iv.Days == 0
}

// Positive reports whether adding the interval always moves time forward.
func (iv Interval) Positive() bool {
	return iv.Months >= 0 && iv.Days >= 0 && !iv.IsZero()
}

// AddTo shifts t forward by the interval.
func (iv Interval) AddTo(t time.Time) time.Time {
	return t.AddDate(0, iv.Months, iv.Days)
}

// String renders the interval using year/month/week/day tokens. The output
// parses back to the same Interval.
func (iv Interval) String() string {
	if iv.IsZero() {
		return "0d"
	}

	var b strings.Builder
	if y := iv.Months / 12; y > 0 {
		fmt.Fprintf(&b, "%dy", y)
	}
	if m := iv.Months % 12; m > 0 {
		fmt.Fprintf(&b, "%dm", m)
	}
	if w := iv.Days / 7; w > 0 {
		fmt.Fprintf(&b, "%dw", w)
	}
	if d := iv.Days % 7; d > 0 {
		fmt.Fprintf(&b, "%dd", d)
	}
	return b.String()
}

// MarshalText stores the interval in its compact string form.
func (iv Interval) MarshalText() ([]byte, error) {
	return []byte(iv.String()), nil
}

// UnmarshalText parses the compact string form.
func (iv *Interval) UnmarshalText(b []byte) error {
	parsed, err := ParseInterval(string(b))
	if err != nil {
		return err
	}
	*iv = parsed
	return nil
}
