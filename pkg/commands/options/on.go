package options

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/filter"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// ParseDay reads the date forms accepted by every date flag: 2020-02-28,
// 2020-2-28, 2/28 and the words today, tomorrow and yesterday. Month/day
// without a year is the next such day on or after today.
func ParseDay(raw string, today entry.Date) (entry.Date, error) {
	in := strings.ToLower(strings.TrimSpace(raw))
	switch in {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	case "":
		return entry.Date{}, &entry.InvalidDateError{Input: raw, Err: errors.New("empty date")}
	}

	if t, err := time.Parse(layoutISO, in); err == nil {
		return entry.DateOf(t), nil
	}
	t, err := time.Parse(layoutISOShort, in)
	if err != nil {
		return entry.Date{}, &entry.InvalidDateError{Input: raw, Err: err}
	}
	d := entry.NewDate(today.Year(), t.Month(), t.Day())
	// I am gonna assume if you said 1/3 on 12/5, you meant next year, not 11 months ago.
	if d.Before(today) {
		d = entry.NewDate(today.Year()+1, t.Month(), t.Day())
	}
	return d, nil
}

// DayParser binds ParseDay to a fixed today for filter.Options.
func DayParser(today entry.Date) filter.DateParser {
	return func(raw string) (entry.Date, error) {
		return ParseDay(raw, today)
	}
}

// OnOptions is the reference date for commands that work relative to a day.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2020-2-28" or --on="2/28".`)
}

// GetOn returns the parsed --on date, or the zero date when it was not given.
func (o *OnOptions) GetOn(today entry.Date) (entry.Date, error) {
	if o.OnString == "" {
		return entry.Date{}, nil
	}
	d, err := ParseDay(o.OnString, today)
	if err != nil {
		return entry.Date{}, withField(err, "on")
	}
	return d, nil
}

func withField(err error, field string) error {
	var de *entry.InvalidDateError
	if errors.As(err, &de) {
		return &entry.InvalidDateError{Input: de.Input, Field: field, Err: de.Err}
	}
	return err
}
