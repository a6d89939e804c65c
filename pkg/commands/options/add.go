package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/timeutil"
)

// AddOptions
type AddOptions struct {
	Message  string
	OnString string
	Due      string
	Every    string
	Tags     []string
	Batch    string
}

func AddAddArgs(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date for the entry, example: --on="2020-2-28". Defaults to today.`)
	cmd.Flags().StringVar(&o.Due, "due", "",
		"Due date, makes the entry show up in upcoming.")
	cmd.Flags().StringVar(&o.Every, "every", "",
		`Repeat interval after the due date, example: --every=1w. Requires --due.`)
	cmd.Flags().StringSliceVarP(&o.Tags, "tag", "t", nil,
		"Tag the entry, repeatable or comma separated.")
	cmd.Flags().StringVar(&o.Batch, "batch", "",
		`Add one entry per line from a file, "-" for stdin.`)
}

// Entry builds the entry described by the flags. Dates are read relative to
// today; validation happens when the entry is stored.
func (o *AddOptions) Entry(today entry.Date) (*entry.Entry, error) {
	on := today
	if o.OnString != "" {
		d, err := ParseDay(o.OnString, today)
		if err != nil {
			return nil, withField(err, "on")
		}
		on = d
	}
	e := entry.New(on, o.Message, o.Tags...)

	if o.Every != "" && o.Due == "" {
		return nil, entry.ErrRepeatWithoutDue
	}
	if o.Due != "" {
		due, err := ParseDay(o.Due, today)
		if err != nil {
			return nil, withField(err, "due")
		}
		var repeat *timeutil.Interval
		if o.Every != "" {
			iv, err := timeutil.ParseInterval(o.Every)
			if err != nil {
				return nil, err
			}
			repeat = &iv
		}
		e.Schedule(due, repeat)
	}
	return e, nil
}
