package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daily/pkg/timeutil"
)

// UpcomingOptions
type UpcomingOptions struct {
	OnOptions
	Horizon string
	Overdue bool
}

func AddUpcomingArgs(cmd *cobra.Command, o *UpcomingOptions) {
	AddOnArgs(cmd, &o.OnOptions)
	cmd.Flags().StringVar(&o.Horizon, "horizon", "",
		`How far ahead to look, example: --horizon=2w. Defaults to the configured horizon.`)
	cmd.Flags().BoolVar(&o.Overdue, "overdue", true,
		"Also list open entries past their due date.")
}

// GetHorizon returns the --horizon interval or def when it was not given.
func (o *UpcomingOptions) GetHorizon(def timeutil.Interval) (timeutil.Interval, error) {
	if o.Horizon == "" {
		return def, nil
	}
	return timeutil.ParseInterval(o.Horizon)
}
