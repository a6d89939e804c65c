package options

import (
	"github.com/spf13/cobra"
)

// ShowOptions
type ShowOptions struct {
	Calendar bool
	Watch    bool
}

func AddShowArgs(cmd *cobra.Command, o *ShowOptions) {
	cmd.Flags().BoolVarP(&o.Calendar, "calendar", "c", false,
		"Show a month calendar with entry counts per day.")
	cmd.Flags().BoolVarP(&o.Watch, "watch", "w", false,
		"Keep running and redraw when the journal changes.")
}
