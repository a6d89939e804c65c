package options

import (
	"github.com/spf13/cobra"
)

// LogOptions
type LogOptions struct {
	Level string
	Path  string
}

// AddLogArgs registers the persistent flags every command shares.
func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().StringVar(&o.Level, "log-level", "",
		"Log level: trace, debug, info, warn or error. Overrides the config file.")
	cmd.PersistentFlags().StringVar(&o.Path, "path", "",
		"Directory holding the journal. Overrides the config file.")
}
