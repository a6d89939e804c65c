package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daily/pkg/commands/options"
	"tableflip.dev/daily/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command, rt *session) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the journal and where it is stored.",
		Example: `
daily info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()

			cfg, err := rt.config()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := rt.service()
			if err != nil {
				return oo.HandleError(err)
			}
			s := info.Info{
				Config:  cfg,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
				Service: svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
