package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daily/pkg/commands/options"
	"tableflip.dev/daily/pkg/runner/refresh"
)

func addRefresh(topLevel *cobra.Command, rt *session) {
	on := &options.OnOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Roll repeating entries forward and flag missed ones overdue",
		Example: `
daily refresh
daily refresh --on 2022-03-01
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()

			ref, err := on.GetOn(rt.Today())
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := rt.service()
			if err != nil {
				return oo.HandleError(err)
			}

			s := refresh.Refresh{
				On:      ref,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
				Service: svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
