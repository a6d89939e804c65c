package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daily/pkg/commands/options"
	"tableflip.dev/daily/pkg/runner/upcoming"
)

func addUpcoming(topLevel *cobra.Command, rt *session) {
	uo := &options.UpcomingOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "upcoming",
		Aliases: []string{"next", "future"},
		Short:   "List what falls due soon",
		Example: `
daily upcoming
daily upcoming --horizon 1m --on 3/1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()

			cfg, err := rt.config()
			if err != nil {
				return oo.HandleError(err)
			}
			on, err := uo.GetOn(rt.Today())
			if err != nil {
				return oo.HandleError(err)
			}
			horizon, err := uo.GetHorizon(cfg.Horizon())
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := rt.service()
			if err != nil {
				return oo.HandleError(err)
			}

			s := upcoming.Upcoming{
				On:      on,
				Horizon: horizon,
				Overdue: uo.Overdue,
				ShowID:  ido.ShowID || cfg.ShowID(),
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
				Service: svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddUpcomingArgs(cmd, uo)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
