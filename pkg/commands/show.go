package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tableflip.dev/daily/pkg/commands/options"
	"tableflip.dev/daily/pkg/runner/show"
)

func addShow(topLevel *cobra.Command, rt *session) {
	fo := &options.FilterOptions{}
	so := &options.ShowOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"get", "ls"},
		Short:   "Show entries matching a filter",
		Long: `Show entries matching every given filter.

Without any filter nothing is selected, pass --all to list the whole journal.`,
		Example: `
daily show -d today
daily show --from 2022-02-01 --to 2022-02-28 --text release
daily show --all --calendar
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()

			c, err := fo.Criteria(rt.Today())
			if err != nil {
				return oo.HandleError(err)
			}
			if c.Empty() {
				return oo.HandleError(errors.New("no filter given, pass --date, --from/--to, --text, --tag, --status, --recurring or --all"))
			}
			svc, err := rt.service()
			if err != nil {
				return oo.HandleError(err)
			}
			cfg, err := rt.config()
			if err != nil {
				return oo.HandleError(err)
			}

			ctx := context.Background()
			if so.Watch {
				var stop context.CancelFunc
				ctx, stop = signal.NotifyContext(ctx, os.Interrupt)
				defer stop()
			}

			s := show.Show{
				Criteria: c,
				ShowID:   ido.ShowID || cfg.ShowID(),
				JSON:     oo.JSON,
				Calendar: so.Calendar,
				Watch:    so.Watch,
				Today:    rt.Today(),
				Out:      cmd.OutOrStdout(),
				Service:  svc,
			}
			err = s.Do(ctx)
			return oo.HandleError(err)
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowArgs(cmd, so)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
