package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/daily/pkg/batch"
	"tableflip.dev/daily/pkg/commands/options"
	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/runner/edit"
	"tableflip.dev/daily/pkg/snake"
)

func addEdit(topLevel *cobra.Command, rt *session) {
	fo := &options.FilterOptions{}
	eo := &options.EditOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change every entry matching a filter",
		Long: `Apply one change to every entry matching the filter, or to the entries
named with --id. Entries that can not take the change are reported and
left alone, the rest are saved together.`,
		Example: `
daily edit -d 2022-02-18 --set-text "release v2"
daily edit --tag work --set-status cancelled
daily edit --id 4 --set-due 3/1 --every 1m
daily edit --text typo --delete --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()
			eo.TagsSet = cmd.Flags().Changed("set-tags")

			op, err := eo.Operation(rt.Today())
			if err != nil {
				return oo.HandleError(err)
			}
			return runEdit(cmd, rt, fo, ido, oo, op, !eo.Yes)
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddEditArgs(cmd, eo)
	options.AddIDArgs(cmd, ido)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addDone(topLevel *cobra.Command, rt *session) {
	fo := &options.FilterOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "done",
		Aliases: []string{"complete", "completed"},
		Short:   "Mark entries matching a filter as done",
		Example: `
daily done --id 3
daily done -d yesterday --tag chores
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()
			return runEdit(cmd, rt, fo, ido, oo, batch.SetStatus{Status: entry.StatusDone}, false)
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddIDArgs(cmd, ido)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, rt *session, fo *options.FilterOptions, ido *options.IDOptions, oo *options.OutputOptions, op batch.Operation, confirm bool) error {
	c, err := fo.Criteria(rt.Today())
	if err != nil {
		return oo.HandleError(err)
	}
	sel, err := ido.Selection()
	if err != nil {
		return oo.HandleError(err)
	}
	if len(sel) > 0 && !c.Empty() {
		return oo.HandleError(fmt.Errorf("--id can not be combined with filter %s", c))
	}
	svc, err := rt.service()
	if err != nil {
		return oo.HandleError(err)
	}

	s := edit.Edit{
		Criteria: c,
		IDs:      sel,
		Op:       op,
		ShowID:   ido.ShowID,
		JSON:     oo.JSON,
		Out:      cmd.OutOrStdout(),
		Service:  svc,
	}
	if confirm {
		s.Confirm = func(op batch.Operation, n int) (bool, error) {
			return snake.Confirm(cmd, fmt.Sprintf("%s %d entries", op, n))
		}
	}
	err = s.Do(context.Background())
	return oo.HandleError(err)
}
