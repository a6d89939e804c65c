package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daily/pkg/app"
	"tableflip.dev/daily/pkg/commands/options"
	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command, rt *session) {
	ao := &options.AddOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add an entry",
		Example: `
daily add walked the dog
daily add --on 2/28 --due 3/1 --every 1m --tag bills pay rent
daily add --batch entries.txt
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if ao.Batch != "" {
				if len(args) > 0 {
					return errors.New("--batch takes no text arguments")
				}
				return nil
			}
			if len(args) < 1 {
				return errors.New("requires text for the entry")
			}
			ao.Message = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()

			entries, err := addEntries(cmd, ao, rt.Today())
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := rt.service()
			if err != nil {
				return oo.HandleError(err)
			}

			s := add.Add{
				Entries: entries,
				JSON:    oo.JSON,
				ShowID:  ido.ShowID,
				Out:     cmd.OutOrStdout(),
				Service: svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddAddArgs(cmd, ao)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addEntries(cmd *cobra.Command, ao *options.AddOptions, today entry.Date) ([]*entry.Entry, error) {
	if ao.Batch == "" {
		e, err := ao.Entry(today)
		if err != nil {
			return nil, err
		}
		return []*entry.Entry{e}, nil
	}
	if ao.OnString != "" || ao.Due != "" || ao.Every != "" || len(ao.Tags) > 0 {
		return nil, errors.New("--batch lines carry their own date, tags and due, drop the other add flags")
	}

	var r io.Reader = cmd.InOrStdin()
	if ao.Batch != "-" {
		f, err := os.Open(ao.Batch)
		if err != nil {
			return nil, fmt.Errorf("open batch: %w", err)
		}
		defer f.Close()
		r = f
	}
	return app.ParseBatch(r)
}
