package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/filter"
)

// IDOptions
type IDOptions struct {
	ShowID bool
	IDs    []string
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each entry.")
}

func AddIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().StringSliceVar(&o.IDs, "id", nil,
		"Target entries by id instead of criteria, repeatable.")
}

// Selection parses the --id values. Nil when none were given.
func (o *IDOptions) Selection() (filter.Selection, error) {
	if len(o.IDs) == 0 {
		return nil, nil
	}
	sel := make(filter.Selection, 0, len(o.IDs))
	for _, raw := range o.IDs {
		id, err := entry.ParseID(raw)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("invalid entry id %q", raw)
		}
		sel = append(sel, id)
	}
	return sel, nil
}
