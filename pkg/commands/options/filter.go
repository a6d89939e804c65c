package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/filter"
)

// FilterOptions are the criteria flags shared by show, edit and done.
type FilterOptions struct {
	Date      string
	From      string
	To        string
	Text      string
	Tag       string
	Status    string
	Recurring bool
	All       bool
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Date, "date", "d", "",
		`Select entries on a date, example: --date="2020-2-28" or -d today.`)
	cmd.Flags().StringVar(&o.From, "from", "",
		"Select entries on or after a date.")
	cmd.Flags().StringVar(&o.To, "to", "",
		"Select entries on or before a date.")
	cmd.Flags().StringVar(&o.Text, "text", "",
		"Select entries whose text contains this, ignoring case.")
	cmd.Flags().StringVar(&o.Tag, "tag", "",
		"Select entries carrying a tag.")
	cmd.Flags().StringVar(&o.Status, "status", "",
		"Select entries by status: open, overdue, done or cancelled.")
	cmd.Flags().BoolVar(&o.Recurring, "recurring", false,
		"Select entries that have a due date or repeat.")
	cmd.Flags().BoolVarP(&o.All, "all", "a", false,
		"Select every entry.")

	_ = cmd.RegisterFlagCompletionFunc("status", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, 4)
		for _, s := range entry.Statuses() {
			names = append(names, s.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// Criteria builds the validated criteria, reading dates relative to today.
func (o *FilterOptions) Criteria(today entry.Date) (filter.Criteria, error) {
	return filter.Options{
		Date:      o.Date,
		From:      o.From,
		To:        o.To,
		Text:      o.Text,
		Tag:       o.Tag,
		Status:    o.Status,
		Recurring: o.Recurring,
		All:       o.All,
		Parse:     DayParser(today),
	}.Criteria()
}
