package options

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daily/pkg/batch"
	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/timeutil"
)

// ErrNoOperation is returned when edit is given criteria but nothing to do.
var ErrNoOperation = errors.New("no edit given, pass one of --set-text, --set-date, --set-status, --set-due, --set-tags, --lock, --unlock or --delete")

// EditOptions hold the mutation flags of edit. Exactly one may be set.
type EditOptions struct {
	Text   string
	Date   string
	Status string
	Due    string
	Every  string
	Tags   []string
	Lock   bool
	Unlock bool
	Delete bool
	Yes    bool

	// TagsSet records an explicit --set-tags, which may be empty to clear.
	TagsSet bool
}

func AddEditArgs(cmd *cobra.Command, o *EditOptions) {
	cmd.Flags().StringVar(&o.Text, "set-text", "",
		"Replace the text of the selected entries.")
	cmd.Flags().StringVar(&o.Date, "set-date", "",
		"Move the selected entries to another date.")
	cmd.Flags().StringVar(&o.Status, "set-status", "",
		"Set the status: open, overdue, done or cancelled.")
	cmd.Flags().StringVar(&o.Due, "set-due", "",
		`Set the due date, "none" clears it.`)
	cmd.Flags().StringVar(&o.Every, "every", "",
		"Repeat interval to go with --set-due.")
	cmd.Flags().StringSliceVar(&o.Tags, "set-tags", nil,
		"Replace the tags, an empty value clears them.")
	cmd.Flags().BoolVar(&o.Lock, "lock", false,
		"Lock the selected entries against content edits.")
	cmd.Flags().BoolVar(&o.Unlock, "unlock", false,
		"Unlock the selected entries.")
	cmd.Flags().BoolVar(&o.Delete, "delete", false,
		"Delete the selected entries.")
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Do not ask before deleting.")
}

// Operation builds the single batch operation the flags describe.
func (o *EditOptions) Operation(today entry.Date) (batch.Operation, error) {
	var ops []batch.Operation

	if o.Text != "" {
		op, err := batch.NewSetText(o.Text)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if o.Date != "" {
		d, err := ParseDay(o.Date, today)
		if err != nil {
			return nil, withField(err, "set-date")
		}
		ops = append(ops, batch.SetDate{Date: d})
	}
	if o.Status != "" {
		op, err := batch.NewSetStatus(o.Status)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if o.Every != "" && o.Due == "" {
		return nil, entry.ErrRepeatWithoutDue
	}
	if o.Due != "" {
		op, err := o.dueOperation(today)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if o.TagsSet || len(o.Tags) > 0 {
		op, err := batch.NewSetTags(o.Tags...)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if o.Lock && o.Unlock {
		return nil, errors.New("--lock and --unlock are mutually exclusive")
	}
	if o.Lock || o.Unlock {
		ops = append(ops, batch.SetLocked{Locked: o.Lock})
	}
	if o.Delete {
		ops = append(ops, batch.Delete{})
	}

	switch len(ops) {
	case 0:
		return nil, ErrNoOperation
	case 1:
		return ops[0], ops[0].Validate()
	default:
		names := make([]string, 0, len(ops))
		for _, op := range ops {
			names = append(names, op.String())
		}
		return nil, fmt.Errorf("one edit at a time, got: %s", strings.Join(names, ", "))
	}
}

func (o *EditOptions) dueOperation(today entry.Date) (batch.Operation, error) {
	if strings.EqualFold(strings.TrimSpace(o.Due), "none") {
		if o.Every != "" {
			return nil, entry.ErrRepeatWithoutDue
		}
		return batch.SetDue{Clear: true}, nil
	}
	due, err := ParseDay(o.Due, today)
	if err != nil {
		return nil, withField(err, "set-due")
	}
	op := batch.SetDue{Due: due}
	if o.Every != "" {
		iv, err := timeutil.ParseInterval(o.Every)
		if err != nil {
			return nil, err
		}
		op.Repeat = &iv
	}
	return op, nil
}
