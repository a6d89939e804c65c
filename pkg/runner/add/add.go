package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/daily/pkg/app"
	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/printers"
)

// Add stores one entry, or a batch of them all-or-nothing.
type Add struct {
	Entries []*entry.Entry
	JSON    bool
	ShowID  bool
	Out     io.Writer

	Service *app.Service
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no journal")
	}

	switch len(n.Entries) {
	case 0:
		return errors.New("nothing to add")
	case 1:
		if _, err := n.Service.Add(ctx, n.Entries[0]); err != nil {
			return err
		}
	default:
		if _, err := n.Service.AddBatch(ctx, n.Entries); err != nil {
			return err
		}
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.JSON {
		return pp.JSON(n.Entries)
	}
	pp.Added(n.Entries...)
	return nil
}
