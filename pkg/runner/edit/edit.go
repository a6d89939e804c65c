package edit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/daily/pkg/app"
	"tableflip.dev/daily/pkg/batch"
	"tableflip.dev/daily/pkg/filter"
	"tableflip.dev/daily/pkg/printers"
)

// ErrDeclined is returned when the user answers no to a confirmation.
var ErrDeclined = errors.New("edit: not confirmed, nothing changed")

// Confirmer asks the user whether to go ahead with n entries.
type Confirmer func(op batch.Operation, n int) (bool, error)

// Edit applies one operation to the entries picked by IDs, or by Criteria
// when no IDs are given.
type Edit struct {
	Criteria filter.Criteria
	IDs      filter.Selection
	Op       batch.Operation
	// Confirm is consulted before deleting; nil means go ahead.
	Confirm Confirmer
	ShowID  bool
	JSON    bool
	Out     io.Writer

	Service *app.Service
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no journal")
	}

	sel := n.IDs
	if len(sel) == 0 {
		if n.Criteria.Empty() {
			return app.ErrNoCriteria
		}
		entries, err := n.Service.Select(ctx, n.Criteria)
		if err != nil {
			return err
		}
		sel = make(filter.Selection, 0, len(entries))
		for _, e := range entries {
			sel = append(sel, e.ID)
		}
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if len(sel) == 0 {
		if n.JSON {
			return pp.JSON(batch.Result{Op: n.Op})
		}
		pp.TitleWithCount(n.Criteria.String(), 0)
		pp.Entries()
		return nil
	}

	if _, del := n.Op.(batch.Delete); del && n.Confirm != nil {
		ok, err := n.Confirm(n.Op, len(sel))
		if err != nil {
			return err
		}
		if !ok {
			return ErrDeclined
		}
	}

	res, err := n.Service.EditIDs(ctx, sel, n.Op)
	if err != nil {
		return err
	}

	if n.JSON {
		if err := pp.JSON(res); err != nil {
			return err
		}
	} else {
		pp.Result(res)
	}
	if failed := res.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d of %d entries not edited", len(failed), len(res.Outcomes))
	}
	return nil
}
