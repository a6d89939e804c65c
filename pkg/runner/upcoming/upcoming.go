package upcoming

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/daily/pkg/app"
	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/printers"
	"tableflip.dev/daily/pkg/timeutil"
)

// Upcoming lists open entries due within Horizon of On, and optionally the
// ones already late.
type Upcoming struct {
	On      entry.Date
	Horizon timeutil.Interval
	Overdue bool
	ShowID  bool
	JSON    bool
	Out     io.Writer

	Service *app.Service
}

type report struct {
	Ref      entry.Date     `json:"ref"`
	Horizon  string         `json:"horizon"`
	Upcoming []*entry.Entry `json:"upcoming"`
	Overdue  []*entry.Entry `json:"overdue,omitempty"`
}

func (n *Upcoming) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list upcoming, no journal")
	}
	ref := n.Service.Ref(n.On)

	due, err := n.Service.Upcoming(ctx, ref, n.Horizon)
	if err != nil {
		return err
	}
	var late []*entry.Entry
	if n.Overdue {
		if late, err = n.Service.Overdue(ctx, ref); err != nil {
			return err
		}
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.JSON {
		if due == nil {
			due = []*entry.Entry{}
		}
		return pp.JSON(report{Ref: ref, Horizon: n.Horizon.String(), Upcoming: due, Overdue: late})
	}
	pp.Upcoming(ref, due, late)
	return nil
}
