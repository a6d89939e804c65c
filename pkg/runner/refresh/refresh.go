package refresh

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/daily/pkg/app"
	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/printers"
)

// Refresh rolls repeating entries forward and marks missed ones overdue.
type Refresh struct {
	On   entry.Date
	JSON bool
	Out  io.Writer

	Service *app.Service
}

func (n *Refresh) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not refresh, no journal")
	}
	res, err := n.Service.Refresh(ctx, n.Service.Ref(n.On))
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: n.Out}
	if n.JSON {
		return pp.JSON(res)
	}
	pp.Result(res)
	return res.Err()
}
