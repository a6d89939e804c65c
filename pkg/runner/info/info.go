package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/daily/pkg/app"
	"tableflip.dev/daily/pkg/printers"
	"tableflip.dev/daily/pkg/store"
)

// Info reports where the journal lives and what is in it.
type Info struct {
	Config store.Config
	JSON   bool
	Out    io.Writer

	Service *app.Service
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Service == nil {
		return errors.New("failed to open the journal")
	}

	st, err := n.Service.Stats(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: out}
	if n.JSON {
		return pp.JSON(st)
	}

	if override := os.Getenv("DAILY_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "DAILY_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "DAILY_CONFIG_PATH env var not set")
	}
	_, _ = fmt.Fprintln(out, "Config.path:", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.order:", n.Config.Order())
	_, _ = fmt.Fprintln(out, "Config.horizon:", n.Config.Horizon())
	pp.NewLine()
	pp.Stats(st)
	return nil
}
