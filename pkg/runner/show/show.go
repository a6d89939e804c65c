package show

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog/log"

	"tableflip.dev/daily/pkg/app"
	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/filter"
	"tableflip.dev/daily/pkg/printers"
	"tableflip.dev/daily/pkg/store"
)

// Show prints the entries matching Criteria.
type Show struct {
	Criteria filter.Criteria
	ShowID   bool
	JSON     bool
	Calendar bool
	Watch    bool
	Today    entry.Date
	Out      io.Writer

	Service *app.Service
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show, no journal")
	}
	if err := n.render(ctx); err != nil {
		return err
	}
	if !n.Watch {
		return nil
	}

	events, err := store.Watch(ctx, n.Service.Store.Path())
	if err != nil {
		return err
	}
	for ev := range events {
		if ev.Type == store.EventWatchError {
			log.Warn().Str("path", ev.Path).Msg("show: watch error, reloading")
		}
		if err := n.Service.Load(); err != nil {
			// A half-written file from another editor; wait for the next event.
			log.Warn().Err(err).Msg("show: reload failed")
			continue
		}
		if err := n.render(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (n *Show) render(ctx context.Context) error {
	entries, err := n.Service.Select(ctx, n.Criteria)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	switch {
	case n.JSON:
		if entries == nil {
			entries = []*entry.Entry{}
		}
		return pp.JSON(entries)
	case n.Calendar:
		pp.Calendar(n.Today, entries...)
	default:
		pp.TitleWithCount(n.Criteria.String(), len(entries))
		pp.Entries(entries...)
	}
	return nil
}
