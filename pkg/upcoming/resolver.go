// Package upcoming derives due and overdue entries relative to a reference
// day and rolls scheduled entries forward.
package upcoming

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"tableflip.dev/daily/pkg/batch"
	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/filter"
	"tableflip.dev/daily/pkg/timeutil"
)

// Clock reports the current day.
type Clock func() entry.Date

// Resolver answers upcoming and overdue queries against a store and commits
// refreshes through a batch editor.
type Resolver struct {
	Store batch.Store
	// Today defaults to entry.Today.
	Today Clock
}

// Ref returns ref, or today when ref is zero.
func (r *Resolver) Ref(ref entry.Date) entry.Date {
	if !ref.IsZero() {
		return ref
	}
	if r.Today != nil {
		return r.Today()
	}
	return entry.Today()
}

func (r *Resolver) available() error {
	if r == nil || r.Store == nil || !r.Store.Loaded() {
		return batch.ErrStoreUnavailable
	}
	return nil
}

// project returns every scheduled entry as it would look after a refresh on
// ref, in store order. Nothing is written.
func (r *Resolver) project(ref entry.Date) []*entry.Entry {
	var out []*entry.Entry
	for _, e := range r.Store.Entries() {
		if !e.Scheduled() {
			continue
		}
		e.Reconcile(ref)
		out = append(out, e)
	}
	return out
}

// Resolve returns the open entries falling due within [ref, ref+horizon],
// soonest first, with ties in store order. Repeating entries are considered
// at their next occurrence on or after ref even before a refresh has rolled
// them forward, and the returned copies carry that due date.
func (r *Resolver) Resolve(ref entry.Date, horizon timeutil.Interval) ([]*entry.Entry, error) {
	if err := r.available(); err != nil {
		return nil, err
	}
	if !horizon.Positive() {
		return nil, fmt.Errorf("upcoming: horizon %s must be positive", horizon)
	}
	ref = r.Ref(ref)
	end := ref.Shift(horizon)

	var due []*entry.Entry
	for _, e := range r.project(ref) {
		if !e.Open() || e.Due.Before(ref) || e.Due.After(end) {
			continue
		}
		due = append(due, e)
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].Due.Before(*due[j].Due)
	})
	return due, nil
}

// Upcoming is Resolve returning ids.
func (r *Resolver) Upcoming(ref entry.Date, horizon timeutil.Interval) (filter.Selection, error) {
	due, err := r.Resolve(ref, horizon)
	if err != nil {
		return nil, err
	}
	return ids(due), nil
}

// Overdue returns the open one-off entries whose due date is before ref,
// oldest first.
func (r *Resolver) Overdue(ref entry.Date) ([]*entry.Entry, error) {
	if err := r.available(); err != nil {
		return nil, err
	}
	ref = r.Ref(ref)
	var late []*entry.Entry
	for _, e := range r.project(ref) {
		if e.Open() && e.Due.Before(ref) {
			late = append(late, e)
		}
	}
	sort.SliceStable(late, func(i, j int) bool {
		return late[i].Due.Before(*late[j].Due)
	})
	return late, nil
}

// Scheduled selects every entry carrying due or repeat metadata, regardless
// of date or status.
func (r *Resolver) Scheduled() (filter.Selection, error) {
	if err := r.available(); err != nil {
		return nil, err
	}
	return filter.Select(r.Store, filter.MustCriteria(filter.Recurring{})), nil
}

// Refresh reconciles every scheduled entry against ref and commits the
// changes with one save. Refreshing again with the same ref changes nothing.
func (r *Resolver) Refresh(ctx context.Context, ref entry.Date) (batch.Result, error) {
	sel, err := r.Scheduled()
	if err != nil {
		return batch.Result{}, err
	}
	ref = r.Ref(ref)
	ed := &batch.Editor{Store: r.Store}
	res, err := ed.Apply(ctx, sel, batch.Roll{Ref: ref})
	if err != nil {
		return res, err
	}
	log.Debug().Str("ref", ref.String()).Int("scheduled", len(sel)).Int("changed", res.Changed()).Msg("refresh")
	return res, nil
}

func ids(entries []*entry.Entry) filter.Selection {
	sel := make(filter.Selection, 0, len(entries))
	for _, e := range entries {
		sel = append(sel, e.ID)
	}
	return sel
}
