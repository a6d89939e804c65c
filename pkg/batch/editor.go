package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/filter"
	"tableflip.dev/daily/pkg/store"
)

// ErrStoreUnavailable is returned when the editor has no loaded store to
// resolve a selection against.
var ErrStoreUnavailable = errors.New("batch: store unavailable")

// Store is the persistence the editor needs. *store.Store satisfies it.
type Store interface {
	Loaded() bool
	Entries() []*entry.Entry
	Save(entries []*entry.Entry) error
}

// Outcome is what happened to one selected entry.
type Outcome struct {
	ID      entry.ID
	Changed bool
	Deleted bool
	Err     error
}

// Result reports a batch, one outcome per selected id in selection order.
type Result struct {
	Op       Operation
	Outcomes []Outcome
	// Committed is true when the successful edits were saved.
	Committed bool
}

// Succeeded counts outcomes without an error.
func (r Result) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the outcomes that carry an error.
func (r Result) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Changed counts entries that were modified or deleted.
func (r Result) Changed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil && (o.Changed || o.Deleted) {
			n++
		}
	}
	return n
}

// Err joins the per-entry failures, or returns nil when every entry
// succeeded.
func (r Result) Err() error {
	var errs []error
	for _, o := range r.Failed() {
		errs = append(errs, fmt.Errorf("entry %s: %w", o.ID, o.Err))
	}
	return errors.Join(errs...)
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	type outcome struct {
		ID      entry.ID `json:"id"`
		Changed bool     `json:"changed"`
		Deleted bool     `json:"deleted,omitempty"`
		Error   string   `json:"error,omitempty"`
	}
	out := outcome{ID: o.ID, Changed: o.Changed, Deleted: o.Deleted}
	if o.Err != nil {
		out.Error = o.Err.Error()
	}
	return json.Marshal(out)
}

func (r Result) MarshalJSON() ([]byte, error) {
	type result struct {
		Op        string    `json:"op"`
		Committed bool      `json:"committed"`
		Changed   int       `json:"changed"`
		Outcomes  []Outcome `json:"outcomes"`
	}
	out := result{Committed: r.Committed, Changed: r.Changed(), Outcomes: r.Outcomes}
	if r.Op != nil {
		out.Op = r.Op.String()
	}
	if out.Outcomes == nil {
		out.Outcomes = []Outcome{}
	}
	return json.Marshal(out)
}

// Editor is the only writer of entry state.
type Editor struct {
	Store Store
}

// Apply runs op against every id in sel. Failures on individual entries are
// recorded in the Result and do not stop the batch. Apply itself fails,
// before touching anything, when the store is unavailable or op is invalid,
// and after the loop when the single save of the successful edits fails. In
// that last case nothing is committed.
func (ed *Editor) Apply(ctx context.Context, sel filter.Selection, op Operation) (Result, error) {
	if ed == nil || ed.Store == nil || !ed.Store.Loaded() {
		return Result{}, ErrStoreUnavailable
	}
	if op == nil {
		return Result{}, errors.New("batch: no operation")
	}
	if err := op.Validate(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	current := ed.Store.Entries()
	byID := make(map[entry.ID]int, len(current))
	for i, e := range current {
		byID[e.ID] = i
	}

	res := Result{Op: op, Outcomes: make([]Outcome, 0, len(sel))}
	deleted := make(map[entry.ID]struct{})
	dirty := false
	seen := make(map[entry.ID]struct{}, len(sel))
	for _, id := range sel {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		out := Outcome{ID: id}
		idx, ok := byID[id]
		if !ok {
			out.Err = &store.NotFoundError{ID: id}
			res.Outcomes = append(res.Outcomes, out)
			continue
		}

		clone := current[idx].Clone()
		changed, err := op.apply(clone)
		switch {
		case err != nil:
			out.Err = err
		case !changed:
		case isDelete(op):
			out.Deleted = true
			deleted[id] = struct{}{}
			dirty = true
		default:
			if verr := clone.Validate(); verr != nil {
				out.Err = verr
				break
			}
			out.Changed = true
			current[idx] = clone
			dirty = true
		}
		if out.Err != nil {
			log.Debug().Str("op", op.String()).Uint64("id", uint64(id)).Err(out.Err).Msg("batch entry rejected")
		}
		res.Outcomes = append(res.Outcomes, out)
	}

	if !dirty {
		return res, nil
	}

	next := make([]*entry.Entry, 0, len(current))
	for _, e := range current {
		if _, gone := deleted[e.ID]; gone {
			continue
		}
		next = append(next, e)
	}
	if err := ed.Store.Save(next); err != nil {
		return res, fmt.Errorf("batch: %s: commit failed, no changes saved: %w", op, err)
	}
	res.Committed = true
	log.Debug().Str("op", op.String()).Int("changed", res.Changed()).Int("failed", len(res.Failed())).Msg("batch committed")
	return res, nil
}

func isDelete(op Operation) bool {
	_, ok := op.(Delete)
	return ok
}
