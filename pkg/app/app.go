package app

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/daily/pkg/batch"
	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/filter"
	"tableflip.dev/daily/pkg/store"
	"tableflip.dev/daily/pkg/timeutil"
	"tableflip.dev/daily/pkg/upcoming"
)

// Service provides the journal operations shared by the CLI runners. Each
// invocation loads the store once, computes, and saves at most once.
type Service struct {
	Store *store.Store
	// Today defaults to entry.Today.
	Today upcoming.Clock
}

var (
	ErrNoStore = errors.New("app: no store configured")
	// ErrNoCriteria is returned by edits without any selecting flag, so an
	// edit can never fall through to every entry by accident.
	ErrNoCriteria = errors.New("app: no criteria given, pass a filter or --all")
)

// Open loads the store configured by cfg into a Service.
func Open(cfg store.Config) (*Service, error) {
	st, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	s := &Service{Store: st}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load (re)reads the journal from disk.
func (s *Service) Load() error {
	if s.Store == nil {
		return ErrNoStore
	}
	_, err := s.Store.Load()
	return err
}

func (s *Service) ready() error {
	if s.Store == nil {
		return ErrNoStore
	}
	if !s.Store.Loaded() {
		return store.ErrNotLoaded
	}
	return nil
}

func (s *Service) today() entry.Date {
	if s.Today != nil {
		return s.Today()
	}
	return entry.Today()
}

func (s *Service) resolver() *upcoming.Resolver {
	return &upcoming.Resolver{Store: s.Store, Today: s.Today}
}

// Add stores a new entry and returns it with its id.
func (s *Service) Add(ctx context.Context, e *entry.Entry) (*entry.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errors.New("app: nil entry")
	}
	if e.Date.IsZero() {
		e.Date = s.today()
	}
	if e.Status == "" {
		e.Status = entry.StatusOpen
	}
	if _, err := s.Store.Add(e); err != nil {
		return nil, err
	}
	return e, nil
}

// AddBatch stores every entry or none of them.
func (s *Service) AddBatch(ctx context.Context, entries []*entry.Entry) ([]entry.ID, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New("app: batch is empty")
	}
	for i, e := range entries {
		if e == nil {
			return nil, fmt.Errorf("app: batch item %d is nil", i+1)
		}
		if e.Status == "" {
			e.Status = entry.StatusOpen
		}
	}
	return s.Store.Add(entries...)
}

// Select returns the entries matching c in store order. Empty criteria
// select nothing.
func (s *Service) Select(ctx context.Context, c filter.Criteria) ([]*entry.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return filter.Entries(s.Store, c), nil
}

// Edit applies op to every entry matching c.
func (s *Service) Edit(ctx context.Context, c filter.Criteria, op batch.Operation) (batch.Result, error) {
	if err := s.ready(); err != nil {
		return batch.Result{}, err
	}
	if c.Empty() {
		return batch.Result{}, ErrNoCriteria
	}
	return s.EditIDs(ctx, filter.Select(s.Store, c), op)
}

// EditIDs applies op to the given ids.
func (s *Service) EditIDs(ctx context.Context, sel filter.Selection, op batch.Operation) (batch.Result, error) {
	if err := s.ready(); err != nil {
		return batch.Result{}, err
	}
	ed := &batch.Editor{Store: s.Store}
	return ed.Apply(ctx, sel, op)
}

// Upcoming returns open entries due within horizon of ref.
func (s *Service) Upcoming(ctx context.Context, ref entry.Date, horizon timeutil.Interval) ([]*entry.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.resolver().Resolve(ref, horizon)
}

// Overdue returns open entries past their due date.
func (s *Service) Overdue(ctx context.Context, ref entry.Date) ([]*entry.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.resolver().Overdue(ref)
}

// Refresh rolls every scheduled entry forward to ref.
func (s *Service) Refresh(ctx context.Context, ref entry.Date) (batch.Result, error) {
	if err := s.ready(); err != nil {
		return batch.Result{}, err
	}
	return s.resolver().Refresh(ctx, ref)
}

// Ref returns ref, or today when ref is zero.
func (s *Service) Ref(ref entry.Date) entry.Date {
	if ref.IsZero() {
		return s.today()
	}
	return ref
}
