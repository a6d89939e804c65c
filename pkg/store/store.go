package store

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"tableflip.dev/daily/pkg/entry"
)

// JournalKey is the backend key of the journal file.
const JournalKey = "journal"

// Order is the iteration order of a Store.
type Order string

const (
	// OrderDate iterates oldest first, ties broken by id.
	OrderDate Order = "date"
	// OrderInsertion iterates in the order entries were added.
	OrderInsertion Order = "insertion"
)

// ParseOrder validates an order name. Empty means OrderDate.
func ParseOrder(raw string) (Order, error) {
	switch Order(raw) {
	case "", OrderDate:
		return OrderDate, nil
	case OrderInsertion:
		return OrderInsertion, nil
	}
	return "", fmt.Errorf("store: unknown order %q (want date or insertion)", raw)
}

// Backend is the raw byte storage under a Store.
type Backend interface {
	Has(key string) bool
	Read(key string) ([]byte, error)
	// Write must replace the value atomically: a failed write leaves the
	// previous value readable.
	Write(key string, data []byte) error
}

// Locator is implemented by backends that can name where a key lives.
type Locator interface {
	Locate(key string) string
}

// Store is the durable, ordered collection of journal entries. It is loaded
// once per invocation and is not safe for concurrent use.
type Store struct {
	backend Backend
	key     string
	order   Order

	nextID  entry.ID
	entries []*entry.Entry
	loaded  bool
}

// Option configures a Store.
type Option func(*Store)

// WithOrder sets the iteration order.
func WithOrder(o Order) Option {
	return func(s *Store) {
		if o != "" {
			s.order = o
		}
	}
}

// WithKey stores the journal under a key other than JournalKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// New wraps a backend. Call Load before using the Store.
func New(b Backend, opts ...Option) *Store {
	s := &Store{
		backend: b,
		key:     JournalKey,
		order:   OrderDate,
		nextID:  1,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path describes where the journal lives, for messages and watching.
func (s *Store) Path() string {
	if l, ok := s.backend.(Locator); ok {
		return l.Locate(s.key)
	}
	return s.key
}

func (s *Store) Order() Order {
	return s.order
}

// Loaded reports whether Load has succeeded.
func (s *Store) Loaded() bool {
	return s != nil && s.loaded
}

// Load reads the persisted journal. A journal that was never written loads
// as empty. Unreadable or malformed state fails with *CorruptError and leaves
// the Store unloaded.
func (s *Store) Load() ([]*entry.Entry, error) {
	if s.backend == nil {
		return nil, fmt.Errorf("store: no backend configured")
	}
	if !s.backend.Has(s.key) {
		log.Debug().Str("path", s.Path()).Msg("journal not found, starting empty")
		s.nextID = 1
		s.entries = nil
		s.loaded = true
		return nil, nil
	}

	data, err := s.backend.Read(s.key)
	if err != nil {
		return nil, &CorruptError{Path: s.Path(), Reason: "unreadable", Err: err}
	}
	nextID, entries, err := decodeJournal(data)
	if err != nil {
		if ce, ok := err.(*CorruptError); ok {
			ce.Path = s.Path()
		}
		return nil, err
	}
	s.sort(entries)

	s.nextID = nextID
	s.entries = entries
	s.loaded = true
	log.Debug().Str("path", s.Path()).Int("entries", len(entries)).Uint64("next_id", uint64(nextID)).Msg("journal loaded")
	return s.Entries(), nil
}

// Save replaces the persisted journal with entries. Every entry must carry an
// id issued by this Store and pass validation. The write is atomic; when it
// fails both the file and the Store's in-memory state are left as they were.
func (s *Store) Save(entries []*entry.Entry) error {
	if !s.Loaded() {
		return ErrNotLoaded
	}
	staged := make([]*entry.Entry, 0, len(entries))
	seen := make(map[entry.ID]struct{}, len(entries))
	for _, e := range entries {
		if e == nil {
			return fmt.Errorf("store: nil entry")
		}
		if e.ID == 0 || e.ID >= s.nextID {
			return fmt.Errorf("store: entry id %s was not issued by this journal", e.ID)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("store: duplicate entry id %s", e.ID)
		}
		seen[e.ID] = struct{}{}
		if err := e.Validate(); err != nil {
			return err
		}
		staged = append(staged, e.Clone())
	}
	s.sort(staged)

	data, err := encodeJournal(s.nextID, staged)
	if err != nil {
		return fmt.Errorf("store: encode journal: %w", err)
	}
	if err := s.backend.Write(s.key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", s.Path(), err)
	}
	s.entries = staged
	log.Debug().Str("path", s.Path()).Int("entries", len(staged)).Msg("journal saved")
	return nil
}

// NextID issues a fresh id. The high-water mark is persisted with the next
// Save, so ids are never reused even after the entries carrying them are
// deleted.
func (s *Store) NextID() entry.ID {
	id := s.nextID
	s.nextID++
	return id
}

// HighWater returns the id the next NextID call will issue, without
// issuing it.
func (s *Store) HighWater() entry.ID {
	return s.nextID
}

// Add assigns ids to entries and persists them alongside the existing
// journal in a single write. Either every entry is added or none is.
func (s *Store) Add(entries ...*entry.Entry) ([]entry.ID, error) {
	if !s.Loaded() {
		return nil, ErrNotLoaded
	}
	mark := s.nextID
	all := make([]*entry.Entry, 0, len(s.entries)+len(entries))
	all = append(all, s.entries...)
	ids := make([]entry.ID, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			s.nextID = mark
			return nil, fmt.Errorf("store: nil entry")
		}
		staged := e.Clone()
		staged.ID = s.NextID()
		ids = append(ids, staged.ID)
		all = append(all, staged)
	}
	if err := s.Save(all); err != nil {
		s.nextID = mark
		return nil, err
	}
	for i, e := range entries {
		e.ID = ids[i]
	}
	return ids, nil
}

// Remove deletes the entry with id and persists the result.
func (s *Store) Remove(id entry.ID) error {
	if !s.Loaded() {
		return ErrNotLoaded
	}
	rest := make([]*entry.Entry, 0, len(s.entries))
	found := false
	for _, e := range s.entries {
		if e.ID == id {
			found = true
			continue
		}
		rest = append(rest, e)
	}
	if !found {
		return &NotFoundError{ID: id}
	}
	return s.Save(rest)
}

// Get returns a copy of the entry with id.
func (s *Store) Get(id entry.ID) (*entry.Entry, error) {
	for _, e := range s.entries {
		if e.ID == id {
			return e.Clone(), nil
		}
	}
	return nil, &NotFoundError{ID: id}
}

// Entries returns copies of every entry in store order.
func (s *Store) Entries() []*entry.Entry {
	out := make([]*entry.Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out
}

func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) sort(entries []*entry.Entry) {
	switch s.order {
	case OrderInsertion:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].ID < entries[j].ID
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			if c := entries[i].Date.Compare(entries[j].Date); c != 0 {
				return c < 0
			}
			return entries[i].ID < entries[j].ID
		})
	}
}
