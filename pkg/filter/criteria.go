package filter

import (
	"errors"
	"strings"

	"tableflip.dev/daily/pkg/entry"
)

// Criteria is a validated conjunction of predicates. The zero value has no
// predicates and selects nothing.
type Criteria struct {
	preds []Predicate
	all   bool
}

// NewCriteria validates preds and combines them. A single date together with
// a range, or the same date predicate twice, is ambiguous and rejected
// rather than resolved by precedence.
func NewCriteria(preds ...Predicate) (Criteria, error) {
	var (
		c    Criteria
		on   Predicate
		rng  Predicate
		seen = make(map[kind]Predicate, len(preds))
	)
	for _, p := range preds {
		if p == nil {
			continue
		}
		if err := p.check(); err != nil {
			return Criteria{}, err
		}
		switch p.kind() {
		case kindOn:
			if on != nil {
				return Criteria{}, &AmbiguousCriteriaError{Predicates: []Predicate{on, p}}
			}
			on = p
		case kindBetween:
			if rng != nil {
				return Criteria{}, &AmbiguousCriteriaError{Predicates: []Predicate{rng, p}}
			}
			rng = p
		case kindAll:
			c.all = true
			continue
		case kindRecurring:
			if _, dup := seen[kindRecurring]; dup {
				continue
			}
		}
		seen[p.kind()] = p
		c.preds = append(c.preds, p)
	}
	if on != nil && rng != nil {
		return Criteria{}, &AmbiguousCriteriaError{Predicates: []Predicate{on, rng}}
	}
	return c, nil
}

// MustCriteria is NewCriteria that panics on error. Intended for tests.
func MustCriteria(preds ...Predicate) Criteria {
	c, err := NewCriteria(preds...)
	if err != nil {
		panic(err)
	}
	return c
}

// Empty reports whether the criteria carries no predicate and no request for
// every entry.
func (c Criteria) Empty() bool {
	return len(c.preds) == 0 && !c.all
}

// MatchAll reports whether All was requested.
func (c Criteria) MatchAll() bool {
	return c.all
}

// Predicates returns the narrowing predicates, excluding All.
func (c Criteria) Predicates() []Predicate {
	return append([]Predicate(nil), c.preds...)
}

// Match reports whether e satisfies every predicate. An empty Criteria
// matches nothing.
func (c Criteria) Match(e *entry.Entry) bool {
	if c.Empty() || e == nil {
		return false
	}
	for _, p := range c.preds {
		if !p.Match(e) {
			return false
		}
	}
	return true
}

func (c Criteria) String() string {
	if c.Empty() {
		return "(none)"
	}
	parts := make([]string, 0, len(c.preds)+1)
	if c.all {
		parts = append(parts, All{}.String())
	}
	for _, p := range c.preds {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " ")
}

// DateParser turns user input into a date.
type DateParser func(string) (entry.Date, error)

// Options is the flag-shaped form of a Criteria. Empty strings mean the flag
// was not given.
type Options struct {
	Date      string
	From      string
	To        string
	Text      string
	Tag       string
	Status    string
	Recurring bool
	All       bool

	// Parse reads the date flags; entry.ParseDate when nil.
	Parse DateParser
}

// Criteria builds and validates the criteria the options describe. Date
// inputs that fail to parse are reported as *entry.InvalidDateError naming
// the flag.
func (o Options) Criteria() (Criteria, error) {
	parse := o.Parse
	if parse == nil {
		parse = entry.ParseDate
	}
	date := func(field, raw string) (entry.Date, error) {
		d, err := parse(raw)
		if err != nil {
			var de *entry.InvalidDateError
			if errors.As(err, &de) {
				return entry.Date{}, &entry.InvalidDateError{Input: raw, Field: field, Err: de.Err}
			}
			return entry.Date{}, &entry.InvalidDateError{Input: raw, Field: field, Err: err}
		}
		return d, nil
	}

	var preds []Predicate
	if o.Date != "" {
		d, err := date("date", o.Date)
		if err != nil {
			return Criteria{}, err
		}
		preds = append(preds, On{Date: d})
	}
	if o.From != "" || o.To != "" {
		var rng Between
		var err error
		if o.From != "" {
			if rng.From, err = date("from", o.From); err != nil {
				return Criteria{}, err
			}
		}
		if o.To != "" {
			if rng.To, err = date("to", o.To); err != nil {
				return Criteria{}, err
			}
		}
		preds = append(preds, rng)
	}
	if o.Text != "" {
		preds = append(preds, Contains{Text: o.Text})
	}
	if o.Tag != "" {
		preds = append(preds, Tagged{Tag: o.Tag})
	}
	if o.Status != "" {
		s, err := entry.ParseStatus(o.Status)
		if err != nil {
			return Criteria{}, err
		}
		preds = append(preds, WithStatus{Status: s})
	}
	if o.Recurring {
		preds = append(preds, Recurring{})
	}
	if o.All {
		preds = append(preds, All{})
	}
	return NewCriteria(preds...)
}
