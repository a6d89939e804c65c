// Package filter selects journal entries with a conjunction of predicates.
package filter

import (
	"fmt"
	"strings"

	"tableflip.dev/daily/pkg/entry"
)

// Predicate is one condition an entry must meet. The set of predicates is
// closed; see On, Between, Contains, Recurring, Tagged, WithStatus and All.
type Predicate interface {
	Match(e *entry.Entry) bool
	String() string

	kind() kind
	check() error
}

type kind int

const (
	kindOn kind = iota
	kindBetween
	kindContains
	kindRecurring
	kindTagged
	kindStatus
	kindAll
)

// On matches entries recorded on exactly Date.
type On struct {
	Date entry.Date
}

func (p On) Match(e *entry.Entry) bool { return e.Date.Equal(p.Date) }
func (p On) String() string             { return "date=" + p.Date.String() }
func (On) kind() kind                   { return kindOn }

func (p On) check() error {
	if p.Date.IsZero() {
		return &InvalidPredicateError{Predicate: p, Reason: "date is required"}
	}
	return nil
}

// Between matches entries recorded within [From, To], inclusive. A zero
// bound leaves that side open.
type Between struct {
	From entry.Date
	To   entry.Date
}

func (p Between) Match(e *entry.Entry) bool {
	if !p.From.IsZero() && e.Date.Before(p.From) {
		return false
	}
	if !p.To.IsZero() && e.Date.After(p.To) {
		return false
	}
	return true
}

func (p Between) String() string {
	return fmt.Sprintf("range=%s..%s", p.From, p.To)
}

func (Between) kind() kind { return kindBetween }

func (p Between) check() error {
	if p.From.IsZero() && p.To.IsZero() {
		return &InvalidPredicateError{Predicate: p, Reason: "range needs a from or to date"}
	}
	if !p.From.IsZero() && !p.To.IsZero() && p.From.After(p.To) {
		return &InvalidRangeError{From: p.From, To: p.To}
	}
	return nil
}

// Contains matches entries whose text holds Text, ignoring case.
type Contains struct {
	Text string
}

func (p Contains) Match(e *entry.Entry) bool {
	return strings.Contains(strings.ToLower(e.Text), strings.ToLower(p.Text))
}

func (p Contains) String() string { return fmt.Sprintf("text=%q", p.Text) }
func (Contains) kind() kind       { return kindContains }

func (p Contains) check() error {
	if strings.TrimSpace(p.Text) == "" {
		return &InvalidPredicateError{Predicate: p, Reason: "text must not be empty"}
	}
	return nil
}

// Recurring matches entries carrying due or repeat metadata.
type Recurring struct{}

func (Recurring) Match(e *entry.Entry) bool { return e.Scheduled() }
func (Recurring) String() string            { return "recurring" }
func (Recurring) kind() kind                { return kindRecurring }
func (Recurring) check() error              { return nil }

// Tagged matches entries carrying Tag.
type Tagged struct {
	Tag string
}

func (p Tagged) Match(e *entry.Entry) bool { return e.HasTag(p.Tag) }
func (p Tagged) String() string            { return "tag=" + p.Tag }
func (Tagged) kind() kind                  { return kindTagged }

func (p Tagged) check() error {
	if len(entry.NormalizeTags([]string{p.Tag})) != 1 {
		return &InvalidPredicateError{Predicate: p, Reason: "tag must be a single word"}
	}
	return nil
}

// WithStatus matches entries in Status.
type WithStatus struct {
	Status entry.Status
}

func (p WithStatus) Match(e *entry.Entry) bool { return e.Status == p.Status }
func (p WithStatus) String() string            { return "status=" + p.Status.String() }
func (WithStatus) kind() kind                  { return kindStatus }

func (p WithStatus) check() error {
	if !p.Status.Valid() {
		return &InvalidPredicateError{Predicate: p, Reason: "unknown status"}
	}
	return nil
}

// All explicitly asks for every entry. It is the only way an otherwise empty
// Criteria selects anything.
type All struct{}

func (All) Match(*entry.Entry) bool { return true }
func (All) String() string          { return "all" }
func (All) kind() kind              { return kindAll }
func (All) check() error            { return nil }
