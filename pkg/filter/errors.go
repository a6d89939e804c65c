package filter

import (
	"fmt"
	"strings"

	"tableflip.dev/daily/pkg/entry"
)

// AmbiguousCriteriaError reports predicates that cannot be combined, such as
// a single date alongside a date range.
type AmbiguousCriteriaError struct {
	Predicates []Predicate
}

func (e *AmbiguousCriteriaError) Error() string {
	names := make([]string, len(e.Predicates))
	for i, p := range e.Predicates {
		names[i] = p.String()
	}
	return fmt.Sprintf("filter: ambiguous criteria, cannot combine %s", strings.Join(names, " and "))
}

// InvalidRangeError reports a date range that ends before it starts.
type InvalidRangeError struct {
	From entry.Date
	To   entry.Date
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("filter: invalid range, from %s is after to %s", e.From, e.To)
}

// InvalidPredicateError reports a predicate whose own argument is unusable.
type InvalidPredicateError struct {
	Predicate Predicate
	Reason    string
}

func (e *InvalidPredicateError) Error() string {
	return fmt.Sprintf("filter: invalid predicate %s: %s", e.Predicate, e.Reason)
}
