package filter

import (
	"tableflip.dev/daily/pkg/entry"
)

// Source is anything that can list entries in store order.
type Source interface {
	Entries() []*entry.Entry
}

// Selection is an ordered list of entry ids produced by one query. It is
// never cached; run Select again after the store changes.
type Selection []entry.ID

// Contains reports whether id was selected.
func (s Selection) Contains(id entry.ID) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Select returns the ids of the entries in src that satisfy c, in src's
// order. Criteria without predicates selects nothing unless All was asked
// for.
func Select(src Source, c Criteria) Selection {
	if src == nil || c.Empty() {
		return Selection{}
	}
	sel := Selection{}
	for _, e := range src.Entries() {
		if c.Match(e) {
			sel = append(sel, e.ID)
		}
	}
	return sel
}

// Entries is Select returning the matching entries themselves.
func Entries(src Source, c Criteria) []*entry.Entry {
	if src == nil || c.Empty() {
		return nil
	}
	var out []*entry.Entry
	for _, e := range src.Entries() {
		if c.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
