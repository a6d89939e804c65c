package filter

import (
	"errors"
	"fmt"
	"testing"

	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/timeutil"
)

type fakeSource []*entry.Entry

func (f fakeSource) Entries() []*entry.Entry { return f }

func journal() fakeSource {
	dentist := entry.New(entry.MustDate("2022-02-10"), "Dentist appointment", "health")
	dentist.ID = 1
	release := entry.New(entry.MustDate("2022-02-18"), "release v1.2")
	release.ID = 2
	release.Complete()
	return fakeSource{dentist, release}
}

func ids(sel Selection) string {
	return fmt.Sprint([]entry.ID(sel))
}

func TestSelectExamples(t *testing.T) {
	src := journal()

	byDate := MustCriteria(On{Date: entry.MustDate("2022-02-18")})
	if got := ids(Select(src, byDate)); got != "[2]" {
		t.Fatalf("date criteria selected %s", got)
	}

	if got := Select(src, MustCriteria()); len(got) != 0 {
		t.Fatalf("empty criteria selected %v", got)
	}
	if got := Select(src, Criteria{}); len(got) != 0 {
		t.Fatalf("zero criteria selected %v", got)
	}

	if got := ids(Select(src, MustCriteria(All{}))); got != "[1 2]" {
		t.Fatalf("all selected %s", got)
	}
}

func TestEmptyOptionsSelectNothing(t *testing.T) {
	c, err := Options{}.Criteria()
	if err != nil {
		t.Fatalf("criteria: %v", err)
	}
	if !c.Empty() {
		t.Fatalf("expected empty criteria, got %s", c)
	}
	if got := Select(journal(), c); len(got) != 0 {
		t.Fatalf("empty options selected %v", got)
	}
}

func TestOwnDateAlwaysSelects(t *testing.T) {
	src := journal()
	for _, e := range src {
		sel := Select(src, MustCriteria(On{Date: e.Date}))
		if !sel.Contains(e.ID) {
			t.Fatalf("entry %s not selected by its own date %s", e.ID, e.Date)
		}
		rng := Select(src, MustCriteria(Between{From: e.Date, To: e.Date}))
		if !rng.Contains(e.ID) {
			t.Fatalf("entry %s not selected by its own single-day range", e.ID)
		}
	}
}

func TestPredicates(t *testing.T) {
	src := journal()
	tests := map[string]struct {
		preds []Predicate
		want  string
	}{
		"text ignores case":  {preds: []Predicate{Contains{Text: "DENTIST"}}, want: "[1]"},
		"text no match":      {preds: []Predicate{Contains{Text: "holiday"}}, want: "[]"},
		"open range from":    {preds: []Predicate{Between{From: entry.MustDate("2022-02-11")}}, want: "[2]"},
		"open range to":      {preds: []Predicate{Between{To: entry.MustDate("2022-02-10")}}, want: "[1]"},
		"inclusive range":    {preds: []Predicate{Between{From: entry.MustDate("2022-02-10"), To: entry.MustDate("2022-02-18")}}, want: "[1 2]"},
		"tag":                {preds: []Predicate{Tagged{Tag: "#Health"}}, want: "[1]"},
		"status":             {preds: []Predicate{WithStatus{Status: entry.StatusDone}}, want: "[2]"},
		"conjunction":        {preds: []Predicate{Contains{Text: "e"}, WithStatus{Status: entry.StatusOpen}}, want: "[1]"},
		"all is identity":    {preds: []Predicate{All{}, Contains{Text: "release"}}, want: "[2]"},
		"recurring excludes": {preds: []Predicate{Recurring{}}, want: "[]"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := NewCriteria(tc.preds...)
			if err != nil {
				t.Fatalf("criteria: %v", err)
			}
			if got := ids(Select(src, c)); got != tc.want {
				t.Fatalf("selected %s, want %s", got, tc.want)
			}
		})
	}
}

func TestRecurring(t *testing.T) {
	src := journal()
	weekly := timeutil.MustInterval("1w")
	src[1].Schedule(entry.MustDate("2022-02-25"), &weekly)
	if got := ids(Select(src, MustCriteria(Recurring{}))); got != "[2]" {
		t.Fatalf("recurring selected %s", got)
	}
}

func TestAmbiguousCriteria(t *testing.T) {
	d := entry.MustDate("2022-02-10")
	cases := [][]Predicate{
		{On{Date: d}, Between{From: d, To: d}},
		{On{Date: d}, On{Date: d.AddDays(1)}},
		{Between{From: d}, Between{To: d}},
	}
	for _, preds := range cases {
		_, err := NewCriteria(preds...)
		var amb *AmbiguousCriteriaError
		if !errors.As(err, &amb) {
			t.Fatalf("NewCriteria(%v): expected AmbiguousCriteriaError, got %v", preds, err)
		}
		if len(amb.Predicates) != 2 {
			t.Fatalf("expected both predicates reported, got %v", amb.Predicates)
		}
	}

	_, err := Options{Date: "2022-02-10", From: "2022-02-01"}.Criteria()
	var amb *AmbiguousCriteriaError
	if !errors.As(err, &amb) {
		t.Fatalf("options with date and from: expected AmbiguousCriteriaError, got %v", err)
	}
}

func TestInvalidRange(t *testing.T) {
	_, err := Options{From: "2022-02-18", To: "2022-02-10"}.Criteria()
	var rng *InvalidRangeError
	if !errors.As(err, &rng) {
		t.Fatalf("expected InvalidRangeError, got %v", err)
	}
	if rng.From.String() != "2022-02-18" || rng.To.String() != "2022-02-10" {
		t.Fatalf("range error lost its bounds: %v", rng)
	}
}

func TestInvalidDateNamesFlag(t *testing.T) {
	_, err := Options{To: "2022-13-01"}.Criteria()
	var de *entry.InvalidDateError
	if !errors.As(err, &de) {
		t.Fatalf("expected InvalidDateError, got %v", err)
	}
	if de.Field != "to" || de.Input != "2022-13-01" {
		t.Fatalf("unexpected error detail: %+v", de)
	}
}

func TestInvalidPredicates(t *testing.T) {
	for _, p := range []Predicate{On{}, Between{}, Contains{Text: "  "}, Tagged{Tag: "two words"}, WithStatus{Status: "later"}} {
		_, err := NewCriteria(p)
		var ip *InvalidPredicateError
		if !errors.As(err, &ip) {
			t.Fatalf("NewCriteria(%#v): expected InvalidPredicateError, got %v", p, err)
		}
	}
}

func TestCustomParser(t *testing.T) {
	today := entry.MustDate("2022-02-18")
	o := Options{Date: "today", Parse: func(raw string) (entry.Date, error) {
		if raw == "today" {
			return today, nil
		}
		return entry.ParseDate(raw)
	}}
	c, err := o.Criteria()
	if err != nil {
		t.Fatalf("criteria: %v", err)
	}
	if got := ids(Select(journal(), c)); got != "[2]" {
		t.Fatalf("selected %s", got)
	}
}
