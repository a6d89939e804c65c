package printers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/daily/pkg/batch"
	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/store"
	"tableflip.dev/daily/pkg/timeutil"
)

func init() {
	color.NoColor = true
}

func sample() []*entry.Entry {
	dentist := entry.New(entry.MustDate("2022-02-10"), "dentist", "health")
	dentist.ID = 1
	release := entry.New(entry.MustDate("2022-02-18"), "release")
	release.ID = 2
	release.Complete()
	weekly := timeutil.MustInterval("1w")
	release.Schedule(entry.MustDate("2022-02-21"), &weekly)
	return []*entry.Entry{dentist, release}
}

func TestEntries(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{ShowID: true, Out: &buf}
	pp.Entries(sample()...)

	out := buf.String()
	for _, want := range []string{"Thu Feb 10 2022", "dentist", "#health", "✘", "due 2022-02-21 every 1w", "↻"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEntriesNone(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Entries()
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected none marker, got %q", buf.String())
	}
}

func TestResultListsFailures(t *testing.T) {
	var buf bytes.Buffer
	res := batch.Result{
		Op: batch.SetText{Text: "x"},
		Outcomes: []batch.Outcome{
			{ID: 1, Changed: true},
			{ID: 7, Err: &store.NotFoundError{ID: 7}},
			{ID: 3, Err: batch.ErrLocked},
		},
	}
	(&PrettyPrint{Out: &buf}).Result(res)
	out := buf.String()
	for _, want := range []string{"3 selected", "1 changed", "2 failed", "entry 7 not found", "3: batch: entry is locked"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRelative(t *testing.T) {
	ref := entry.MustDate("2022-02-20")
	tests := map[string]string{
		"2022-02-20": "today",
		"2022-02-21": "1 day from now",
		"2022-02-24": "4 days from now",
		"2022-02-18": "2 days ago",
		"2022-03-01": "1 week from now",
	}
	for due, want := range tests {
		if got := Relative(entry.MustDate(due), ref); got != want {
			t.Fatalf("Relative(%s) = %q, want %q", due, got, want)
		}
	}
}

func TestCalendar(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Calendar(entry.MustDate("2022-02-20"), sample()...)
	out := buf.String()
	if !strings.Contains(out, "February 2022") || !strings.Contains(out, "10 Th") {
		t.Fatalf("unexpected calendar:\n%s", out)
	}
	if DaysIn(entry.MustDate("2024-02-01")) != 29 {
		t.Fatal("leap february")
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := (&PrettyPrint{Out: &buf}).JSON(sample()[:1]); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(buf.String(), `"date": "2022-02-10"`) {
		t.Fatalf("unexpected json:\n%s", buf.String())
	}
}
