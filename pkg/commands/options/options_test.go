package options

import (
	"errors"
	"testing"

	"tableflip.dev/daily/pkg/batch"
	"tableflip.dev/daily/pkg/entry"
)

var today = entry.MustDate("2022-12-05")

func TestParseDay(t *testing.T) {
	tests := map[string]string{
		"2022-02-18": "2022-02-18",
		"2022-2-8":   "2022-02-08",
		"12/25":      "2022-12-25",
		"1/3":        "2023-01-03",
		"12/5":       "2022-12-05",
		"today":      "2022-12-05",
		"Tomorrow":   "2022-12-06",
		"yesterday":  "2022-12-04",
	}
	for in, want := range tests {
		got, err := ParseDay(in, today)
		if err != nil {
			t.Fatalf("ParseDay(%q): %v", in, err)
		}
		if got.String() != want {
			t.Fatalf("ParseDay(%q) = %s, want %s", in, got, want)
		}
	}

	for _, in := range []string{"", "soon", "2022-13-01", "31/12"} {
		_, err := ParseDay(in, today)
		var de *entry.InvalidDateError
		if !errors.As(err, &de) {
			t.Fatalf("ParseDay(%q): expected InvalidDateError, got %v", in, err)
		}
	}
}

func TestFilterCriteriaNamesFlag(t *testing.T) {
	fo := &FilterOptions{To: "nope"}
	_, err := fo.Criteria(today)
	var de *entry.InvalidDateError
	if !errors.As(err, &de) || de.Field != "to" {
		t.Fatalf("expected invalid to date, got %v", err)
	}

	fo = &FilterOptions{Date: "today", Text: "dentist"}
	c, err := fo.Criteria(today)
	if err != nil {
		t.Fatalf("criteria: %v", err)
	}
	if c.Empty() || len(c.Predicates()) != 2 {
		t.Fatalf("unexpected criteria %s", c)
	}

	c, err = (&FilterOptions{}).Criteria(today)
	if err != nil || !c.Empty() {
		t.Fatalf("no flags should give empty criteria, got %s, %v", c, err)
	}
}

func TestAddOptionsEntry(t *testing.T) {
	ao := &AddOptions{Message: " pay rent ", OnString: "12/6", Due: "1/1", Every: "1m", Tags: []string{"Bills", "home,bills"}}
	e, err := ao.Entry(today)
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	// 1/1 has passed this year, so it rolls into the next.
	if e.Date.String() != "2022-12-06" || e.Due.String() != "2023-01-01" {
		t.Fatalf("unexpected dates %s due %s", e.Date, e.Due)
	}
	if e.Text != "pay rent" || len(e.Tags) != 2 || e.Repeat.String() != "1m" {
		t.Fatalf("unexpected entry %+v", e)
	}

	if _, err := (&AddOptions{Message: "x", Every: "1w"}).Entry(today); !errors.Is(err, entry.ErrRepeatWithoutDue) {
		t.Fatalf("expected ErrRepeatWithoutDue, got %v", err)
	}
}

func TestEditOptionsOperation(t *testing.T) {
	op, err := (&EditOptions{Status: "x"}).Operation(today)
	if err != nil {
		t.Fatalf("operation: %v", err)
	}
	if s, ok := op.(batch.SetStatus); !ok || s.Status != entry.StatusDone {
		t.Fatalf("unexpected op %#v", op)
	}

	op, err = (&EditOptions{Due: "none"}).Operation(today)
	if err != nil {
		t.Fatalf("operation: %v", err)
	}
	if d, ok := op.(batch.SetDue); !ok || !d.Clear {
		t.Fatalf("unexpected op %#v", op)
	}

	op, err = (&EditOptions{TagsSet: true}).Operation(today)
	if err != nil {
		t.Fatalf("operation: %v", err)
	}
	if _, ok := op.(batch.SetTags); !ok {
		t.Fatalf("unexpected op %#v", op)
	}

	if _, err := (&EditOptions{}).Operation(today); !errors.Is(err, ErrNoOperation) {
		t.Fatalf("expected ErrNoOperation, got %v", err)
	}
	if _, err := (&EditOptions{Text: "x", Delete: true}).Operation(today); err == nil {
		t.Fatal("expected an error for two edits")
	}
	if _, err := (&EditOptions{Lock: true, Unlock: true}).Operation(today); err == nil {
		t.Fatal("expected an error for lock and unlock")
	}
	if _, err := (&EditOptions{Date: "someday"}).Operation(today); err == nil {
		t.Fatal("expected a date error")
	}
}

func TestIDSelection(t *testing.T) {
	sel, err := (&IDOptions{IDs: []string{"3", " 1"}}).Selection()
	if err != nil || len(sel) != 2 || sel[0] != 3 || sel[1] != 1 {
		t.Fatalf("unexpected selection %v, %v", sel, err)
	}
	if _, err := (&IDOptions{IDs: []string{"0"}}).Selection(); err == nil {
		t.Fatal("expected id 0 to be rejected")
	}
}
