package entry

import (
	"encoding/json"
	"errors"
	"testing"

	"tableflip.dev/daily/pkg/timeutil"
)

func TestNewNormalizesInput(t *testing.T) {
	e := New(MustDate("2022-02-10"), "  dentist  ", "#Health", "errands,health", "")
	if e.Text != "dentist" {
		t.Fatalf("expected trimmed text, got %q", e.Text)
	}
	if len(e.Tags) != 2 || e.Tags[0] != "errands" || e.Tags[1] != "health" {
		t.Fatalf("unexpected tags: %v", e.Tags)
	}
	if e.Status != StatusOpen {
		t.Fatalf("expected open status, got %s", e.Status)
	}
	if !e.HasTag("HEALTH") || e.HasTag("work") {
		t.Fatalf("HasTag mismatch for %v", e.Tags)
	}
}

func TestValidate(t *testing.T) {
	due := MustDate("2022-02-01")
	weekly := timeutil.MustInterval("1w")
	tests := map[string]struct {
		mutate  func(*Entry)
		wantErr error
		ok      bool
	}{
		"valid":          {mutate: func(*Entry) {}, ok: true},
		"missing date":   {mutate: func(e *Entry) { e.Date = Date{} }},
		"missing text":   {mutate: func(e *Entry) { e.Text = "" }},
		"blank text":     {mutate: func(e *Entry) { e.Text = "   " }},
		"missing id":     {mutate: func(e *Entry) { e.ID = 0 }},
		"unknown status": {mutate: func(e *Entry) { e.Status = "later" }},
		"raw tags":       {mutate: func(e *Entry) { e.Tags = []string{"Work"} }},
		"due before date": {
			mutate:  func(e *Entry) { e.Due = &due },
			wantErr: ErrDueBeforeDate,
		},
		"repeat without due": {
			mutate:  func(e *Entry) { e.Repeat = &weekly },
			wantErr: ErrRepeatWithoutDue,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			e := New(MustDate("2022-02-10"), "dentist")
			e.ID = 1
			tc.mutate(e)
			err := e.Validate()
			if tc.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v in %v", tc.wantErr, err)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2022-02-18")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.String() != "2022-02-18" {
		t.Fatalf("unexpected date %s", d)
	}
	for _, in := range []string{"", "2022-02-30", "18/02/2022", "tomorrow"} {
		_, err := ParseDate(in)
		var derr *InvalidDateError
		if !errors.As(err, &derr) {
			t.Fatalf("ParseDate(%q): expected InvalidDateError, got %v", in, err)
		}
		if derr.Input != in {
			t.Fatalf("expected input %q in error, got %q", in, derr.Input)
		}
	}
}

func TestReconcile(t *testing.T) {
	ref := MustDate("2022-02-20")
	weekly := timeutil.MustInterval("1w")

	t.Run("repeating rolls forward and reopens", func(t *testing.T) {
		e := New(MustDate("2022-01-01"), "standup")
		e.ID = 1
		e.Schedule(MustDate("2022-02-01"), &weekly)
		e.Complete()
		if !e.Reconcile(ref) {
			t.Fatal("expected change")
		}
		if e.Due.String() != "2022-02-22" || e.Status != StatusOpen {
			t.Fatalf("unexpected state due=%s status=%s", e.Due, e.Status)
		}
		if e.Reconcile(ref) {
			t.Fatal("second reconcile should be a no-op")
		}
	})

	t.Run("one-off goes overdue", func(t *testing.T) {
		e := New(MustDate("2022-01-01"), "taxes")
		e.Schedule(MustDate("2022-02-15"), nil)
		if !e.Reconcile(ref) || e.Status != StatusOverdue {
			t.Fatalf("expected overdue, got %s", e.Status)
		}
		if e.Reconcile(ref) {
			t.Fatal("second reconcile should be a no-op")
		}
	})

	t.Run("rescheduled overdue reopens", func(t *testing.T) {
		e := New(MustDate("2022-01-01"), "taxes")
		e.Schedule(MustDate("2022-02-25"), nil)
		e.Status = StatusOverdue
		if !e.Reconcile(ref) || e.Status != StatusOpen {
			t.Fatalf("expected open, got %s", e.Status)
		}
	})

	t.Run("done and cancelled one-offs stay put", func(t *testing.T) {
		for _, s := range []Status{StatusDone, StatusCancelled} {
			e := New(MustDate("2022-01-01"), "taxes")
			e.Schedule(MustDate("2022-02-01"), nil)
			e.Status = s
			if e.Reconcile(ref) {
				t.Fatalf("status %s should not change", s)
			}
		}
	})

	t.Run("unscheduled is ignored", func(t *testing.T) {
		e := New(MustDate("2022-01-01"), "note")
		if e.Reconcile(ref) {
			t.Fatal("unscheduled entry changed")
		}
	})
}

func TestCloneIsDeep(t *testing.T) {
	monthly := timeutil.MustInterval("1m")
	e := New(MustDate("2022-02-10"), "rent", "home")
	e.Schedule(MustDate("2022-03-01"), &monthly)

	cp := e.Clone()
	cp.Tags[0] = "changed"
	*cp.Due = MustDate("2023-01-01")
	cp.Repeat.Days = 3

	if e.Tags[0] != "home" || e.Due.String() != "2022-03-01" || e.Repeat.Days != 0 {
		t.Fatalf("clone shares state with original: %+v", e)
	}
}

func TestEntryJSON(t *testing.T) {
	weekly := timeutil.MustInterval("2w")
	e := New(MustDate("2022-02-10"), "dentist", "health")
	e.ID = 7
	e.Schedule(MustDate("2022-02-24"), &weekly)

	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":7,"date":"2022-02-10","text":"dentist","tags":["health"],"due":"2022-02-24","repeat":"2w","status":"open"}`
	if string(b) != want {
		t.Fatalf("unexpected encoding:\n got %s\nwant %s", b, want)
	}

	var back Entry
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Due == nil || !back.Due.Equal(*e.Due) || back.Repeat == nil || *back.Repeat != weekly {
		t.Fatalf("schedule lost in round trip: %+v", back)
	}
}

func TestParseStatus(t *testing.T) {
	tests := map[string]Status{
		"open":       StatusOpen,
		"Done":       StatusDone,
		"x":          StatusDone,
		"irrelevant": StatusCancelled,
		" overdue ":  StatusOverdue,
	}
	for in, want := range tests {
		got, err := ParseStatus(in)
		if err != nil || got != want {
			t.Fatalf("ParseStatus(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseStatus("maybe"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
