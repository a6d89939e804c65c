package timeutil

import (
	"testing"
	"time"
)

func TestParseIntervalUnits(t *testing.T) {
	tests := map[string]Interval{
		"3d":      {Days: 3},
		"2w":      {Days: 14},
		"1m":      {Months: 1},
		"1y":      {Months: 12},
		"1m2w":    {Months: 1, Days: 14},
		"2 weeks": {Days: 14},
		" 1Y ":    {Months: 12},
	}
	for in, want := range tests {
		got, err := ParseInterval(in)
		if err != nil {
			t.Fatalf("ParseInterval(%q): unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseInterval(%q) = %+v, want %+v", in, got, want)
		}
	}
}

func TestParseIntervalInvalid(t *testing.T) {
	for _, in := range []string{"", "noop", "0d", "3x", "d3"} {
		if _, err := ParseInterval(in); err == nil {
			t.Fatalf("ParseInterval(%q): expected error", in)
		}
	}
}

func TestIntervalStringRoundTrip(t *testing.T) {
	for _, iv := range []Interval{{Days: 3}, {Days: 10}, {Months: 14, Days: 1}, {Months: 12}} {
		parsed, err := ParseInterval(iv.String())
		if err != nil {
			t.Fatalf("ParseInterval(%q): %v", iv.String(), err)
		}
		if parsed != iv {
			t.Fatalf("round trip of %+v produced %+v", iv, parsed)
		}
	}
	if got := (Interval{Months: 14, Days: 10}).String(); got != "1y2m1w3d" {
		t.Fatalf("unexpected label: %s", got)
	}
}

func TestIntervalAddTo(t *testing.T) {
	start := time.Date(2022, time.February, 10, 0, 0, 0, 0, time.UTC)
	got := MustInterval("1m1w").AddTo(start)
	want := time.Date(2022, time.March, 17, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
