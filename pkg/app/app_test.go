package app

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"tableflip.dev/daily/pkg/batch"
	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/filter"
	"tableflip.dev/daily/pkg/store"
	"tableflip.dev/daily/pkg/timeutil"
)

type memoryBackend struct {
	data map[string][]byte
}

func (m *memoryBackend) Has(key string) bool {
	_, ok := m.data[key]
	return ok
}

func (m *memoryBackend) Read(key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return v, nil
}

func (m *memoryBackend) Write(key string, data []byte) error {
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func newService(t *testing.T) *Service {
	t.Helper()
	svc := &Service{
		Store: store.New(&memoryBackend{data: map[string][]byte{}}),
		Today: func() entry.Date { return entry.MustDate("2022-02-20") },
	}
	if err := svc.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	return svc
}

func TestAddDefaultsToToday(t *testing.T) {
	svc := newService(t)
	e, err := svc.Add(context.Background(), &entry.Entry{Text: "walked the dog"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.ID != 1 || e.Date.String() != "2022-02-20" || e.Status != entry.StatusOpen {
		t.Fatalf("unexpected entry %+v", e)
	}
}

func TestAddBatchAllOrNothing(t *testing.T) {
	svc := newService(t)
	in := `2022-02-10 dentist #health
// comment
2022-02-18 release v1.2 #work due:2022-02-25

2022-02-01 rent every:1m due:2022-03-01 #home
`
	entries, err := ParseBatch(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ids, err := svc.AddBatch(context.Background(), entries)
	if err != nil {
		t.Fatalf("add batch: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 ids, got %v", ids)
	}
	rent, _ := svc.Store.Get(3)
	if rent.Text != "rent" || !rent.Repeating() || !rent.HasTag("home") {
		t.Fatalf("rent line parsed wrong: %+v", rent)
	}

	bad := []*entry.Entry{
		entry.New(entry.MustDate("2022-03-01"), "fine"),
		entry.New(entry.Date{}, "no date"),
	}
	if _, err := svc.AddBatch(context.Background(), bad); err == nil {
		t.Fatal("expected batch with an invalid entry to fail")
	}
	if svc.Store.Len() != 3 {
		t.Fatalf("failed batch stored entries, have %d", svc.Store.Len())
	}
}

func TestParseBatchErrors(t *testing.T) {
	tests := []struct {
		in   string
		line int
	}{
		{in: "2022-02-10 ok\n2022-02-31 bad date\n", line: 2},
		{in: "\n\nnot-a-date text\n", line: 3},
		{in: "2022-02-10 #only-tags\n", line: 1},
		{in: "2022-02-10 repeat every:1w\n", line: 1},
		{in: "2022-02-10 weird every:1x due:2022-02-11\n", line: 1},
	}
	for _, tc := range tests {
		_, err := ParseBatch(strings.NewReader(tc.in))
		var le *LineError
		if !errors.As(err, &le) {
			t.Fatalf("ParseBatch(%q): expected LineError, got %v", tc.in, err)
		}
		if le.Line != tc.line {
			t.Fatalf("ParseBatch(%q): expected line %d, got %d", tc.in, tc.line, le.Line)
		}
	}
}

func TestEditRequiresCriteria(t *testing.T) {
	svc := newService(t)
	if _, err := svc.Add(context.Background(), entry.New(entry.MustDate("2022-02-10"), "dentist")); err != nil {
		t.Fatalf("add: %v", err)
	}
	_, err := svc.Edit(context.Background(), filter.Criteria{}, batch.Delete{})
	if !errors.Is(err, ErrNoCriteria) {
		t.Fatalf("expected ErrNoCriteria, got %v", err)
	}
	if svc.Store.Len() != 1 {
		t.Fatal("entry deleted without criteria")
	}

	res, err := svc.Edit(context.Background(), filter.MustCriteria(filter.All{}), batch.SetStatus{Status: entry.StatusDone})
	if err != nil || res.Changed() != 1 {
		t.Fatalf("edit all: %+v %v", res, err)
	}
}

func TestSelectExamples(t *testing.T) {
	svc := newService(t)
	for _, e := range []*entry.Entry{
		entry.New(entry.MustDate("2022-02-10"), "dentist"),
		entry.New(entry.MustDate("2022-02-18"), "release"),
	} {
		if _, err := svc.Add(context.Background(), e); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	got, _ := svc.Select(context.Background(), filter.MustCriteria(filter.On{Date: entry.MustDate("2022-02-18")}))
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("date select returned %+v", got)
	}
	got, _ = svc.Select(context.Background(), filter.Criteria{})
	if len(got) != 0 {
		t.Fatalf("empty criteria returned %+v", got)
	}
	got, _ = svc.Select(context.Background(), filter.MustCriteria(filter.All{}))
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("all returned %+v", got)
	}
}

func TestUpcomingAndRefresh(t *testing.T) {
	svc := newService(t)
	weekly := timeutil.MustInterval("1w")
	standup := entry.New(entry.MustDate("2022-01-03"), "standup")
	standup.Schedule(entry.MustDate("2022-01-03"), &weekly)
	taxes := entry.New(entry.MustDate("2022-01-03"), "taxes")
	taxes.Schedule(entry.MustDate("2022-02-15"), nil)
	if _, err := svc.AddBatch(context.Background(), []*entry.Entry{standup, taxes}); err != nil {
		t.Fatalf("add: %v", err)
	}

	up, err := svc.Upcoming(context.Background(), entry.Date{}, weekly)
	if err != nil || len(up) != 1 || up[0].Text != "standup" {
		t.Fatalf("upcoming: %+v %v", up, err)
	}
	late, err := svc.Overdue(context.Background(), entry.Date{})
	if err != nil || len(late) != 1 || late[0].Text != "taxes" {
		t.Fatalf("overdue: %+v %v", late, err)
	}

	res, err := svc.Refresh(context.Background(), entry.Date{})
	if err != nil || res.Changed() != 2 {
		t.Fatalf("refresh: %+v %v", res, err)
	}
	res, err = svc.Refresh(context.Background(), entry.Date{})
	if err != nil || res.Changed() != 0 {
		t.Fatalf("second refresh: %+v %v", res, err)
	}
}

func TestStats(t *testing.T) {
	svc := newService(t)
	entries, err := ParseBatch(strings.NewReader("2022-01-05 a #work\n2022-02-10 b #work #home\n2022-02-11 c due:2022-03-01\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := svc.AddBatch(context.Background(), entries); err != nil {
		t.Fatalf("add: %v", err)
	}
	st, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Total != 3 || st.NextID != 4 || st.Scheduled != 1 || st.ByStatus[entry.StatusOpen] != 3 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if st.First.String() != "2022-01-05" || st.Last.String() != "2022-02-11" {
		t.Fatalf("unexpected span %s..%s", st.First, st.Last)
	}
	if len(st.Months) != 2 || st.Months[1].Label != "2022-02" || st.Months[1].Count != 2 {
		t.Fatalf("unexpected months %+v", st.Months)
	}
	if st.Tags[0].Label != "work" || st.Tags[0].Count != 2 {
		t.Fatalf("unexpected tags %+v", st.Tags)
	}
}

func TestNotLoaded(t *testing.T) {
	svc := &Service{Store: store.New(&memoryBackend{data: map[string][]byte{}})}
	if _, err := svc.Select(context.Background(), filter.MustCriteria(filter.All{})); !errors.Is(err, store.ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
	if _, err := (&Service{}).Stats(context.Background()); !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
}
