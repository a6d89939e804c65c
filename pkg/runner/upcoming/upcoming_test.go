package upcoming

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"

	"tableflip.dev/daily/pkg/app"
	"tableflip.dev/daily/pkg/entry"
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

func TestUpcomingJSON(t *testing.T) {
	svc := &app.Service{
		Store: store.New(&memoryBackend{data: map[string][]byte{}}),
		Today: func() entry.Date { return entry.MustDate("2022-02-20") },
	}
	if err := svc.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	soon := entry.New(entry.MustDate("2022-02-01"), "pay rent")
	soon.Schedule(entry.MustDate("2022-02-22"), nil)
	late := entry.New(entry.MustDate("2022-02-01"), "taxes")
	late.Schedule(entry.MustDate("2022-02-15"), nil)
	far := entry.New(entry.MustDate("2022-02-01"), "holiday")
	far.Schedule(entry.MustDate("2022-06-01"), nil)
	if _, err := svc.AddBatch(context.Background(), []*entry.Entry{soon, late, far}); err != nil {
		t.Fatalf("add: %v", err)
	}

	var out bytes.Buffer
	u := &Upcoming{
		Horizon: timeutil.MustInterval("1w"),
		Overdue: true,
		JSON:    true,
		Out:     &out,
		Service: svc,
	}
	if err := u.Do(context.Background()); err != nil {
		t.Fatalf("upcoming: %v", err)
	}

	var got report
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if got.Ref.String() != "2022-02-20" || got.Horizon != "1w" {
		t.Fatalf("unexpected header %+v", got)
	}
	if len(got.Upcoming) != 1 || got.Upcoming[0].Text != "pay rent" {
		t.Fatalf("unexpected upcoming %+v", got.Upcoming)
	}
	if len(got.Overdue) != 1 || got.Overdue[0].Text != "taxes" {
		t.Fatalf("unexpected overdue %+v", got.Overdue)
	}
}
