package app

import (
	"context"
	"sort"

	"tableflip.dev/daily/pkg/entry"
)

// Count is a labelled tally.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Stats summarizes the journal.
type Stats struct {
	Path      string               `json:"path"`
	Total     int                  `json:"total"`
	NextID    entry.ID             `json:"next_id"`
	First     entry.Date           `json:"first"`
	Last      entry.Date           `json:"last"`
	ByStatus  map[entry.Status]int `json:"by_status"`
	Scheduled int                  `json:"scheduled"`
	Repeating int                  `json:"repeating"`
	Locked    int                  `json:"locked"`
	Months    []Count              `json:"months,omitempty"`
	Tags      []Count              `json:"tags,omitempty"`
}

// Stats tallies every entry in the journal. Months are listed oldest first,
// tags most used first.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	if err := s.ready(); err != nil {
		return Stats{}, err
	}
	all := s.Store.Entries()
	st := Stats{
		Path:     s.Store.Path(),
		Total:    len(all),
		NextID:   s.Store.HighWater(),
		ByStatus: make(map[entry.Status]int, len(entry.Statuses())),
	}
	for _, status := range entry.Statuses() {
		st.ByStatus[status] = 0
	}

	months := make(map[string]int)
	tags := make(map[string]int)
	for _, e := range all {
		st.ByStatus[e.Status]++
		if e.Scheduled() {
			st.Scheduled++
		}
		if e.Repeating() {
			st.Repeating++
		}
		if e.Locked {
			st.Locked++
		}
		if st.First.IsZero() || e.Date.Before(st.First) {
			st.First = e.Date
		}
		if e.Date.After(st.Last) {
			st.Last = e.Date
		}
		months[e.Date.Format("2006-01")]++
		for _, t := range e.Tags {
			tags[t]++
		}
	}

	for label, n := range months {
		st.Months = append(st.Months, Count{Label: label, Count: n})
	}
	sort.Slice(st.Months, func(i, j int) bool {
		return st.Months[i].Label < st.Months[j].Label
	})
	for label, n := range tags {
		st.Tags = append(st.Tags, Count{Label: label, Count: n})
	}
	sort.Slice(st.Tags, func(i, j int) bool {
		if st.Tags[i].Count != st.Tags[j].Count {
			return st.Tags[i].Count > st.Tags[j].Count
		}
		return st.Tags[i].Label < st.Tags[j].Label
	})
	return st, nil
}
