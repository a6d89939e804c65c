package entry

import (
	"fmt"
	"strings"
)

// Status tracks where an entry is in its life.
type Status string

const (
	StatusOpen      Status = "open"
	StatusDone      Status = "done"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every status in display order.
func Statuses() []Status {
	return []Status{StatusOpen, StatusOverdue, StatusDone, StatusCancelled}
}

var statusAliases = map[string]Status{
	"open":       StatusOpen,
	"todo":       StatusOpen,
	"done":       StatusDone,
	"complete":   StatusDone,
	"completed":  StatusDone,
	"x":          StatusDone,
	"overdue":    StatusOverdue,
	"late":       StatusOverdue,
	"cancelled":  StatusCancelled,
	"canceled":   StatusCancelled,
	"strike":     StatusCancelled,
	"irrelevant": StatusCancelled,
}

// ParseStatus resolves a status name or one of its aliases.
func ParseStatus(raw string) (Status, error) {
	s, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("unknown status %q (want open, done, overdue or cancelled)", raw)
	}
	return s, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusDone, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
