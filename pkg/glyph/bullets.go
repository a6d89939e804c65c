package glyph

import (
	"fmt"

	"tableflip.dev/daily/pkg/entry"
)

type Glyph struct {
	Key       string
	Symbol    string
	Meaning   string
	Signifier bool
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	underlineCode = 4
	strikeCode    = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

func DefaultGlyphs() []Glyph {
	return []Glyph{
		{Key: "open", Symbol: "●", Meaning: "open entry"},
		{Key: "done", Symbol: "✘", Meaning: "entry done"},
		{Key: "overdue", Symbol: "!", Meaning: "past its due date"},
		{Key: "cancelled", Symbol: "⦵", Meaning: "entry irrelevant"},
		{Key: "due", Symbol: "›", Meaning: "has a due date", Signifier: true},
		{Key: "repeat", Symbol: "↻", Meaning: "repeats after due", Signifier: true},
		{Key: "locked", Symbol: "✷", Meaning: "locked, content immutable", Signifier: true},
		{Key: "none", Symbol: " ", Meaning: "none", Signifier: true},
	}
}

func (g Glyph) String() string {
	return g.Symbol
}

type Bullet int
type Signifier int

const (
	Open Bullet = iota
	Done
	Overdue
	Cancelled
)

const (
	Due Signifier = iota + 4
	Repeat
	Locked
	None
)

func (b Bullet) Glyph() Glyph {
	return DefaultGlyphs()[b]
}

func (b Bullet) String() string {
	return b.Glyph().String()
}

func (s Signifier) Glyph() Glyph {
	return DefaultGlyphs()[s]
}

func (s Signifier) String() string {
	return s.Glyph().String()
}

// ForStatus picks the bullet drawn for an entry status.
func ForStatus(s entry.Status) Bullet {
	switch s {
	case entry.StatusDone:
		return Done
	case entry.StatusOverdue:
		return Overdue
	case entry.StatusCancelled:
		return Cancelled
	default:
		return Open
	}
}

// SignifierFor picks the strongest signifier for an entry: locked beats
// repeating beats a plain due date.
func SignifierFor(e *entry.Entry) Signifier {
	switch {
	case e.Locked:
		return Locked
	case e.Repeating():
		return Repeat
	case e.Scheduled():
		return Due
	default:
		return None
	}
}
