package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/daily/pkg/batch"
	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/glyph"
)

const (
	textWidth  = 60
	dayHeading = "Mon Jan 2 2006"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Entries prints entries as a table, with the day shown once per run of
// entries on the same date.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	d := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = textWidth
	tbl.Wrap = true

	var last entry.Date
	for _, e := range entries {
		day := ""
		if !e.Date.Equal(last) {
			day = d.Sprint(e.Date.Format(dayHeading))
			last = e.Date
		}
		row := []interface{}{}
		if pp.ShowID {
			row = append(row, y.Sprint(e.ID))
		}
		row = append(row, day, bullet(e), styled(e).Sprint(e.Text), details(e))
		tbl.AddRow(row...)
	}
	if pp.ShowID {
		tbl.RightAlign(0)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func bullet(e *entry.Entry) string {
	return fmt.Sprintf("%s %s", glyph.SignifierFor(e), glyph.ForStatus(e.Status))
}

func styled(e *entry.Entry) *color.Color {
	switch e.Status {
	case entry.StatusDone:
		return color.New(color.Faint)
	case entry.StatusCancelled:
		return color.New(color.Faint, color.CrossedOut)
	case entry.StatusOverdue:
		return color.New(color.FgRed)
	default:
		return color.New()
	}
}

func details(e *entry.Entry) string {
	f := color.New(color.Faint)
	var parts []string
	if len(e.Tags) > 0 {
		parts = append(parts, "#"+strings.Join(e.Tags, " #"))
	}
	if e.Due != nil {
		due := "due " + e.Due.String()
		if e.Repeat != nil {
			due += " every " + e.Repeat.String()
		}
		parts = append(parts, due)
	}
	if len(parts) == 0 {
		return ""
	}
	return f.Sprint(strings.Join(parts, "  "))
}

// Result summarizes a batch edit and lists every per-entry failure.
func (pp *PrettyPrint) Result(res batch.Result) {
	g := color.New(color.FgGreen)
	r := color.New(color.FgRed)

	verb := "changed"
	if _, ok := res.Op.(batch.Delete); ok {
		verb = "deleted"
	}
	_, _ = fmt.Fprintf(pp.out(), "%s: %d selected, ", res.Op, len(res.Outcomes))
	_, _ = g.Fprintf(pp.out(), "%d %s", res.Changed(), verb)
	if failed := res.Failed(); len(failed) > 0 {
		_, _ = fmt.Fprint(pp.out(), ", ")
		_, _ = r.Fprintf(pp.out(), "%d failed\n", len(failed))
		for _, o := range failed {
			msg := wordwrap.String(fmt.Sprintf("%s: %v", o.ID, o.Err), textWidth)
			_, _ = fmt.Fprintln(pp.out(), indent.String(msg, 2))
		}
		return
	}
	_, _ = fmt.Fprintln(pp.out())
}

// Added confirms newly stored entries.
func (pp *PrettyPrint) Added(entries ...*entry.Entry) {
	g := color.New(color.FgGreen)
	for _, e := range entries {
		_, _ = g.Fprintf(pp.out(), "added %s", e.ID)
		_, _ = fmt.Fprintf(pp.out(), " %s %s\n", e.Date, e.Text)
	}
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v interface{}) error {
	enc := json.NewEncoder(pp.out())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
