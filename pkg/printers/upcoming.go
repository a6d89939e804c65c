package printers

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daily/pkg/app"
	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/glyph"
)

// Day-granular magnitudes for due dates.
var dueMagnitudes = []humanize.RelTimeMagnitude{
	{D: humanize.Day, Format: "today", DivBy: 1},
	{D: 2 * humanize.Day, Format: "1 day %s", DivBy: 1},
	{D: humanize.Week, Format: "%d days %s", DivBy: humanize.Day},
	{D: 2 * humanize.Week, Format: "1 week %s", DivBy: 1},
	{D: humanize.Month, Format: "%d weeks %s", DivBy: humanize.Week},
	{D: 2 * humanize.Month, Format: "1 month %s", DivBy: 1},
	{D: humanize.Year, Format: "%d months %s", DivBy: humanize.Month},
	{D: math.MaxInt64, Format: "a long while %s", DivBy: 1},
}

// Relative describes due relative to ref, for example "3 days from now".
func Relative(due, ref entry.Date) string {
	return humanize.CustomRelTime(due.Time, ref.Time, "ago", "from now", dueMagnitudes)
}

// Upcoming prints what is due soon and what is already late.
func (pp *PrettyPrint) Upcoming(ref entry.Date, due, late []*entry.Entry) {
	if len(late) > 0 {
		pp.TitleWithCount("Overdue", len(late))
		pp.dueTable(ref, late, color.New(color.FgRed))
	}
	pp.TitleWithCount(fmt.Sprintf("Upcoming from %s", ref.Format(dayHeading)), len(due))
	if len(due) == 0 {
		pp.none()
		return
	}
	pp.dueTable(ref, due, color.New(color.FgCyan))
}

func (pp *PrettyPrint) dueTable(ref entry.Date, entries []*entry.Entry, when *color.Color) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = textWidth
	tbl.Wrap = true
	for _, e := range entries {
		row := []interface{}{}
		if pp.ShowID {
			row = append(row, y.Sprint(e.ID))
		}
		row = append(row,
			e.Due.Format(dayHeading),
			when.Sprint(Relative(*e.Due, ref)),
			bullet(e),
			e.Text,
			details(e),
		)
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Stats prints the journal summary.
func (pp *PrettyPrint) Stats(st app.Stats) {
	b := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(b.Sprint("journal"), st.Path)
	tbl.AddRow(b.Sprint("entries"), st.Total)
	tbl.AddRow(b.Sprint("next id"), st.NextID)
	if st.Total > 0 {
		tbl.AddRow(b.Sprint("span"), fmt.Sprintf("%s .. %s", st.First, st.Last))
	}
	for _, s := range entry.Statuses() {
		tbl.AddRow(b.Sprint(glyph.ForStatus(s).String()+" "+s.String()), st.ByStatus[s])
	}
	tbl.AddRow(b.Sprint("scheduled"), st.Scheduled)
	tbl.AddRow(b.Sprint("repeating"), st.Repeating)
	tbl.AddRow(b.Sprint("locked"), st.Locked)
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)

	if len(st.Months) > 0 {
		pp.NewLine()
		pp.Title("By month")
		months := uitable.New()
		months.Separator = "  "
		for _, m := range st.Months {
			t, err := time.Parse("2006-01", m.Label)
			label := m.Label
			if err == nil {
				label = t.Format("Jan 2006")
			}
			months.AddRow(label, m.Count)
		}
		months.RightAlign(1)
		_, _ = fmt.Fprintln(pp.out(), months)
	}
	if len(st.Tags) > 0 {
		pp.NewLine()
		pp.Title("Tags")
		tags := uitable.New()
		tags.Separator = "  "
		for _, t := range st.Tags {
			tags.AddRow("#"+t.Label, t.Count)
		}
		_, _ = fmt.Fprintln(pp.out(), tags)
	}
}
