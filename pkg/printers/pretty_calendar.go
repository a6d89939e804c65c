package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daily/pkg/entry"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints every month from the first to the last entry as a grid
// with busy days highlighted, followed by the entries of each day.
func (pp *PrettyPrint) Calendar(today entry.Date, entries ...*entry.Entry) {
	if len(entries) == 0 {
		pp.none()
		return
	}
	first, last := entries[0].Date, entries[0].Date
	for _, e := range entries {
		if e.Date.Before(first) {
			first = e.Date
		}
		if e.Date.After(last) {
			last = e.Date
		}
	}
	for m := entry.NewDate(first.Year(), first.Month(), 1); !m.After(last); m = NextMonth(m) {
		pp.PrintMonth(m, today, entries...)
		pp.PrintMonthLong(m, entries...)
	}
}

func (pp *PrettyPrint) PrintMonth(then, today entry.Date, entries ...*entry.Entry) {
	count := make([]int, DaysIn(then))
	for _, e := range entries {
		if e.Date.SameMonth(then) {
			count[e.Date.Day()-1]++
		}
	}
	pp.PrintMonthCount(then, today, count)
}

func (pp *PrettyPrint) PrintMonthCount(then, today entry.Date, count []int) {
	out := pp.out()
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := then.Format("January 2006")
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(out, "%s%s\n", strings.Repeat(" ", mid), m)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(out, "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	l3 := color.New(color.Bold, color.Underline)

	for i := 0; i < len(count); i++ {
		printer := l1
		if count[i] > 0 {
			printer = l2
		}
		if then.SameMonth(today) && today.Day() == i+1 {
			printer = l3
		}
		_, _ = printer.Fprintf(out, "%2d ", i+1)

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(out, "\n")
		}
	}
	_, _ = fmt.Fprint(out, "\n\n")
}

// PrintMonthLong lists the entries of each busy day in the month.
func (pp *PrettyPrint) PrintMonthLong(then entry.Date, entries ...*entry.Entry) {
	out := pp.out()
	s := color.New(color.Underline)

	for day := 1; day <= DaysIn(then); day++ {
		date := entry.NewDate(then.Year(), then.Month(), day)
		printed := false
		for _, e := range entries {
			if !e.Date.Equal(date) {
				continue
			}
			if printed {
				_, _ = fmt.Fprint(out, "      ")
			} else {
				_, _ = s.Fprintf(out, "%2d %s", day, date.Weekday().String()[0:2])
				_, _ = fmt.Fprint(out, " ")
				printed = true
			}
			_, _ = styled(e).Fprintf(out, "%s %s\n", bullet(e), e.Text)
		}
	}
	_, _ = fmt.Fprintln(out)
}

func NextMonth(then entry.Date) entry.Date {
	return entry.NewDate(then.Year(), then.Month()+1, 1)
}

func DaysIn(then entry.Date) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then entry.Date) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, time.UTC).Weekday()
}
