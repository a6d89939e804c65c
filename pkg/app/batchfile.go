package app

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/daily/pkg/entry"
	"tableflip.dev/daily/pkg/timeutil"
)

// LineError reports a problem in a batch file.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("app: batch line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ParseBatch reads one entry per line:
//
//	YYYY-MM-DD text [#tag ...] [due:YYYY-MM-DD] [every:1w]
//
// Trailing #tag, due: and every: words are metadata; everything between the
// date and the first metadata word is text. Blank lines and lines starting
// with "//" are skipped. The first bad line fails the whole batch.
func ParseBatch(r io.Reader) ([]*entry.Entry, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var out []*entry.Entry
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		e, err := parseBatchLine(line)
		if err != nil {
			return nil, &LineError{Line: lineNum, Err: err}
		}
		out = append(out, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LineError{Line: lineNum + 1, Err: err}
	}
	return out, nil
}

func parseBatchLine(line string) (*entry.Entry, error) {
	fields := strings.Fields(line)
	date, err := entry.ParseDate(fields[0])
	if err != nil {
		return nil, err
	}
	words := fields[1:]

	var (
		tags   []string
		due    string
		repeat string
	)
	// Peel metadata off the end.
	end := len(words)
peel:
	for end > 0 {
		w := words[end-1]
		switch {
		case strings.HasPrefix(w, "#") && len(w) > 1:
			tags = append(tags, w)
		case strings.HasPrefix(w, "due:"):
			due = strings.TrimPrefix(w, "due:")
		case strings.HasPrefix(w, "every:"):
			repeat = strings.TrimPrefix(w, "every:")
		default:
			break peel
		}
		end--
	}
	text := strings.Join(words[:end], " ")
	if text == "" {
		return nil, fmt.Errorf("missing text after date %s", date)
	}

	e := entry.New(date, text, tags...)
	if due != "" || repeat != "" {
		if due == "" {
			return nil, entry.ErrRepeatWithoutDue
		}
		d, err := entry.ParseDate(due)
		if err != nil {
			return nil, &entry.InvalidDateError{Input: due, Field: "due", Err: err}
		}
		var iv *timeutil.Interval
		if repeat != "" {
			v, err := timeutil.ParseInterval(repeat)
			if err != nil {
				return nil, fmt.Errorf("every: %w", err)
			}
			iv = &v
		}
		e.Schedule(d, iv)
	}
	return e, nil
}
