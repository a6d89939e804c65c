package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"

	"tableflip.dev/daily/pkg/entry"
)

const (
	// SchemaV1 tags the journal file header.
	SchemaV1 = "daily/v1"

	// maxLineCapacity bounds a single journal line (1MB).
	maxLineCapacity = 1024 * 1024
)

type header struct {
	Schema string   `json:"schema"`
	NextID entry.ID `json:"next_id"`
	Count  int      `json:"count"`
}

// encodeJournal renders the header and entries as JSON lines. The output
// depends only on its input, so re-encoding a decoded journal reproduces it.
func encodeJournal(nextID entry.ID, entries []*entry.Entry) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{Schema: SchemaV1, NextID: nextID, Count: len(entries)}); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return nil, fmt.Errorf("encode entry %s: %w", e.ID, err)
		}
	}
	return buf.Bytes(), nil
}

// decodeJournal parses a journal file. Every problem is reported as a
// *CorruptError without a path; the caller fills it in.
func decodeJournal(data []byte) (entry.ID, []*entry.Entry, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, maxLineCapacity)

	var (
		h       header
		entries []*entry.Entry
		seen    = make(map[entry.ID]int)
		lineNum = 0
		gotHead = false
	)
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		if !gotHead {
			if err := strictUnmarshal(line, &h); err != nil {
				return 0, nil, &CorruptError{Line: lineNum, Reason: "malformed header", Err: err}
			}
			if h.Schema != SchemaV1 {
				return 0, nil, &CorruptError{Line: lineNum, Reason: fmt.Sprintf("unsupported schema %q", h.Schema)}
			}
			if h.NextID < 1 {
				return 0, nil, &CorruptError{Line: lineNum, Reason: fmt.Sprintf("next_id %d must be positive", h.NextID)}
			}
			if h.Count < 0 {
				return 0, nil, &CorruptError{Line: lineNum, Reason: fmt.Sprintf("negative count %d", h.Count)}
			}
			gotHead = true
			entries = make([]*entry.Entry, 0, h.Count)
			continue
		}

		e := &entry.Entry{}
		if err := strictUnmarshal(line, e); err != nil {
			return 0, nil, &CorruptError{Line: lineNum, Reason: "malformed record", Err: err}
		}
		if e.Date.IsZero() {
			return 0, nil, &CorruptError{Line: lineNum, Reason: fmt.Sprintf("entry %s has no date", e.ID)}
		}
		if prev, ok := seen[e.ID]; ok {
			return 0, nil, &CorruptError{Line: lineNum, Reason: fmt.Sprintf("duplicate id %s (first on line %d)", e.ID, prev)}
		}
		if e.ID >= h.NextID {
			return 0, nil, &CorruptError{Line: lineNum, Reason: fmt.Sprintf("id %s is not below next_id %s", e.ID, h.NextID)}
		}
		if err := e.Validate(); err != nil {
			return 0, nil, &CorruptError{Line: lineNum, Reason: "invalid record", Err: err}
		}
		seen[e.ID] = lineNum
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return 0, nil, &CorruptError{Line: lineNum + 1, Reason: "unreadable line", Err: err}
	}
	if !gotHead {
		return 0, nil, &CorruptError{Reason: "missing header"}
	}
	if len(entries) != h.Count {
		return 0, nil, &CorruptError{Reason: fmt.Sprintf("header declares %d entries, found %d", h.Count, len(entries))}
	}
	return h.NextID, entries, nil
}

func strictUnmarshal(line []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing data after JSON value")
	}
	return nil
}
