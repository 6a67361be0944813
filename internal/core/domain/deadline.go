package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// TermDeadline is a single application-term deadline as entered by a user.
// Deadline strings come from free-form input, so parsing is best-effort:
// entries whose date cannot be parsed are treated as absent data, not errors.
type TermDeadline struct {
	Term     string `json:"term"`
	Deadline string `json:"deadline"`
}

// DeadlineSelection is the result of picking the current and next deadline
// from an ordered list.
type DeadlineSelection struct {
	// Current is the first deadline at or after the reference time. When
	// every deadline is in the past, Current is the last (most recent)
	// entry and IsPast is set.
	Current *TermDeadline `json:"current"`

	// Next is the entry immediately after Current, if any.
	Next *TermDeadline `json:"next"`

	// IsPast reports that Current is already behind the reference time.
	IsPast bool `json:"is_past"`
}

// deadlineLayouts are the accepted date formats, tried in order.
var deadlineLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDeadline parses a deadline string. The second return value reports
// whether the string was parseable.
func ParseDeadline(s string) (time.Time, bool) {
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SanitizeDeadlines filters raw entries to those with a parseable date,
// assigns "Deadline {n}" labels to blank terms by 1-based position, and
// returns the result sorted ascending by parsed date. When no entry survives
// filtering, a single synthetic entry is built from fallbackDeadline, if that
// itself parses; otherwise the result is empty.
func SanitizeDeadlines(raw []TermDeadline, fallbackDeadline string) []TermDeadline {
	out := make([]TermDeadline, 0, len(raw))
	for _, entry := range raw {
		if _, ok := ParseDeadline(entry.Deadline); !ok {
			continue
		}
		out = append(out, entry)
	}

	if len(out) == 0 {
		if _, ok := ParseDeadline(fallbackDeadline); !ok {
			return nil
		}
		out = []TermDeadline{{Deadline: fallbackDeadline}}
	}

	for i := range out {
		if out[i].Term == "" {
			out[i].Term = fmt.Sprintf("Deadline %d", i+1)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, _ := ParseDeadline(out[i].Deadline)
		b, _ := ParseDeadline(out[j].Deadline)
		return a.Before(b)
	})
	return out
}

// SelectCurrentAndNext picks the current and next deadline from a list
// already sorted ascending by date. The first entry at or after now is
// current; when all entries are in the past the last entry is returned with
// IsPast set. An empty list yields an empty selection.
func SelectCurrentAndNext(sorted []TermDeadline, now time.Time) DeadlineSelection {
	if len(sorted) == 0 {
		return DeadlineSelection{}
	}

	for i := range sorted {
		date, ok := ParseDeadline(sorted[i].Deadline)
		if !ok {
			continue
		}
		if !date.Before(now) {
			sel := DeadlineSelection{Current: &sorted[i]}
			if i+1 < len(sorted) {
				sel.Next = &sorted[i+1]
			}
			return sel
		}
	}

	return DeadlineSelection{Current: &sorted[len(sorted)-1], IsPast: true}
}

// DaysUntil returns the number of whole days from now until the deadline,
// rounded up. Negative for past deadlines, zero for a deadline exactly at
// now. Nil when the deadline is nil or its date does not parse.
func DaysUntil(d *TermDeadline, now time.Time) *int {
	if d == nil {
		return nil
	}
	date, ok := ParseDeadline(d.Deadline)
	if !ok {
		return nil
	}
	days := int(math.Ceil(date.Sub(now).Hours() / 24))
	return &days
}
