package domain

import (
	"testing"
	"time"
)

func TestSanitizeDeadlines_FallbackWhenEmpty(t *testing.T) {
	got := SanitizeDeadlines(nil, "2025-12-01")

	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].Term != "Deadline 1" {
		t.Errorf("expected term 'Deadline 1', got %q", got[0].Term)
	}
	if got[0].Deadline != "2025-12-01" {
		t.Errorf("expected deadline 2025-12-01, got %q", got[0].Deadline)
	}
}

func TestSanitizeDeadlines_DropsUnparseableThenFallsBack(t *testing.T) {
	raw := []TermDeadline{{Term: "", Deadline: "not-a-date"}}

	got := SanitizeDeadlines(raw, "2025-12-01")

	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].Term != "Deadline 1" || got[0].Deadline != "2025-12-01" {
		t.Errorf("expected fallback entry, got %+v", got[0])
	}
}

func TestSanitizeDeadlines_UnparseableFallbackYieldsEmpty(t *testing.T) {
	got := SanitizeDeadlines(nil, "soon")

	if len(got) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}

func TestSanitizeDeadlines_SortsAscending(t *testing.T) {
	raw := []TermDeadline{
		{Term: "Fall", Deadline: "2025-12-01"},
		{Term: "Spring", Deadline: "2025-01-01"},
	}

	got := SanitizeDeadlines(raw, "")

	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Term != "Spring" {
		t.Errorf("expected Spring first, got %q", got[0].Term)
	}
	if got[1].Term != "Fall" {
		t.Errorf("expected Fall second, got %q", got[1].Term)
	}
}

func TestSanitizeDeadlines_LabelsBlankTermsByPosition(t *testing.T) {
	raw := []TermDeadline{
		{Term: "", Deadline: "2025-03-01"},
		{Term: "Fall", Deadline: "2025-09-01"},
		{Term: "", Deadline: "2025-06-01"},
	}

	got := SanitizeDeadlines(raw, "")

	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].Term != "Deadline 1" {
		t.Errorf("expected 'Deadline 1', got %q", got[0].Term)
	}
	if got[1].Term != "Deadline 3" {
		t.Errorf("expected 'Deadline 3', got %q", got[1].Term)
	}
	if got[2].Term != "Fall" {
		t.Errorf("expected 'Fall', got %q", got[2].Term)
	}
}

func TestSelectCurrentAndNext(t *testing.T) {
	sorted := []TermDeadline{
		{Term: "Spring", Deadline: "2025-01-01"},
		{Term: "Fall", Deadline: "2025-12-01"},
	}
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	sel := SelectCurrentAndNext(sorted, now)

	if sel.Current == nil || sel.Current.Term != "Fall" {
		t.Fatalf("expected current Fall, got %+v", sel.Current)
	}
	if sel.Next != nil {
		t.Errorf("expected no next, got %+v", sel.Next)
	}
	if sel.IsPast {
		t.Error("expected IsPast false")
	}
}

func TestSelectCurrentAndNext_WithUpcomingPair(t *testing.T) {
	sorted := []TermDeadline{
		{Term: "Spring", Deadline: "2025-01-01"},
		{Term: "Fall", Deadline: "2025-12-01"},
	}
	now := time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC)

	sel := SelectCurrentAndNext(sorted, now)

	if sel.Current == nil || sel.Current.Term != "Spring" {
		t.Fatalf("expected current Spring, got %+v", sel.Current)
	}
	if sel.Next == nil || sel.Next.Term != "Fall" {
		t.Fatalf("expected next Fall, got %+v", sel.Next)
	}
}

func TestSelectCurrentAndNext_AllPast(t *testing.T) {
	sorted := []TermDeadline{
		{Term: "Spring", Deadline: "2025-01-01"},
		{Term: "Fall", Deadline: "2025-12-01"},
	}
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	sel := SelectCurrentAndNext(sorted, now)

	if sel.Current == nil || sel.Current.Term != "Fall" {
		t.Fatalf("expected current Fall, got %+v", sel.Current)
	}
	if sel.Next != nil {
		t.Errorf("expected no next, got %+v", sel.Next)
	}
	if !sel.IsPast {
		t.Error("expected IsPast true")
	}
}

func TestSelectCurrentAndNext_Empty(t *testing.T) {
	sel := SelectCurrentAndNext(nil, time.Now())

	if sel.Current != nil || sel.Next != nil || sel.IsPast {
		t.Errorf("expected empty selection, got %+v", sel)
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline *TermDeadline
		want     *int
	}{
		{"tomorrow", &TermDeadline{Deadline: "2025-06-02"}, intPtr(1)},
		{"exactly now", &TermDeadline{Deadline: "2025-06-01"}, intPtr(0)},
		{"yesterday", &TermDeadline{Deadline: "2025-05-31"}, intPtr(-1)},
		{"partial day rounds up", &TermDeadline{Deadline: "2025-06-02T12:00:00Z"}, intPtr(2)},
		{"nil deadline", nil, nil},
		{"unparseable", &TermDeadline{Deadline: "whenever"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysUntil(tt.deadline, now)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("DaysUntil() = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("DaysUntil() = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func intPtr(n int) *int { return &n }
