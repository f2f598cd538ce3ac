package stats

import (
	"fmt"
	"testing"

	"github.com/MohammedFawazAli/my-attend-flow/internal/model"
)

func recordsFor(subjectID string, present, absent int) []model.AttendanceRecord {
	var records []model.AttendanceRecord
	for i := 0; i < present; i++ {
		records = append(records, model.AttendanceRecord{
			ID:        fmt.Sprintf("%s-p%d", subjectID, i),
			SubjectID: subjectID,
			Date:      fmt.Sprintf("2026-08-%02d", i+1),
			Status:    model.StatusPresent,
		})
	}
	for i := 0; i < absent; i++ {
		records = append(records, model.AttendanceRecord{
			ID:        fmt.Sprintf("%s-a%d", subjectID, i),
			SubjectID: subjectID,
			Date:      fmt.Sprintf("2026-09-%02d", i+1),
			Status:    model.StatusAbsent,
		})
	}
	return records
}

func TestForSubjectWorkedExample(t *testing.T) {
	// 10 records, 6 present.
	records := recordsFor("s1", 6, 4)
	s := ForSubject(records, "s1")
	if s.Total != 10 || s.Attended != 6 || s.Missed != 4 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if s.Percentage != 60 {
		t.Fatalf("unexpected percentage: %v", s.Percentage)
	}
	if got := NeededForTarget(s.Total, s.Attended, DefaultTarget); got != 2 {
		t.Fatalf("expected 2 classes needed, got %d", got)
	}
}

func TestAttendedPlusMissedEqualsTotal(t *testing.T) {
	records := append(recordsFor("s1", 3, 2), recordsFor("s2", 1, 5)...)
	for _, id := range []string{"s1", "s2"} {
		s := ForSubject(records, id)
		if s.Attended+s.Missed != s.Total {
			t.Fatalf("counts inconsistent for %s: %+v", id, s)
		}
	}
	overall := Compute(records)
	if overall.Total != 11 || overall.Attended != 4 {
		t.Fatalf("unexpected overall: %+v", overall)
	}
}

func TestPercentageBounds(t *testing.T) {
	cases := []struct {
		attended, total int
	}{
		{0, 0}, {0, 5}, {5, 5}, {3, 7},
	}
	for _, tc := range cases {
		pct := Percentage(tc.attended, tc.total)
		if pct < 0 || pct > 100 {
			t.Fatalf("Percentage(%d, %d) = %v out of range", tc.attended, tc.total, pct)
		}
		if tc.total == 0 && pct != 0 {
			t.Fatalf("Percentage with zero total must be 0, got %v", pct)
		}
	}
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil)
	if s.Total != 0 || s.Attended != 0 || s.Missed != 0 || s.Percentage != 0 {
		t.Fatalf("expected all-zero stats, got %+v", s)
	}
}

func TestBelowTarget(t *testing.T) {
	if s := (Stats{Percentage: 74.9}); !s.BelowTarget(75) {
		t.Fatalf("74.9 should be below 75")
	}
	if s := (Stats{Percentage: 75}); s.BelowTarget(75) {
		t.Fatalf("75 should not be below 75")
	}
}

func TestNeededForTarget(t *testing.T) {
	tests := []struct {
		total, attended int
		want            int
	}{
		{10, 6, 2},
		{10, 8, 0},
		{0, 0, 0},
		{4, 0, 3},
	}
	for _, tc := range tests {
		if got := NeededForTarget(tc.total, tc.attended, 75); got != tc.want {
			t.Fatalf("NeededForTarget(%d, %d) = %d, want %d", tc.total, tc.attended, got, tc.want)
		}
	}
}

func TestToAttendForTarget(t *testing.T) {
	tests := []struct {
		total, attended int
		target          float64
		want            int
	}{
		{10, 6, 75, 6},  // (6+6)/(10+6) = 75%
		{10, 8, 75, 0},  // already above
		{0, 0, 75, 0},   // nothing recorded
		{10, 6, 100, -1}, // unreachable with a recorded miss
	}
	for _, tc := range tests {
		if got := ToAttendForTarget(tc.total, tc.attended, tc.target); got != tc.want {
			t.Fatalf("ToAttendForTarget(%d, %d, %v) = %d, want %d", tc.total, tc.attended, tc.target, got, tc.want)
		}
	}
}
