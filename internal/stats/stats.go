// Package stats contains attendance aggregation and reporting.
package stats

import (
	"math"

	"github.com/MohammedFawazAli/my-attend-flow/internal/model"
)

// DefaultTarget is the advisory attendance-percentage threshold.
const DefaultTarget = 75.0

// Stats holds aggregated attendance counts for one subject or overall.
type Stats struct {
	Total      int
	Attended   int
	Missed     int
	Percentage float64
}

// Compute aggregates every record regardless of subject. Counts are
// recomputed from scratch on every call; records are the only source
// of truth.
func Compute(records []model.AttendanceRecord) Stats {
	return compute(records, "")
}

// ForSubject aggregates the records of one subject.
func ForSubject(records []model.AttendanceRecord, subjectID string) Stats {
	return compute(records, subjectID)
}

func compute(records []model.AttendanceRecord, subjectID string) Stats {
	var s Stats
	for _, record := range records {
		if subjectID != "" && record.SubjectID != subjectID {
			continue
		}
		s.Total++
		if record.Status == model.StatusPresent {
			s.Attended++
		}
	}
	s.Missed = s.Total - s.Attended
	s.Percentage = Percentage(s.Attended, s.Total)
	return s
}

// Percentage is attended/total*100, defined as 0 when total is 0.
func Percentage(attended, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(attended) / float64(total) * 100
}

// BelowTarget reports whether the stats fall below the target
// percentage.
func (s Stats) BelowTarget(target float64) bool {
	return s.Percentage < target
}

// NeededForTarget answers how many of the already-recorded classes
// would need to have been present to reach the target. It holds total
// fixed, so it is a backward-looking approximation, not a projection.
func NeededForTarget(total, attended int, target float64) int {
	needed := int(math.Ceil(target*float64(total)/100)) - attended
	if needed < 0 {
		return 0
	}
	return needed
}

// ToAttendForTarget answers how many future classes must be attended
// in a row to reach the target, counting the classes themselves into
// the total. Returns -1 when the target is unreachable (target at or
// above 100 with at least one miss).
func ToAttendForTarget(total, attended int, target float64) int {
	if Percentage(attended, total) >= target {
		return 0
	}
	if target >= 100 {
		return -1
	}
	k := (target*float64(total) - 100*float64(attended)) / (100 - target)
	return int(math.Ceil(k))
}
