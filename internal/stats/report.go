package stats

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MohammedFawazAli/my-attend-flow/internal/model"
	"github.com/MohammedFawazAli/my-attend-flow/internal/store"
)

// SubjectReport pairs a subject with its aggregated stats and the
// classes-needed advisories.
type SubjectReport struct {
	Subject model.Subject
	Stats   Stats
	// Needed is the backward-looking count: how many of the recorded
	// classes would need to have been present to reach the target.
	Needed int
	// ToAttend is the forward-looking count: future classes to attend
	// in a row to reach the target; -1 when unreachable.
	ToAttend int
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Target   float64
	Overall  Stats
	Subjects []SubjectReport
	Trend    []TrendPoint
}

// BuildReport loads and prepares attendance data for rendering.
// Overall stats always cover every record; the subject list honors
// the config filters.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	subjects, err := st.Subjects(ctx)
	if err != nil {
		return Report{}, err
	}
	records, err := st.Attendance(ctx)
	if err != nil {
		return Report{}, err
	}

	target := cfg.Target
	if target <= 0 {
		target = DefaultTarget
	}

	report := Report{Target: target, Overall: Compute(records)}
	trendSubjectID := ""
	for _, subject := range subjects {
		if cfg.SubjectName != "" && !strings.EqualFold(subject.Name, cfg.SubjectName) {
			continue
		}
		if cfg.SubjectName != "" {
			trendSubjectID = subject.ID
		}
		s := ForSubject(records, subject.ID)
		if cfg.BelowTarget && !s.BelowTarget(target) {
			continue
		}
		report.Subjects = append(report.Subjects, SubjectReport{
			Subject:  subject,
			Stats:    s,
			Needed:   NeededForTarget(s.Total, s.Attended, target),
			ToAttend: ToAttendForTarget(s.Total, s.Attended, target),
		})
	}
	report.Trend = Trend(records, trendSubjectID)
	return report, nil
}

// RenderSummary prints the overall counts.
func RenderSummary(w io.Writer, report Report) error {
	if _, err := fmt.Fprintln(w, "Overall"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Classes: %d\n", report.Overall.Total); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Attended: %d\n", report.Overall.Attended); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Missed: %d\n", report.Overall.Missed); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Attendance: %.1f%%\n", report.Overall.Percentage); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderSubjectTable prints per-subject aggregates. Subjects below the
// target are flagged, with both classes-needed advisories: "of
// recorded" holds the total fixed, "to attend" counts future classes
// into it.
func RenderSubjectTable(w io.Writer, report Report) error {
	if len(report.Subjects) == 0 {
		_, err := fmt.Fprintln(w, "No subjects found.")
		return err
	}
	headers := []string{"Subject", "Held", "Attended", "Missed", "Attendance", "Of Recorded", "To Attend"}
	rows := make([][]string, 0, len(report.Subjects))
	for _, sr := range report.Subjects {
		name := sr.Subject.Name
		if sr.Stats.BelowTarget(report.Target) {
			name = "! " + name
		}
		toAttend := fmt.Sprintf("%d", sr.ToAttend)
		if sr.ToAttend < 0 {
			toAttend = "-"
		}
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", sr.Stats.Total),
			fmt.Sprintf("%d", sr.Stats.Attended),
			fmt.Sprintf("%d", sr.Stats.Missed),
			fmt.Sprintf("%.1f%%", sr.Stats.Percentage),
			fmt.Sprintf("%d", sr.Needed),
			toAttend,
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\n! below %.0f%% target\n\n", report.Target); err != nil {
		return err
	}
	return nil
}

// RenderTrend prints a sparkline of the cumulative percentage over
// time, keeping the most recent width points. Callers pass the width
// of the surface they render into.
func RenderTrend(w io.Writer, report Report, window, width int) error {
	if len(report.Trend) == 0 {
		return nil
	}
	values := make([]float64, len(report.Trend))
	for i, point := range report.Trend {
		values[i] = point.Percentage
	}
	values = MovingAverage(values, window)
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	first := report.Trend[0].Date
	last := report.Trend[len(report.Trend)-1].Date
	if _, err := fmt.Fprintf(w, "Trend %s .. %s (0-100%%)\n", first, last); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, Sparkline(values)); err != nil {
		return err
	}
	return nil
}
