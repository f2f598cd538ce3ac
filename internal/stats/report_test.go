package stats

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MohammedFawazAli/my-attend-flow/internal/model"
	"github.com/MohammedFawazAli/my-attend-flow/internal/store"
)

func seedStore(t *testing.T) *store.Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "attendflow.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	subjects := []model.Subject{
		{ID: "s1", Name: "Data Science"},
		{ID: "s2", Name: "Algorithms", ColorIndex: 1},
	}
	if err := st.SaveSubjects(ctx, subjects); err != nil {
		t.Fatalf("save subjects: %v", err)
	}
	records := append(recordsFor("s1", 6, 4), recordsFor("s2", 4, 1)...)
	if err := st.SaveAttendance(ctx, records); err != nil {
		t.Fatalf("save attendance: %v", err)
	}
	return st
}

func TestBuildReport(t *testing.T) {
	st := seedStore(t)
	report, err := BuildReport(context.Background(), st, model.StatsConfig{})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if report.Target != DefaultTarget {
		t.Fatalf("unexpected target: %v", report.Target)
	}
	if report.Overall.Total != 15 || report.Overall.Attended != 10 {
		t.Fatalf("unexpected overall: %+v", report.Overall)
	}
	if len(report.Subjects) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(report.Subjects))
	}
	ds := report.Subjects[0]
	if ds.Subject.Name != "Data Science" || ds.Stats.Percentage != 60 {
		t.Fatalf("unexpected subject report: %+v", ds)
	}
	if ds.Needed != 2 {
		t.Fatalf("unexpected needed count: %d", ds.Needed)
	}
	if len(report.Trend) == 0 {
		t.Fatalf("expected trend points")
	}
}

func TestBuildReportBelowTargetFilter(t *testing.T) {
	st := seedStore(t)
	cfg := model.StatsConfig{BelowTarget: true}
	report, err := BuildReport(context.Background(), st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	// Algorithms sits at 80% and is filtered out.
	if len(report.Subjects) != 1 || report.Subjects[0].Subject.Name != "Data Science" {
		t.Fatalf("unexpected filter result: %+v", report.Subjects)
	}
}

func TestBuildReportSubjectFilter(t *testing.T) {
	st := seedStore(t)
	cfg := model.StatsConfig{SubjectName: "algorithms"}
	report, err := BuildReport(context.Background(), st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Subjects) != 1 || report.Subjects[0].Subject.ID != "s2" {
		t.Fatalf("unexpected filter result: %+v", report.Subjects)
	}
	// Overall still covers every record.
	if report.Overall.Total != 15 {
		t.Fatalf("unexpected overall: %+v", report.Overall)
	}
}

func TestBuildReportEmptyStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "attendflow.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	report, err := BuildReport(context.Background(), st, model.StatsConfig{})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if report.Overall.Total != 0 || report.Overall.Percentage != 0 {
		t.Fatalf("expected all-zero overall, got %+v", report.Overall)
	}
}

func TestRenderTrendHonorsCallerWidth(t *testing.T) {
	var points []TrendPoint
	for i := 0; i < 20; i++ {
		points = append(points, TrendPoint{
			Date:       fmt.Sprintf("2026-08-%02d", i+1),
			Percentage: float64(i * 5),
		})
	}
	report := Report{Trend: points}

	var buf bytes.Buffer
	if err := RenderTrend(&buf, report, 1, 10); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and sparkline, got %q", buf.String())
	}
	if got := len([]rune(lines[1])); got != 10 {
		t.Fatalf("sparkline width = %d, want 10", got)
	}
}

func TestRenderSubjectTableFlagsBelowTarget(t *testing.T) {
	st := seedStore(t)
	report, err := BuildReport(context.Background(), st, model.StatsConfig{})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	var buf bytes.Buffer
	if err := RenderSubjectTable(&buf, report); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "! Data Science") {
		t.Fatalf("below-target subject not flagged:\n%s", out)
	}
	if strings.Contains(out, "! Algorithms") {
		t.Fatalf("above-target subject flagged:\n%s", out)
	}
}
