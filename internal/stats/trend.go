package stats

import (
	"math"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/MohammedFawazAli/my-attend-flow/internal/model"
)

const sparkChars = " .:-=+*#%@"

const terminalWidthBackup = 80

// TrendPoint is the cumulative overall percentage as of one date.
type TrendPoint struct {
	Date       string
	Percentage float64
}

// Trend computes the cumulative attendance percentage date by date,
// optionally filtered to one subject.
func Trend(records []model.AttendanceRecord, subjectID string) []TrendPoint {
	byDate := map[string][2]int{} // attended, total
	for _, record := range records {
		if subjectID != "" && record.SubjectID != subjectID {
			continue
		}
		counts := byDate[record.Date]
		counts[1]++
		if record.Status == model.StatusPresent {
			counts[0]++
		}
		byDate[record.Date] = counts
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	points := make([]TrendPoint, 0, len(dates))
	attended, total := 0, 0
	for _, date := range dates {
		counts := byDate[date]
		attended += counts[0]
		total += counts[1]
		points = append(points, TrendPoint{Date: date, Percentage: Percentage(attended, total)})
	}
	return points
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline on a fixed 0-100
// scale, suited to percentage series.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	var b strings.Builder
	for _, v := range values {
		pos := v / 100
		if pos < 0 {
			pos = 0
		}
		if pos > 1 {
			pos = 1
		}
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// TerminalWidth probes stdout's width, with a fixed fallback for
// non-terminal writers.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
