package timetable

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/MohammedFawazAli/my-attend-flow/internal/model"
)

// Weekdays lists the seven weekday names in display order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// minDistinctSubjects is the threshold below which extraction warns
// about a likely mis-parse.
const minDistinctSubjects = 3

var (
	timeOfDayRe = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	dashOnlyRe  = regexp.MustCompile(`^[-–—]+$`)
)

// Result is the outcome of an extraction run: the ordered entry list
// plus non-fatal warnings for the user.
type Result struct {
	Entries  []model.ScheduleEntry
	Warnings []string
}

type dayColumn struct {
	index int
	day   string
}

// Extract loads a timetable file and parses it into schedule entries.
func Extract(path string, denylist *Denylist) (*Result, error) {
	grid, err := LoadGrid(path)
	if err != nil {
		return nil, err
	}
	return Parse(grid, denylist)
}

// Parse interprets a grid of cell strings as a day-by-time timetable.
// The header row is the first of the leading two rows containing day
// columns; spreadsheet exports carry a batch metadata row above it,
// delimited-text exports start with the header directly.
func Parse(grid [][]string, denylist *Denylist) (*Result, error) {
	headerIdx, days := findHeader(grid)
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: no day columns found in header", ErrMalformedTable)
	}
	if len(grid) <= headerIdx+1 {
		return nil, fmt.Errorf("%w: no data rows below header", ErrMalformedTable)
	}
	timeCol := findTimeColumn(grid[headerIdx])

	result := &Result{}
	for rowIdx := headerIdx + 1; rowIdx < len(grid); rowIdx++ {
		row := grid[rowIdx]
		timeValue := normalizeTime(cellValue(row, timeCol))
		if timeValue == "" {
			continue
		}
		for _, col := range days {
			raw := cellValue(row, col.index)
			if skipCell(raw) {
				continue
			}
			cell := CleanCell(raw, denylist)
			if cell.Ignored != "" {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%s %s: extra entries ignored: %q", col.day, timeValue, cell.Ignored))
			}
			if cell.Subject == "" {
				continue
			}
			result.Entries = append(result.Entries, model.ScheduleEntry{
				ID:      uuid.NewString(),
				Day:     col.day,
				Time:    timeValue,
				Subject: cell.Subject,
				Room:    cell.Room,
			})
		}
	}

	if len(result.Entries) == 0 {
		return nil, ErrNoEntries
	}
	if n := distinctSubjects(result.Entries); n < minDistinctSubjects {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("only %d distinct subject(s) found; the timetable may not have parsed correctly", n))
	}
	return result, nil
}

// findHeader locates the header row among the leading two rows and
// returns its index plus the day columns in encounter order.
func findHeader(grid [][]string) (int, []dayColumn) {
	limit := 2
	if len(grid) < limit {
		limit = len(grid)
	}
	for idx := 0; idx < limit; idx++ {
		if days := dayColumns(grid[idx]); len(days) > 0 {
			return idx, days
		}
	}
	return 0, nil
}

func dayColumns(header []string) []dayColumn {
	var days []dayColumn
	for idx, cell := range header {
		if day := matchDay(cell); day != "" {
			days = append(days, dayColumn{index: idx, day: day})
		}
	}
	return days
}

// matchDay matches a header cell against the weekday names,
// case-insensitively by substring, accepting 3-letter abbreviations.
func matchDay(cell string) string {
	lower := strings.ToLower(strings.TrimSpace(cell))
	if lower == "" {
		return ""
	}
	for _, day := range Weekdays {
		full := strings.ToLower(day)
		if strings.Contains(lower, full) || strings.Contains(lower, full[:3]) {
			return day
		}
	}
	return ""
}

// findTimeColumn returns the header column matching "time" or
// "period", defaulting to column 0.
func findTimeColumn(header []string) int {
	for idx, cell := range header {
		lower := strings.ToLower(cell)
		if strings.Contains(lower, "time") || strings.Contains(lower, "period") {
			return idx
		}
	}
	return 0
}

// normalizeTime extracts the first HH:MM token with a zero-padded
// hour so that lexicographic order coincides with chronological order.
// Cells without a time of day are returned trimmed as-is.
func normalizeTime(value string) string {
	match := timeOfDayRe.FindStringSubmatch(value)
	if match == nil {
		return strings.TrimSpace(value)
	}
	hour := match[1]
	if len(hour) == 1 {
		hour = "0" + hour
	}
	return hour + ":" + match[2]
}

// skipCell reports whether a cell holds no class: empty, a bare dash,
// or a free/break marker.
func skipCell(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || dashOnlyRe.MatchString(trimmed) {
		return true
	}
	lower := strings.ToLower(trimmed)
	return strings.Contains(lower, "free") || strings.Contains(lower, "break")
}

func distinctSubjects(entries []model.ScheduleEntry) int {
	seen := map[string]struct{}{}
	for _, entry := range entries {
		seen[entry.Subject] = struct{}{}
	}
	return len(seen)
}

// DayIndex returns the position of a weekday name in display order,
// or -1 when the name is unknown.
func DayIndex(day string) int {
	for idx, name := range Weekdays {
		if strings.EqualFold(name, day) {
			return idx
		}
	}
	return -1
}

// ForDay returns the entries scheduled on a weekday, sorted by time.
func ForDay(entries []model.ScheduleEntry, day string) []model.ScheduleEntry {
	var out []model.ScheduleEntry
	for _, entry := range entries {
		if strings.EqualFold(entry.Day, day) {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Time == out[j].Time {
			return out[i].Subject < out[j].Subject
		}
		return out[i].Time < out[j].Time
	})
	return out
}
