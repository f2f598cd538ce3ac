// Package tui provides the Bubble Tea marking interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MohammedFawazAli/my-attend-flow/internal/attendance"
	"github.com/MohammedFawazAli/my-attend-flow/internal/model"
	statsPkg "github.com/MohammedFawazAli/my-attend-flow/internal/stats"
	"github.com/MohammedFawazAli/my-attend-flow/internal/store"
)

// Model implements the Bubble Tea marking UI for one date.
type Model struct {
	store    *store.Store
	date     string
	day      string
	entries  []model.ScheduleEntry
	subjects []model.Subject
	records  []model.AttendanceRecord

	cursor int
	errMsg string

	width  int
	height int
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	presentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	absentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	unmarkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	roomStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// NewModel constructs a marking TUI model for the given date's classes.
func NewModel(st *store.Store, date, day string, entries []model.ScheduleEntry, subjects []model.Subject, records []model.AttendanceRecord) *Model {
	return &Model{
		store:    st,
		date:     date,
		day:      day,
		entries:  entries,
		subjects: subjects,
		records:  records,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
			return m, nil
		case "p":
			m.mark(model.StatusPresent)
			return m, nil
		case "a":
			m.mark(model.StatusAbsent)
			return m, nil
		case " ", "enter":
			m.toggle()
			return m, nil
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", m.day, m.date)))
	b.WriteString("\n\n")
	if len(m.entries) == 0 {
		b.WriteString(unmarkedStyle.Render("No classes scheduled."))
		b.WriteString("\n")
	}
	for i, entry := range m.entries {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		line := fmt.Sprintf("%s  %s", entry.Time, entry.Subject)
		if entry.Room != "" {
			line += " " + roomStyle.Render("("+entry.Room+")")
		}
		b.WriteString(prefix + line + "  " + m.statusLabel(entry) + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}
	b.WriteString("\n" + footerStyle.Render(m.footer()) + "\n")
	return b.String()
}

func (m *Model) statusLabel(entry model.ScheduleEntry) string {
	status, ok := attendance.StatusFor(m.records, entry.ID, m.date)
	if !ok {
		return unmarkedStyle.Render("unmarked")
	}
	if status == model.StatusPresent {
		return presentStyle.Render("present")
	}
	return absentStyle.Render("absent")
}

func (m *Model) footer() string {
	overall := statsPkg.Compute(m.records)
	segments := []string{
		fmt.Sprintf("Overall %.1f%% (%d/%d)", overall.Percentage, overall.Attended, overall.Total),
		"p present · a absent · space toggle · q quit",
	}
	return strings.Join(segments, "  ")
}

// toggle marks an unmarked slot present, otherwise flips the status.
func (m *Model) toggle() {
	if m.cursor >= len(m.entries) {
		return
	}
	entry := m.entries[m.cursor]
	status, ok := attendance.StatusFor(m.records, entry.ID, m.date)
	if !ok {
		m.mark(model.StatusPresent)
		return
	}
	m.mark(status.Toggle())
}

func (m *Model) mark(status model.AttendanceStatus) {
	if m.cursor >= len(m.entries) {
		return
	}
	entry := m.entries[m.cursor]
	records, err := attendance.Mark(m.records, m.subjects, entry, m.date, status)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	if err := m.store.SaveAttendance(context.Background(), records); err != nil {
		m.errMsg = fmt.Sprintf("failed to save attendance: %v", err)
		logErrf("failed to save attendance: %v\n", err)
		return
	}
	m.records = records
	m.errMsg = ""
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
