// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MohammedFawazAli/my-attend-flow/internal/model"
	"github.com/MohammedFawazAli/my-attend-flow/internal/stats"
	"github.com/MohammedFawazAli/my-attend-flow/internal/store"
)

const (
	tabOverview = iota
	tabSubjects
	tabTrend
)

const trendWindow = 5

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	belowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	percentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	report stats.Report
	errMsg string

	tabs         []string
	activeTab    int
	viewports    []viewport.Model
	subjectTable table.Model

	filterMode  bool
	filterInput textinput.Model

	width  int
	height int
}

// NewModel constructs a stats UI model.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{
		store: st,
		cfg:   cfg,
		tabs:  []string{"Overview", "Subjects", "Trend"},
	}
	m.filterInput = textinput.New()
	m.filterInput.Placeholder = "subject name"
	m.filterInput.CharLimit = 64
	m.subjectTable = table.New(table.WithColumns(subjectColumns()))
	m.viewports = []viewport.Model{viewport.New(0, 0), viewport.New(0, 0)}
	m.refreshReport()
	return m
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
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.activeTab = (m.activeTab + 1) % len(m.tabs)
			return m, nil
		case "shift+tab", "left", "h":
			m.activeTab = (m.activeTab + len(m.tabs) - 1) % len(m.tabs)
			return m, nil
		case "/":
			m.filterMode = true
			m.filterInput.SetValue(m.cfg.SubjectName)
			m.filterInput.Focus()
			return m, textinput.Blink
		case "b":
			m.cfg.BelowTarget = !m.cfg.BelowTarget
			m.refreshReport()
			return m, nil
		case "r":
			m.refreshReport()
			return m, nil
		}
		return m.updateActivePane(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterMode = false
		m.filterInput.Blur()
		return m, nil
	case "enter":
		m.filterMode = false
		m.filterInput.Blur()
		m.cfg.SubjectName = strings.TrimSpace(m.filterInput.Value())
		m.refreshReport()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) updateActivePane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabSubjects:
		m.subjectTable, cmd = m.subjectTable.Update(msg)
	case tabOverview:
		m.viewports[0], cmd = m.viewports[0].Update(msg)
	case tabTrend:
		m.viewports[1], cmd = m.viewports[1].Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderNav())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	switch m.activeTab {
	case tabOverview:
		b.WriteString(m.viewports[0].View())
	case tabSubjects:
		b.WriteString(m.subjectTable.View())
	case tabTrend:
		b.WriteString(m.viewports[1].View())
	}
	b.WriteString("\n")
	if m.filterMode {
		b.WriteString("Filter: " + m.filterInput.View())
	} else {
		b.WriteString(headerStyle.Render(m.footer()))
	}
	return b.String()
}

func (m *Model) footer() string {
	segments := []string{"tab switch", "/ filter", "b below-target", "r refresh", "q quit"}
	if m.cfg.SubjectName != "" {
		segments = append([]string{fmt.Sprintf("subject=%s", m.cfg.SubjectName)}, segments...)
	}
	if m.cfg.BelowTarget {
		segments = append([]string{"below-target only"}, segments...)
	}
	return strings.Join(segments, " · ")
}

func (m *Model) renderNav() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load stats: %v", err)
		return
	}
	m.errMsg = ""
	m.report = report
	m.renderTabContents()
}

func (m *Model) updateLayout() {
	contentHeight := m.height - 6
	if contentHeight < 3 {
		contentHeight = 3
	}
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = contentHeight
	}
	m.subjectTable.SetWidth(m.width)
	m.subjectTable.SetHeight(contentHeight)
}

func (m *Model) renderTabContents() {
	var overview bytes.Buffer
	if err := stats.RenderSummary(&overview, m.report); err != nil {
		m.errMsg = fmt.Sprintf("failed to render summary: %v", err)
	}
	fmt.Fprintf(&overview, "Target: %s\n", percentStyle.Render(fmt.Sprintf("%.0f%%", m.report.Target)))
	below := 0
	for _, sr := range m.report.Subjects {
		if sr.Stats.BelowTarget(m.report.Target) {
			below++
		}
	}
	if below > 0 {
		fmt.Fprintln(&overview, belowStyle.Render(fmt.Sprintf("%d subject(s) below target", below)))
	}
	m.viewports[0].SetContent(overview.String())

	rows := make([]table.Row, 0, len(m.report.Subjects))
	for _, sr := range m.report.Subjects {
		flag := ""
		if sr.Stats.BelowTarget(m.report.Target) {
			flag = "!"
		}
		toAttend := fmt.Sprintf("%d", sr.ToAttend)
		if sr.ToAttend < 0 {
			toAttend = "-"
		}
		rows = append(rows, table.Row{
			flag,
			sr.Subject.Name,
			fmt.Sprintf("%d", sr.Stats.Total),
			fmt.Sprintf("%d", sr.Stats.Attended),
			fmt.Sprintf("%d", sr.Stats.Missed),
			fmt.Sprintf("%.1f%%", sr.Stats.Percentage),
			fmt.Sprintf("%d", sr.Needed),
			toAttend,
		})
	}
	m.subjectTable.SetRows(rows)

	width := m.viewports[1].Width
	if width <= 0 {
		width = 80
	}
	var trend bytes.Buffer
	if err := stats.RenderTrend(&trend, m.report, trendWindow, width); err != nil {
		m.errMsg = fmt.Sprintf("failed to render trend: %v", err)
	}
	if trend.Len() == 0 {
		trend.WriteString("No attendance recorded yet.")
	}
	m.viewports[1].SetContent(trend.String())
}

func subjectColumns() []table.Column {
	return []table.Column{
		{Title: "", Width: 1},
		{Title: "Subject", Width: 28},
		{Title: "Held", Width: 5},
		{Title: "Att", Width: 5},
		{Title: "Miss", Width: 5},
		{Title: "Pct", Width: 7},
		{Title: "Rec", Width: 4},
		{Title: "Fut", Width: 4},
	}
}
