// Package main provides the CLI entrypoint for attendflow.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/MohammedFawazAli/my-attend-flow/internal/attendance"
	"github.com/MohammedFawazAli/my-attend-flow/internal/config"
	"github.com/MohammedFawazAli/my-attend-flow/internal/model"
	"github.com/MohammedFawazAli/my-attend-flow/internal/notify"
	"github.com/MohammedFawazAli/my-attend-flow/internal/stats"
	"github.com/MohammedFawazAli/my-attend-flow/internal/statsui"
	"github.com/MohammedFawazAli/my-attend-flow/internal/store"
	"github.com/MohammedFawazAli/my-attend-flow/internal/timetable"
	"github.com/MohammedFawazAli/my-attend-flow/internal/tui"
)

const (
	defaultTarget      = stats.DefaultTarget
	defaultLeadMinutes = 10
	defaultTrendWindow = 5
)

var (
	importYes      bool
	importDenylist string

	markDate string

	markOneEntry  string
	markOneDate   string
	markOneStatus string

	scheduleDay  string
	scheduleWeek bool

	editSubject string
	editRoom    string
	editDay     string
	editTime    string

	statsSubject string
	statsBelow   bool
	statsTarget  float64
	statsWindow  int
	statsTUI     bool

	remindLead int

	clearYes bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "attendflow",
		Short:         "Personal class-attendance tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runMarkCmd,
	}
	rootCmd.Flags().StringVar(&markDate, "date", "", "date to mark (YYYY-MM-DD, default today)")

	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newMarkCmd())
	rootCmd.AddCommand(newMarkOneCmd())
	rootCmd.AddCommand(newScheduleCmd())
	rootCmd.AddCommand(newEditEntryCmd())
	rootCmd.AddCommand(newRemoveEntryCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newRemindCmd())
	rootCmd.AddCommand(newClearCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a timetable spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().BoolVar(&importYes, "yes", false, "skip the confirmation prompt")
	cmd.Flags().StringVar(&importDenylist, "denylist", "", "instructor surname denylist file")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "denylist", &importDenylist, fileCfg.Attendance.Denylist)
	denylistPath := importDenylist
	if denylistPath == "" {
		denylistPath = config.DefaultDenylistPath()
	}
	denylist, err := timetable.LoadDenylist(denylistPath)
	if err != nil {
		return fmt.Errorf("failed to load denylist: %w", err)
	}

	result, err := timetable.Extract(args[0], denylist)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, entry := range orderedEntries(result.Entries) {
		line := fmt.Sprintf("%-9s %s  %s", entry.Day, entry.Time, entry.Subject)
		if entry.Room != "" {
			line += " (" + entry.Room + ")"
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	for _, warning := range result.Warnings {
		logErrf("warning: %s\n", warning)
	}

	if !importYes {
		ok, err := confirm(cmd, fmt.Sprintf("Save %d entries? This replaces the current timetable [y/N]: ", len(result.Entries)))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("import cancelled")
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	previous, err := st.Subjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load subjects: %w", err)
	}
	// Timetable and subjects are two independent saves; subjects are
	// re-derived immediately to keep the gap as small as possible.
	if err := st.SaveTimetable(ctx, result.Entries); err != nil {
		return fmt.Errorf("failed to save timetable: %w", err)
	}
	subjects := attendance.DeriveSubjects(result.Entries, previous)
	if err := st.SaveSubjects(ctx, subjects); err != nil {
		return fmt.Errorf("failed to save subjects: %w", err)
	}

	if _, err := fmt.Fprintf(out, "Imported %d entries, %d subjects.\n", len(result.Entries), len(subjects)); err != nil {
		return err
	}
	return nil
}

func newMarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mark",
		Short: "Mark attendance for a date",
		Args:  cobra.NoArgs,
		RunE:  runMarkCmd,
	}
	cmd.Flags().StringVar(&markDate, "date", "", "date to mark (YYYY-MM-DD, default today)")
	return cmd
}

func runMarkCmd(_ *cobra.Command, _ []string) error {
	date, day, err := resolveDate(markDate)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	entries, err := st.Timetable(ctx)
	if err != nil {
		return fmt.Errorf("failed to load timetable: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no timetable imported yet; run: attendflow import <file>")
	}
	subjects, err := st.Subjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load subjects: %w", err)
	}
	records, err := st.Attendance(ctx)
	if err != nil {
		return fmt.Errorf("failed to load attendance: %w", err)
	}

	dayEntries := timetable.ForDay(entries, day)
	model := tui.NewModel(st, date, day, dayEntries, subjects, records)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newMarkOneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mark-one",
		Short: "Mark a single schedule entry without the TUI",
		Args:  cobra.NoArgs,
		RunE:  runMarkOneCmd,
	}
	cmd.Flags().StringVar(&markOneEntry, "entry", "", "schedule entry id (or unambiguous prefix)")
	cmd.Flags().StringVar(&markOneDate, "date", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&markOneStatus, "status", "", "present or absent")
	return cmd
}

func runMarkOneCmd(_ *cobra.Command, _ []string) error {
	if markOneEntry == "" {
		return fmt.Errorf("--entry is required")
	}
	status, err := parseStatus(markOneStatus)
	if err != nil {
		return err
	}
	date, _, err := resolveDate(markOneDate)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	return markEntry(context.Background(), st, markOneEntry, date, status)
}

func markEntry(ctx context.Context, st *store.Store, entryID, date string, status model.AttendanceStatus) error {
	entries, err := st.Timetable(ctx)
	if err != nil {
		return fmt.Errorf("failed to load timetable: %w", err)
	}
	entry, err := timetable.FindEntry(entries, entryID)
	if err != nil {
		return err
	}
	subjects, err := st.Subjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load subjects: %w", err)
	}
	records, err := st.Attendance(ctx)
	if err != nil {
		return fmt.Errorf("failed to load attendance: %w", err)
	}
	records, err = attendance.Mark(records, subjects, entry, date, status)
	if err != nil {
		return err
	}
	if err := st.SaveAttendance(ctx, records); err != nil {
		return fmt.Errorf("failed to save attendance: %w", err)
	}
	return nil
}

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show the timetable",
		Args:  cobra.NoArgs,
		RunE:  runScheduleCmd,
	}
	cmd.Flags().StringVar(&scheduleDay, "day", "", "weekday to show (default today)")
	cmd.Flags().BoolVar(&scheduleWeek, "week", false, "show the whole week")
	return cmd
}

func runScheduleCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	entries, err := st.Timetable(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load timetable: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no timetable imported yet; run: attendflow import <file>")
	}

	days := timetable.Weekdays
	if !scheduleWeek {
		day := scheduleDay
		if day == "" {
			day = time.Now().Weekday().String()
		}
		if timetable.DayIndex(day) < 0 {
			return fmt.Errorf("unknown weekday %q", day)
		}
		days = []string{day}
	}

	out := cmd.OutOrStdout()
	for _, day := range days {
		dayEntries := timetable.ForDay(entries, day)
		if len(dayEntries) == 0 {
			continue
		}
		if _, err := fmt.Fprintln(out, day); err != nil {
			return err
		}
		for _, entry := range dayEntries {
			line := fmt.Sprintf("  %s  %s", entry.Time, entry.Subject)
			if entry.Room != "" {
				line += " (" + entry.Room + ")"
			}
			line += "  [" + shortID(entry.ID) + "]"
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func newEditEntryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit-entry <id>",
		Short: "Replace fields of one schedule entry",
		Args:  cobra.ExactArgs(1),
		RunE:  runEditEntryCmd,
	}
	cmd.Flags().StringVar(&editSubject, "subject", "", "new subject name")
	cmd.Flags().StringVar(&editRoom, "room", "", "new room")
	cmd.Flags().StringVar(&editDay, "day", "", "new weekday")
	cmd.Flags().StringVar(&editTime, "time", "", "new time (HH:MM)")
	return cmd
}

func runEditEntryCmd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	entries, err := st.Timetable(ctx)
	if err != nil {
		return fmt.Errorf("failed to load timetable: %w", err)
	}
	entry, err := timetable.FindEntry(entries, args[0])
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("subject") {
		entry.Subject = editSubject
	}
	if cmd.Flags().Changed("room") {
		entry.Room = editRoom
	}
	if cmd.Flags().Changed("day") {
		if timetable.DayIndex(editDay) < 0 {
			return fmt.Errorf("unknown weekday %q", editDay)
		}
		entry.Day = editDay
	}
	if cmd.Flags().Changed("time") {
		entry.Time = editTime
	}

	entries, err = timetable.ReplaceEntry(entries, entry)
	if err != nil {
		return err
	}
	if err := st.SaveTimetable(ctx, entries); err != nil {
		return fmt.Errorf("failed to save timetable: %w", err)
	}
	subjects, err := st.Subjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load subjects: %w", err)
	}
	if err := st.SaveSubjects(ctx, attendance.DeriveSubjects(entries, subjects)); err != nil {
		return fmt.Errorf("failed to save subjects: %w", err)
	}
	return nil
}

func newRemoveEntryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-entry <id>",
		Short: "Delete one schedule entry",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemoveEntryCmd,
	}
}

func runRemoveEntryCmd(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	entries, err := st.Timetable(ctx)
	if err != nil {
		return fmt.Errorf("failed to load timetable: %w", err)
	}
	entry, err := timetable.FindEntry(entries, args[0])
	if err != nil {
		return err
	}
	entries, err = timetable.RemoveEntry(entries, entry.ID)
	if err != nil {
		return err
	}
	if err := st.SaveTimetable(ctx, entries); err != nil {
		return fmt.Errorf("failed to save timetable: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show attendance stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSubject, "subject", "", "subject name filter")
	cmd.Flags().BoolVar(&statsBelow, "below-target", false, "only subjects below the target")
	cmd.Flags().Float64Var(&statsTarget, "target", defaultTarget, "target attendance percentage")
	cmd.Flags().IntVar(&statsWindow, "window", defaultTrendWindow, "trend moving average window")
	cmd.Flags().BoolVar(&statsTUI, "tui", false, "open the interactive stats view")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "target", &statsTarget, fileCfg.Attendance.Target)
	if statsTarget <= 0 || statsTarget > 100 {
		return fmt.Errorf("--target must be between 0 and 100")
	}

	cfg := model.StatsConfig{
		SubjectName: statsSubject,
		BelowTarget: statsBelow,
		Target:      statsTarget,
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if statsTUI {
		model := statsui.NewModel(st, cfg)
		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report); err != nil {
		return err
	}
	if err := stats.RenderSubjectTable(out, report); err != nil {
		return err
	}
	return stats.RenderTrend(out, report, statsWindow, stats.TerminalWidth())
}

func newRemindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Run the class reminder loop",
		Args:  cobra.NoArgs,
		RunE:  runRemindCmd,
	}
	cmd.Flags().IntVar(&remindLead, "lead", defaultLeadMinutes, "minutes before class to remind")
	return cmd
}

func runRemindCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "lead", &remindLead, fileCfg.Remind.LeadMinutes)
	if remindLead < 0 {
		return fmt.Errorf("--lead must be >= 0")
	}

	notifier, err := notify.NewDesktop()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	entries, err := st.Timetable(ctx)
	if err != nil {
		return fmt.Errorf("failed to load timetable: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no timetable imported yet; run: attendflow import <file>")
	}
	if err := st.SetRemindersRequested(ctx, true); err != nil {
		return fmt.Errorf("failed to save reminder flag: %w", err)
	}

	scheduler := notify.NewScheduler(notifier, time.Duration(remindLead)*time.Minute)
	scheduler.OnAction = func(entry model.ScheduleEntry, action notify.Action) {
		switch action {
		case notify.ActionMarkPresent:
			if err := markEntry(ctx, st, entry.ID, model.DateOf(time.Now()), model.StatusPresent); err != nil {
				logErrf("failed to mark present: %v\n", err)
			}
		case notify.ActionMarkAbsent:
			if err := markEntry(ctx, st, entry.ID, model.DateOf(time.Now()), model.StatusAbsent); err != nil {
				logErrf("failed to mark absent: %v\n", err)
			}
		case notify.ActionViewSchedule:
			logErrf("today's schedule: attendflow schedule\n")
		}
	}
	logErrf("reminders running; press Ctrl+C to stop\n")
	return scheduler.Run(ctx, entries)
}

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored data",
		Args:  cobra.NoArgs,
		RunE:  runClearCmd,
	}
	cmd.Flags().BoolVar(&clearYes, "yes", false, "skip the confirmation prompt")
	return cmd
}

func runClearCmd(cmd *cobra.Command, _ []string) error {
	if !clearYes {
		ok, err := confirm(cmd, "Delete the timetable, subjects, and all attendance records? [y/N]: ")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("clear cancelled")
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if err := st.ClearAll(context.Background()); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# attendflow configuration
# Uncomment a value to enable it. CLI flags override config values.

[attendance]
# target = %.0f           # Target attendance percentage
# denylist = %q
                          # Instructor surname denylist (one per line)

[remind]
# lead-minutes = %d       # Minutes before class to remind
`,
		defaultTarget,
		config.DefaultDenylistPath(),
		defaultLeadMinutes,
	)
}

// resolveDate parses a date flag (default today) into the stored date
// string and its weekday name.
func resolveDate(value string) (date, day string, err error) {
	when := time.Now()
	if value != "" {
		parsed, perr := time.ParseInLocation(model.DateFormat, value, time.Local)
		if perr != nil {
			return "", "", fmt.Errorf("invalid --date value: %w", perr)
		}
		when = parsed
	}
	return model.DateOf(when), when.Weekday().String(), nil
}

func parseStatus(value string) (model.AttendanceStatus, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "present", "p":
		return model.StatusPresent, nil
	case "absent", "a":
		return model.StatusAbsent, nil
	default:
		return "", fmt.Errorf("--status must be present or absent")
	}
}

// shortID abbreviates an entry id for display. Ids are UUIDs today,
// but stored ids are not validated on read, so short ones pass through
// whole.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// orderedEntries sorts entries by weekday then time for display.
func orderedEntries(entries []model.ScheduleEntry) []model.ScheduleEntry {
	var out []model.ScheduleEntry
	for _, day := range timetable.Weekdays {
		out = append(out, timetable.ForDay(entries, day)...)
	}
	return out
}

func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	if _, err := fmt.Fprint(cmd.OutOrStdout(), prompt); err != nil {
		return false, err
	}
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
