package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MohammedFawazAli/my-attend-flow/internal/model"
	"github.com/MohammedFawazAli/my-attend-flow/internal/timetable"
)

// maxTimerDelay caps a single reminder wait. Waits beyond the cap are
// re-armed in chunks; the weekly schedule never needs more than this.
const maxTimerDelay = 8 * 24 * time.Hour

// Scheduler fires class reminders computed from the timetable.
// Best-effort and in-process: timers live only while Run is active,
// nothing is replayed after a restart beyond the store's
// reminders-requested flag.
type Scheduler struct {
	notifier Notifier
	lead     time.Duration

	// OnAction receives the action invoked from a reminder, if any.
	OnAction func(entry model.ScheduleEntry, action Action)

	// now is swapped in tests.
	now func() time.Time
}

// NewScheduler builds a scheduler firing lead before each class.
func NewScheduler(notifier Notifier, lead time.Duration) *Scheduler {
	return &Scheduler{notifier: notifier, lead: lead, now: time.Now}
}

// Next returns the next reminder instant after now and the entries it
// covers. ok is false when the timetable holds no schedulable entries.
func (s *Scheduler) Next(entries []model.ScheduleEntry, now time.Time) (time.Time, []model.ScheduleEntry, bool) {
	var best time.Time
	var due []model.ScheduleEntry
	for _, entry := range entries {
		fireAt, ok := s.fireTime(entry, now)
		if !ok {
			continue
		}
		switch {
		case due == nil || fireAt.Before(best):
			best = fireAt
			due = []model.ScheduleEntry{entry}
		case fireAt.Equal(best):
			due = append(due, entry)
		}
	}
	return best, due, due != nil
}

// fireTime computes the next occurrence of entry's slot after now,
// minus the lead time.
func (s *Scheduler) fireTime(entry model.ScheduleEntry, now time.Time) (time.Time, bool) {
	dayIdx := timetable.DayIndex(entry.Day)
	if dayIdx < 0 {
		return time.Time{}, false
	}
	hour, minute, ok := parseClock(entry.Time)
	if !ok {
		return time.Time{}, false
	}
	weekday := time.Weekday((dayIdx + 1) % 7) // Weekdays[0] is Monday

	classAt := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	daysAhead := (int(weekday) - int(now.Weekday()) + 7) % 7
	classAt = classAt.AddDate(0, 0, daysAhead)
	fireAt := classAt.Add(-s.lead)
	if !fireAt.After(now) {
		fireAt = fireAt.AddDate(0, 0, 7)
	}
	return fireAt, true
}

// Run loops over upcoming reminders until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, entries []model.ScheduleEntry) error {
	now := s.now()
	for {
		fireAt, due, ok := s.Next(entries, now)
		if !ok {
			return fmt.Errorf("timetable has no schedulable entries")
		}

		wait := fireAt.Sub(s.now())
		for wait > 0 {
			chunk := wait
			if chunk > maxTimerDelay {
				chunk = maxTimerDelay
			}
			timer := time.NewTimer(chunk)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
			wait = fireAt.Sub(s.now())
		}

		for _, entry := range due {
			s.remind(ctx, entry)
		}
		now = fireAt.Add(time.Second)
	}
}

func (s *Scheduler) remind(ctx context.Context, entry model.ScheduleEntry) {
	action, err := s.notifier.Notify(ctx, Reminder(entry))
	if err != nil {
		return
	}
	if action != "" && s.OnAction != nil {
		s.OnAction(entry, action)
	}
}

// Reminder builds the notification payload for one class slot.
func Reminder(entry model.ScheduleEntry) Notification {
	body := fmt.Sprintf("%s at %s", entry.Subject, entry.Time)
	if entry.Room != "" {
		body += " in " + entry.Room
	}
	return Notification{
		Title:   "Upcoming class",
		Body:    body,
		Actions: []Action{ActionMarkPresent, ActionMarkAbsent, ActionViewSchedule},
	}
}

func parseClock(value string) (hour, minute int, ok bool) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
