package notify

import (
	"context"
	"testing"
	"time"

	"github.com/MohammedFawazAli/my-attend-flow/internal/model"
)

type fakeNotifier struct {
	sent   []Notification
	action Action
	err    error
}

func (f *fakeNotifier) Notify(_ context.Context, n Notification) (Action, error) {
	f.sent = append(f.sent, n)
	return f.action, f.err
}

// Monday 2026-08-31, 08:00 local time.
var testNow = time.Date(2026, time.August, 31, 8, 0, 0, 0, time.Local)

func TestFireTimeLaterSameDay(t *testing.T) {
	s := NewScheduler(&fakeNotifier{}, 10*time.Minute)
	entry := model.ScheduleEntry{Day: "Monday", Time: "09:00", Subject: "Data Science"}
	fireAt, ok := s.fireTime(entry, testNow)
	if !ok {
		t.Fatal("expected a fire time")
	}
	want := time.Date(2026, time.August, 31, 8, 50, 0, 0, time.Local)
	if !fireAt.Equal(want) {
		t.Fatalf("fireAt = %v, want %v", fireAt, want)
	}
}

func TestFireTimePastSlotRollsToNextWeek(t *testing.T) {
	s := NewScheduler(&fakeNotifier{}, 10*time.Minute)
	entry := model.ScheduleEntry{Day: "Monday", Time: "07:00", Subject: "Algorithms"}
	fireAt, ok := s.fireTime(entry, testNow)
	if !ok {
		t.Fatal("expected a fire time")
	}
	want := time.Date(2026, time.September, 7, 6, 50, 0, 0, time.Local)
	if !fireAt.Equal(want) {
		t.Fatalf("fireAt = %v, want %v", fireAt, want)
	}
}

func TestFireTimeSkipsBadEntries(t *testing.T) {
	s := NewScheduler(&fakeNotifier{}, 0)
	for _, entry := range []model.ScheduleEntry{
		{Day: "Someday", Time: "09:00"},
		{Day: "Monday", Time: "nine"},
		{Day: "Monday", Time: "25:00"},
	} {
		if _, ok := s.fireTime(entry, testNow); ok {
			t.Errorf("entry %+v should not schedule", entry)
		}
	}
}

func TestNextGroupsEqualTimes(t *testing.T) {
	s := NewScheduler(&fakeNotifier{}, 0)
	entries := []model.ScheduleEntry{
		{Day: "Tuesday", Time: "09:00", Subject: "Databases"},
		{Day: "Monday", Time: "10:00", Subject: "Data Science"},
		{Day: "Monday", Time: "10:00", Subject: "Lab"},
	}
	fireAt, due, ok := s.Next(entries, testNow)
	if !ok {
		t.Fatal("expected a next reminder")
	}
	want := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.Local)
	if !fireAt.Equal(want) {
		t.Fatalf("fireAt = %v, want %v", fireAt, want)
	}
	if len(due) != 2 || due[0].Subject != "Data Science" || due[1].Subject != "Lab" {
		t.Fatalf("unexpected due entries: %+v", due)
	}
}

func TestNextEmptyTimetable(t *testing.T) {
	s := NewScheduler(&fakeNotifier{}, 0)
	if _, _, ok := s.Next(nil, testNow); ok {
		t.Fatal("expected no reminder for empty timetable")
	}
}

func TestReminderPayload(t *testing.T) {
	entry := model.ScheduleEntry{Day: "Monday", Time: "09:00", Subject: "Data Science", Room: "3102"}
	n := Reminder(entry)
	if n.Title != "Upcoming class" {
		t.Fatalf("unexpected title: %q", n.Title)
	}
	if n.Body != "Data Science at 09:00 in 3102" {
		t.Fatalf("unexpected body: %q", n.Body)
	}
	if len(n.Actions) != 3 {
		t.Fatalf("unexpected actions: %v", n.Actions)
	}

	n = Reminder(model.ScheduleEntry{Day: "Monday", Time: "09:00", Subject: "Data Science"})
	if n.Body != "Data Science at 09:00" {
		t.Fatalf("unexpected roomless body: %q", n.Body)
	}
}

func TestRemindForwardsAction(t *testing.T) {
	notifier := &fakeNotifier{action: ActionMarkPresent}
	s := NewScheduler(notifier, 0)
	var got Action
	s.OnAction = func(_ model.ScheduleEntry, action Action) {
		got = action
	}
	s.remind(context.Background(), model.ScheduleEntry{Day: "Monday", Time: "09:00", Subject: "Data Science"})
	if len(notifier.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.sent))
	}
	if got != ActionMarkPresent {
		t.Fatalf("action = %q, want %q", got, ActionMarkPresent)
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in           string
		hour, minute int
		ok           bool
	}{
		{"09:00", 9, 0, true},
		{"23:59", 23, 59, true},
		{"0:05", 0, 5, true},
		{"24:00", 0, 0, false},
		{"09:60", 0, 0, false},
		{"0900", 0, 0, false},
		{"nine:00", 0, 0, false},
	}
	for _, tc := range cases {
		hour, minute, ok := parseClock(tc.in)
		if ok != tc.ok || hour != tc.hour || minute != tc.minute {
			t.Errorf("parseClock(%q) = %d, %d, %v", tc.in, hour, minute, ok)
		}
	}
}
