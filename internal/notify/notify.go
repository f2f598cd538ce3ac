// Package notify provides class reminders through an explicit
// notification surface, passed to callers as a value rather than held
// as process-wide state so the scheduling logic stays testable.
package notify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Action identifies a response invoked from a notification.
type Action string

// Notification actions. Mark actions route back into attendance
// marking for the referenced entry and the current date.
const (
	ActionMarkPresent  Action = "mark-present"
	ActionMarkAbsent   Action = "mark-absent"
	ActionViewSchedule Action = "view-schedule"
)

// ErrUnavailable means no notification surface exists on this system.
// Non-fatal: reminders are silently unavailable.
var ErrUnavailable = errors.New("no notification surface available")

// Notification is one reminder payload.
type Notification struct {
	Title   string
	Body    string
	Actions []Action
}

// Notifier shows notifications. Notify blocks until the notification
// is dismissed and returns the invoked action, or "" when none.
type Notifier interface {
	Notify(ctx context.Context, n Notification) (Action, error)
}

// DesktopNotifier shells out to notify-send.
type DesktopNotifier struct {
	binary string
}

// NewDesktop locates notify-send. Returns ErrUnavailable when the
// binary is missing.
func NewDesktop() (*DesktopNotifier, error) {
	path, err := exec.LookPath("notify-send")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &DesktopNotifier{binary: path}, nil
}

// Notify shows a desktop notification. Action buttons are attached
// when the installed notify-send supports them; otherwise the
// notification is shown without actions and "" is returned.
func (d *DesktopNotifier) Notify(ctx context.Context, n Notification) (Action, error) {
	args := []string{"--app-name=attendflow"}
	for _, action := range n.Actions {
		args = append(args, "-A", fmt.Sprintf("%s=%s", action, actionLabel(action)))
	}
	args = append(args, n.Title, n.Body)

	out, err := exec.CommandContext(ctx, d.binary, args...).Output()
	if err != nil && len(n.Actions) > 0 {
		// Older notify-send rejects -A; retry without actions.
		plain := exec.CommandContext(ctx, d.binary, "--app-name=attendflow", n.Title, n.Body)
		if perr := plain.Run(); perr != nil {
			return "", fmt.Errorf("failed to send notification: %w", perr)
		}
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to send notification: %w", err)
	}

	chosen := Action(strings.TrimSpace(string(out)))
	for _, action := range n.Actions {
		if chosen == action {
			return action, nil
		}
	}
	return "", nil
}

func actionLabel(action Action) string {
	switch action {
	case ActionMarkPresent:
		return "Present"
	case ActionMarkAbsent:
		return "Absent"
	case ActionViewSchedule:
		return "Schedule"
	default:
		return string(action)
	}
}
