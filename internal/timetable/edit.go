package timetable

import (
	"errors"
	"fmt"

	"github.com/MohammedFawazAli/my-attend-flow/internal/model"
)

// ErrEntryNotFound means an edit or delete referenced an unknown
// schedule entry id.
var ErrEntryNotFound = errors.New("schedule entry not found")

// FindEntry returns the entry with the given id, or id prefix when
// the prefix is unambiguous.
func FindEntry(entries []model.ScheduleEntry, id string) (model.ScheduleEntry, error) {
	var match model.ScheduleEntry
	matches := 0
	for _, entry := range entries {
		if entry.ID == id {
			return entry, nil
		}
		if len(id) >= 4 && len(id) < len(entry.ID) && entry.ID[:len(id)] == id {
			match = entry
			matches++
		}
	}
	switch matches {
	case 1:
		return match, nil
	case 0:
		return model.ScheduleEntry{}, fmt.Errorf("%w: %q", ErrEntryNotFound, id)
	default:
		return model.ScheduleEntry{}, fmt.Errorf("ambiguous entry id prefix %q", id)
	}
}

// ReplaceEntry replaces the whole record matching updated.ID.
func ReplaceEntry(entries []model.ScheduleEntry, updated model.ScheduleEntry) ([]model.ScheduleEntry, error) {
	for i, entry := range entries {
		if entry.ID == updated.ID {
			entries[i] = updated
			return entries, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrEntryNotFound, updated.ID)
}

// RemoveEntry deletes the entry with the given id.
func RemoveEntry(entries []model.ScheduleEntry, id string) ([]model.ScheduleEntry, error) {
	for i, entry := range entries {
		if entry.ID == id {
			return append(entries[:i], entries[i+1:]...), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrEntryNotFound, id)
}
