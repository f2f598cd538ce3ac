// Package attendance implements marking and subject derivation.
package attendance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MohammedFawazAli/my-attend-flow/internal/model"
)

// ErrSubjectNotFound means a schedule entry's subject has no matching
// subject record; the mark is aborted with no partial write.
var ErrSubjectNotFound = errors.New("subject not found")

// Mark applies one decision for (entry, date). An existing record for
// the pair has its status updated in place; otherwise a new record is
// appended. At most one record ever exists per pair, so a slot can
// move between present and absent but never back to unmarked.
func Mark(records []model.AttendanceRecord, subjects []model.Subject, entry model.ScheduleEntry, date string, status model.AttendanceStatus) ([]model.AttendanceRecord, error) {
	subject, ok := SubjectByName(subjects, entry.Subject)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSubjectNotFound, entry.Subject)
	}
	for i, record := range records {
		if record.ScheduleEntryID == entry.ID && record.Date == date {
			records[i].Status = status
			return records, nil
		}
	}
	return append(records, model.AttendanceRecord{
		ID:              uuid.NewString(),
		SubjectID:       subject.ID,
		Date:            date,
		Status:          status,
		ScheduleEntryID: entry.ID,
	}), nil
}

// StatusFor looks up the recorded status for (entryID, date).
func StatusFor(records []model.AttendanceRecord, entryID, date string) (model.AttendanceStatus, bool) {
	for _, record := range records {
		if record.ScheduleEntryID == entryID && record.Date == date {
			return record.Status, true
		}
	}
	return "", false
}

// SubjectByName resolves a subject record by name.
func SubjectByName(subjects []model.Subject, name string) (model.Subject, bool) {
	for _, subject := range subjects {
		if strings.EqualFold(subject.Name, name) {
			return subject, true
		}
	}
	return model.Subject{}, false
}

// colorCount is the size of the display color palette cycled through
// when assigning new subjects.
const colorCount = 8

// DeriveSubjects builds one subject per distinct entry subject name,
// in first-appearance order. Subjects whose names survive a re-import
// keep their ids so attendance history stays attached to them.
func DeriveSubjects(entries []model.ScheduleEntry, previous []model.Subject) []model.Subject {
	byName := map[string]model.Subject{}
	for _, subject := range previous {
		byName[strings.ToLower(subject.Name)] = subject
	}

	// New subjects start past the surviving indexes so a re-import does
	// not hand out colors the survivors already hold.
	names := map[string]struct{}{}
	for _, entry := range entries {
		names[strings.ToLower(entry.Subject)] = struct{}{}
	}
	next := 0
	for _, subject := range previous {
		if _, ok := names[strings.ToLower(subject.Name)]; ok && subject.ColorIndex >= next {
			next = subject.ColorIndex + 1
		}
	}

	var subjects []model.Subject
	seen := map[string]struct{}{}
	for _, entry := range entries {
		key := strings.ToLower(entry.Subject)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if subject, ok := byName[key]; ok {
			subjects = append(subjects, subject)
			continue
		}
		subjects = append(subjects, model.Subject{
			ID:         uuid.NewString(),
			Name:       entry.Subject,
			ColorIndex: next % colorCount,
		})
		next++
	}
	return subjects
}
