// Package model defines shared data structures.
package model

import "time"

// DateFormat is the calendar-date layout used across the app.
const DateFormat = "2006-01-02"

// AttendanceStatus is a user's decision for one class on one date.
type AttendanceStatus string

// Valid attendance statuses.
const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

// Toggle returns the opposite status.
func (s AttendanceStatus) Toggle() AttendanceStatus {
	if s == StatusPresent {
		return StatusAbsent
	}
	return StatusPresent
}

// ScheduleEntry is one weekly-recurring class slot.
type ScheduleEntry struct {
	ID      string `json:"id"`
	Day     string `json:"day"`
	Time    string `json:"time"` // "HH:MM", zero-padded 24-hour
	Subject string `json:"subject"`
	Room    string `json:"room,omitempty"`
}

// Subject is a distinct course derived from schedule entry names.
// Counts and percentages are never stored; they are computed from
// attendance records at query time.
type Subject struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ColorIndex int    `json:"colorIndex"`
}

// AttendanceRecord is one decision for one schedule entry on one date.
// At most one record exists per (Date, ScheduleEntryID) pair.
type AttendanceRecord struct {
	ID              string           `json:"id"`
	SubjectID       string           `json:"subjectId"`
	Date            string           `json:"date"` // "YYYY-MM-DD"
	Status          AttendanceStatus `json:"status"`
	ScheduleEntryID string           `json:"scheduleEntryId"`
}

// DateOf formats a time as a calendar-date string.
func DateOf(t time.Time) string {
	return t.Format(DateFormat)
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	SubjectName string
	BelowTarget bool
	Target      float64
}
