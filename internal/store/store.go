// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MohammedFawazAli/my-attend-flow/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Fixed keys for the stored collections. Each value is a JSON document;
// a save replaces the whole collection. There is no transactionality
// across keys: writing the timetable and writing the subjects are two
// independent saves, and callers must tolerate a gap between them.
const (
	keyTimetable  = "timetable"
	keySubjects   = "subjects"
	keyAttendance = "attendance"
	keyReminders  = "reminders-scheduled"
)

// Store wraps SQLite access for the app's key-value collections.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`)
	return err
}

// Timetable returns every stored schedule entry, or an empty list.
func (s *Store) Timetable(ctx context.Context) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	if err := s.getJSON(ctx, keyTimetable, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveTimetable replaces the stored timetable collection.
func (s *Store) SaveTimetable(ctx context.Context, entries []model.ScheduleEntry) error {
	return s.putJSON(ctx, keyTimetable, entries)
}

// Subjects returns every stored subject, or an empty list.
func (s *Store) Subjects(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	if err := s.getJSON(ctx, keySubjects, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// SaveSubjects replaces the stored subject collection.
func (s *Store) SaveSubjects(ctx context.Context, subjects []model.Subject) error {
	return s.putJSON(ctx, keySubjects, subjects)
}

// Attendance returns every stored attendance record, or an empty list.
func (s *Store) Attendance(ctx context.Context) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	if err := s.getJSON(ctx, keyAttendance, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveAttendance replaces the stored attendance collection.
func (s *Store) SaveAttendance(ctx context.Context, records []model.AttendanceRecord) error {
	return s.putJSON(ctx, keyAttendance, records)
}

// RemindersRequested reports whether reminder scheduling was requested.
func (s *Store) RemindersRequested(ctx context.Context) (bool, error) {
	var requested bool
	if err := s.getJSON(ctx, keyReminders, &requested); err != nil {
		return false, err
	}
	return requested, nil
}

// SetRemindersRequested stores the reminder-scheduling flag.
func (s *Store) SetRemindersRequested(ctx context.Context, requested bool) error {
	return s.putJSON(ctx, keyReminders, requested)
}

// ClearAll removes every stored key.
func (s *Store) ClearAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv`)
	return err
}

// getJSON decodes the value under key into out. A missing key leaves
// out at its zero value.
func (s *Store) getJSON(ctx context.Context, key string, out any) error {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) putJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(raw))
	return err
}
