package timetable

import (
	"errors"
	"testing"

	"github.com/MohammedFawazAli/my-attend-flow/internal/model"
)

func editEntries() []model.ScheduleEntry {
	return []model.ScheduleEntry{
		{ID: "aaaa1111-0000", Day: "Monday", Time: "09:00", Subject: "Data Science"},
		{ID: "aaaa2222-0000", Day: "Monday", Time: "10:00", Subject: "Algorithms"},
		{ID: "bbbb1111-0000", Day: "Tuesday", Time: "09:00", Subject: "Databases"},
	}
}

func TestFindEntry(t *testing.T) {
	entries := editEntries()

	entry, err := FindEntry(entries, "bbbb1111-0000")
	if err != nil || entry.Subject != "Databases" {
		t.Fatalf("exact lookup: %+v, %v", entry, err)
	}

	entry, err = FindEntry(entries, "bbbb")
	if err != nil || entry.Subject != "Databases" {
		t.Fatalf("prefix lookup: %+v, %v", entry, err)
	}

	if _, err := FindEntry(entries, "aaaa"); err == nil {
		t.Fatal("ambiguous prefix should fail")
	}

	// Prefixes shorter than four characters never match.
	if _, err := FindEntry(entries, "bbb"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("short prefix: %v", err)
	}

	if _, err := FindEntry(entries, "cccc"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("unknown id: %v", err)
	}
}

func TestReplaceEntry(t *testing.T) {
	entries := editEntries()
	updated := entries[1]
	updated.Room = "3102"
	updated.Time = "11:00"

	entries, err := ReplaceEntry(entries, updated)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if entries[1].Room != "3102" || entries[1].Time != "11:00" {
		t.Fatalf("entry not replaced: %+v", entries[1])
	}

	missing := model.ScheduleEntry{ID: "cccc1111-0000"}
	if _, err := ReplaceEntry(entries, missing); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("replace missing: %v", err)
	}
}

func TestRemoveEntry(t *testing.T) {
	entries := editEntries()
	entries, err := RemoveEntry(entries, "aaaa2222-0000")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.ID == "aaaa2222-0000" {
			t.Fatal("entry still present after removal")
		}
	}

	if _, err := RemoveEntry(entries, "aaaa2222-0000"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("remove missing: %v", err)
	}
}
