package timetable

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDenylist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "instructors.txt")
	content := "# known instructors\nKulkarni\n\nSharma\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write denylist: %v", err)
	}

	dl, err := LoadDenylist(path)
	if err != nil {
		t.Fatalf("load denylist: %v", err)
	}
	if got := dl.Strip("Databases SHARMA"); got != "Databases  " {
		t.Fatalf("unexpected strip result: %q", got)
	}
	if got := dl.Strip("Kulkarnism"); got != "Kulkarnism" {
		t.Fatalf("partial word was stripped: %q", got)
	}
}

func TestLoadDenylistMissingFile(t *testing.T) {
	dl, err := LoadDenylist(filepath.Join(t.TempDir(), "absent.txt"))
	if err != nil {
		t.Fatalf("missing denylist should not error: %v", err)
	}
	if got := dl.Strip("unchanged"); got != "unchanged" {
		t.Fatalf("empty denylist changed text: %q", got)
	}
}
