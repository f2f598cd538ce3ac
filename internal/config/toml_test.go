package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[attendance]
target = 80
denylist = "/tmp/instructors.txt"

[remind]
lead-minutes = 15
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Attendance.Target == nil || *cfg.Attendance.Target != 80 {
		t.Fatalf("unexpected target: %v", cfg.Attendance.Target)
	}
	if cfg.Attendance.Denylist == nil || *cfg.Attendance.Denylist != "/tmp/instructors.txt" {
		t.Fatalf("unexpected denylist: %v", cfg.Attendance.Denylist)
	}
	if cfg.Remind.LeadMinutes == nil || *cfg.Remind.LeadMinutes != 15 {
		t.Fatalf("unexpected lead minutes: %v", cfg.Remind.LeadMinutes)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[attendance]\ntarget = 70\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Attendance.Target == nil || *cfg.Attendance.Target != 70 {
		t.Fatalf("unexpected target: %v", cfg.Attendance.Target)
	}
	if cfg.Attendance.Denylist != nil || cfg.Remind.LeadMinutes != nil {
		t.Fatalf("unset fields should stay nil: %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if cfg.Attendance.Target != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[attendance\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("malformed config should error")
	}
}
