package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withFlags(t *testing.T, cfgPath, preset string) {
	t.Helper()
	oldCfg, oldPreset := flagConfig, flagPreset
	flagConfig, flagPreset = cfgPath, preset
	t.Cleanup(func() { flagConfig, flagPreset = oldCfg, oldPreset })
}

func TestLoadConfigAppliesPresetOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.toml")
	data := []byte("[flow]\nscore_target = 4\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	withFlags(t, path, "")
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Flow.ScoreTarget != 4 {
		t.Errorf("score target = %d, want 4 from the file", cfg.Flow.ScoreTarget)
	}

	withFlags(t, path, "sudden")
	cfg, err = loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Flow.ScoreTarget != 1 {
		t.Errorf("score target = %d, want 1 from the preset", cfg.Flow.ScoreTarget)
	}
}

func TestLoadConfigRejectsUnknownPreset(t *testing.T) {
	withFlags(t, filepath.Join(t.TempDir(), "missing.yaml"), "")
	if _, err := loadConfig(); err == nil {
		t.Error("missing config file should fail")
	}

	withFlags(t, "", "marathon")
	_, err := loadConfig()
	if err == nil || !strings.Contains(err.Error(), "marathon") {
		t.Errorf("err = %v, want unknown preset", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/tmp/x", "/tmp/x"},
		{"rel/x", "rel/x"},
		{"~/.striker/replays", filepath.Join(home, ".striker", "replays")},
	}
	for _, tc := range tests {
		if got := expandHome(tc.in); got != tc.want {
			t.Errorf("expandHome(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
