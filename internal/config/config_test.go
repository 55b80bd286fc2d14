package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setupXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	return root
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	root := setupXDG(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DefaultDeck != "kotoba" || cfg.SwipeThreshold != 6 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	want := filepath.Join(root, "config", "tango", "config.toml")
	if GetConfigFilePath() != want {
		t.Fatalf("GetConfigFilePath = %s, want %s", GetConfigFilePath(), want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected config file to be written: %v", err)
	}
}

func TestSetDefaultDeckPersists(t *testing.T) {
	setupXDG(t)

	if err := SetDefaultDeck("jlpt-n5"); err != nil {
		t.Fatalf("SetDefaultDeck failed: %v", err)
	}
	name, err := GetDefaultDeck()
	if err != nil {
		t.Fatalf("GetDefaultDeck failed: %v", err)
	}
	if name != "jlpt-n5" {
		t.Fatalf("GetDefaultDeck = %q", name)
	}
}

func TestPartialTimingKeepsDefaults(t *testing.T) {
	setupXDG(t)

	path := GetConfigFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	body := "default_deck = \"mine\"\n\n[timing]\nslide_ms = 120\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	timing := cfg.AnimTiming()
	if timing.Slide != 120*time.Millisecond {
		t.Errorf("Slide = %v", timing.Slide)
	}
	if timing.Fade != 150*time.Millisecond || timing.Reveal != 10*time.Millisecond {
		t.Errorf("unset timings must keep defaults: %+v", timing)
	}
	if cfg.SwipeThreshold != 6 {
		t.Errorf("unset keys must keep defaults, got swipe_threshold %d", cfg.SwipeThreshold)
	}
}

func TestGetDeckPathSearchesLibrary(t *testing.T) {
	setupXDG(t)

	lib := GetDeckLibraryPath()
	if err := os.MkdirAll(lib, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	archive := filepath.Join(lib, "kotoba.zip")
	if err := os.WriteFile(archive, []byte("PK"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := GetDeckPath("kotoba")
	if err != nil {
		t.Fatalf("GetDeckPath failed: %v", err)
	}
	if got != archive {
		t.Fatalf("GetDeckPath = %s, want %s", got, archive)
	}

	if got, _ := GetDeckPath("https://example.com/deck"); got != "https://example.com/deck" {
		t.Fatalf("URLs must pass through, got %s", got)
	}
	if _, err := GetDeckPath("missing"); err == nil {
		t.Fatalf("expected error for missing deck")
	}
}
