package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"

	"github.com/arcanaland/tango/internal/anim"
	"github.com/arcanaland/tango/internal/source"
)

// Config represents the application configuration
type Config struct {
	DefaultDeck    string       `toml:"default_deck"`
	DefaultGenre   string       `toml:"default_genre"`
	Reversed       bool         `toml:"reversed"`
	SwipeThreshold int          `toml:"swipe_threshold"`
	LogLevel       string       `toml:"log_level"`
	Timing         TimingConfig `toml:"timing"`
}

// TimingConfig holds animation delays in milliseconds
type TimingConfig struct {
	SlideMS       int `toml:"slide_ms"`
	FadeMS        int `toml:"fade_ms"`
	FadeFlippedMS int `toml:"fade_flipped_ms"`
	RevealMS      int `toml:"reveal_ms"`
	FlipMS        int `toml:"flip_ms"`
}

// Default returns the configuration written on first use
func Default() *Config {
	t := anim.DefaultTiming()
	return &Config{
		DefaultDeck:    "kotoba",
		DefaultGenre:   "all",
		SwipeThreshold: 6,
		LogLevel:       "info",
		Timing: TimingConfig{
			SlideMS:       int(t.Slide / time.Millisecond),
			FadeMS:        int(t.Fade / time.Millisecond),
			FadeFlippedMS: int(t.FadeFlipped / time.Millisecond),
			RevealMS:      int(t.Reveal / time.Millisecond),
			FlipMS:        int(t.Flip / time.Millisecond),
		},
	}
}

// AnimTiming converts the configured delays, keeping defaults for unset or
// negative values
func (c *Config) AnimTiming() anim.Timing {
	t := anim.DefaultTiming()
	set := func(dst *time.Duration, ms int) {
		if ms > 0 {
			*dst = time.Duration(ms) * time.Millisecond
		}
	}
	set(&t.Slide, c.Timing.SlideMS)
	set(&t.Fade, c.Timing.FadeMS)
	set(&t.FadeFlipped, c.Timing.FadeFlippedMS)
	set(&t.Reveal, c.Timing.RevealMS)
	set(&t.Flip, c.Timing.FlipMS)
	return t
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// GetXDGStateHome returns XDG_STATE_HOME or default path
func GetXDGStateHome() string {
	return xdgDir("XDG_STATE_HOME", ".local", "state")
}

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	homeDir, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{homeDir}, fallback...)...)
}

// GetDeckLibraryPath returns the path to the deck library
func GetDeckLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "tango", "decks")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "tango", "config.toml")
}

// GetCacheDir returns the directory for cached deck downloads
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), "tango")
}

// GetLogFilePath returns the log file used while the interactive viewer
// owns the terminal
func GetLogFilePath() string {
	return filepath.Join(GetXDGStateHome(), "tango", "tango.log")
}

// LoadConfig loads the config file
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := writeConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func writeConfig(config *Config) error {
	configPath := GetConfigFilePath()

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// GetDeckPath resolves a deck name to a location: a URL is returned as is,
// then the deck library is searched (directories, .zip and .7z archives),
// then the name is treated as a path
func GetDeckPath(deckName string) (string, error) {
	if source.IsURL(deckName) {
		return deckName, nil
	}

	libraryPath := GetDeckLibraryPath()
	for _, candidate := range []string{deckName, deckName + ".zip", deckName + ".7z"} {
		deckPath := filepath.Join(libraryPath, candidate)
		if _, err := os.Stat(deckPath); err == nil {
			return deckPath, nil
		}
	}

	// If not found in the library, treat as a path
	expanded, err := homedir.Expand(deckName)
	if err != nil {
		return "", fmt.Errorf("deck not found: %s", deckName)
	}
	if _, err := os.Stat(expanded); err == nil {
		return expanded, nil
	}

	return "", fmt.Errorf("deck not found: %s", deckName)
}

// GetDefaultDeck returns the default deck name from config
func GetDefaultDeck() (string, error) {
	config, err := LoadConfig()
	if err != nil {
		return "", err
	}

	return config.DefaultDeck, nil
}

// SetDefaultDeck sets the default deck in the config
func SetDefaultDeck(deckName string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	config.DefaultDeck = deckName
	return writeConfig(config)
}
