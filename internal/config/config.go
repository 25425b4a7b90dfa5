// Package config loads parley's configuration.
//
// Configuration is read from ~/.config/parley/config.toml when present,
// falling back to built-in defaults. A few settings can be overridden via
// environment variables (PARLEY_SERVER_URL, PARLEY_LOG_PATH).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the complete parley configuration.
type Config struct {
	// ServerURL is the base URL of the assistant backend.
	ServerURL string `toml:"server_url"`

	// Voice is the synthesis voice passed to /speak.
	Voice string `toml:"voice"`

	// Language is the default target language code for speech and translation.
	Language string `toml:"language"`

	// LogPath is the log file location (empty = <config dir>/parley.log).
	LogPath string `toml:"log_path"`

	Recorder RecorderConfig `toml:"recorder"`
}

// RecorderConfig describes how the microphone is captured.
type RecorderConfig struct {
	// Command is the capture binary, e.g. "ffmpeg". If it is not on PATH the
	// client falls back to server-side recording.
	Command string `toml:"command"`
	// Device is the input device passed to the capture command
	// (e.g. "default" for ALSA, ":0" for avfoundation).
	Device     string `toml:"device"`
	SampleRate int    `toml:"sample_rate"`
	Channels   int    `toml:"channels"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		ServerURL: "http://localhost:5000",
		Voice:     "default",
		Language:  "en",
		Recorder: RecorderConfig{
			Command:    "ffmpeg",
			Device:     "default",
			SampleRate: 16000,
			Channels:   1,
		},
	}
}

// Dir returns parley's config directory, creating it if needed.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, "parley")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// Load reads the config file and applies environment overrides.
func Load() (Config, error) {
	cfg := Default()

	dir, err := Dir()
	if err != nil {
		return cfg, err
	}

	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(dir, "parley.log")
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PARLEY_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("PARLEY_LOG_PATH"); v != "" {
		cfg.LogPath = v
	}
}

func (c Config) validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url must not be empty")
	}
	if c.Recorder.SampleRate <= 0 {
		return fmt.Errorf("recorder.sample_rate must be positive, got %d", c.Recorder.SampleRate)
	}
	if c.Recorder.Channels <= 0 {
		return fmt.Errorf("recorder.channels must be positive, got %d", c.Recorder.Channels)
	}
	return nil
}
