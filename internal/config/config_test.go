package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:5000", cfg.ServerURL)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, "ffmpeg", cfg.Recorder.Command)
	assert.Equal(t, 16000, cfg.Recorder.SampleRate)
	assert.Equal(t, 1, cfg.Recorder.Channels)
	assert.NoError(t, cfg.validate())
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PARLEY_SERVER_URL", "")
	t.Setenv("PARLEY_LOG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.ServerURL)
	assert.NotEmpty(t, cfg.LogPath)
}

func TestLoadReadsConfigFile(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	t.Setenv("PARLEY_SERVER_URL", "")
	t.Setenv("PARLEY_LOG_PATH", "")

	dir := filepath.Join(base, "parley")
	require.NoError(t, os.MkdirAll(dir, 0o700))

	content := `
server_url = "http://assistant.local:8080"
language = "es"

[recorder]
command = "avconv"
sample_rate = 44100
channels = 2
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://assistant.local:8080", cfg.ServerURL)
	assert.Equal(t, "es", cfg.Language)
	assert.Equal(t, "avconv", cfg.Recorder.Command)
	assert.Equal(t, 44100, cfg.Recorder.SampleRate)
	assert.Equal(t, 2, cfg.Recorder.Channels)
	// Unset fields keep their defaults.
	assert.Equal(t, "default", cfg.Voice)
}

func TestEnvOverridesFile(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir := filepath.Join(base, "parley")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.toml"),
		[]byte(`server_url = "http://from-file:1234"`),
		0o600,
	))

	t.Setenv("PARLEY_SERVER_URL", "http://from-env:5678")
	t.Setenv("PARLEY_LOG_PATH", filepath.Join(base, "custom.log"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:5678", cfg.ServerURL)
	assert.Equal(t, filepath.Join(base, "custom.log"), cfg.LogPath)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.ServerURL = ""
	assert.Error(t, cfg.validate())

	cfg = Default()
	cfg.Recorder.SampleRate = 0
	assert.Error(t, cfg.validate())

	cfg = Default()
	cfg.Recorder.Channels = -1
	assert.Error(t, cfg.validate())
}
