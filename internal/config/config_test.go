package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gurisko/envswitch/internal/registry"
	"github.com/gurisko/envswitch/internal/shell"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the default config dir at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "envswitch", "environments.yaml"), cfg.RegistryPath)
	assert.Equal(t, registry.DefaultHistoryLimit, cfg.HistoryLimit)
	assert.Equal(t, "auto", cfg.Platform)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadFromDefaultLocation(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "envswitch"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "envswitch", "config.yaml"),
		[]byte("history_limit: 7\n"), 0o600))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.HistoryLimit)
	assert.NotEmpty(t, cfg.ConfigFile)
}

func TestLoadPrecedence(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
registry_path: /from/file.yaml
history_limit: 50
platform: windows
log:
  level: info
`)
	t.Setenv("ENVSWITCH_HISTORY_LIMIT", "20")
	t.Setenv("ENVSWITCH_LOG_LEVEL", "debug")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("registry", "", "")
	flags.String("shell", "", "")
	require.NoError(t, flags.Parse([]string{"--shell", "posix"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "/from/file.yaml", cfg.RegistryPath, "unset flag must not override")
	assert.Equal(t, 20, cfg.HistoryLimit, "env beats file")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "posix", cfg.Platform, "flag beats file")
	assert.Equal(t, shell.POSIX, cfg.ShellPlatform())
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "history_limit: [1,\n"},
		{"zero history", "history_limit: 0\n"},
		{"unknown platform", "platform: fish\n"},
		{"bad log format", "log:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Load(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}
