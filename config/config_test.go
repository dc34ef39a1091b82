package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rustyeddy/fibjournal/fib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "file", cfg.Journal.Store)
	assert.Equal(t, "tradingJournal", cfg.Journal.Key)
	assert.Equal(t, 20, cfg.Journal.MaxEntries)
	assert.Equal(t, fib.Uptrend, cfg.Trend())
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid config", func(*Config) {}, ""},
		{"memory needs no path", func(c *Config) { c.Journal.Store = "memory"; c.Journal.Path = "" }, ""},
		{"unknown store", func(c *Config) { c.Journal.Store = "redis" }, "journal.store must be"},
		{"file without path", func(c *Config) { c.Journal.Path = "" }, "journal.path is required for file store"},
		{"sqlite without path", func(c *Config) { c.Journal.Store = "sqlite"; c.Journal.Path = "" }, "journal.path is required for sqlite store"},
		{"missing key", func(c *Config) { c.Journal.Key = "" }, "journal.key is required"},
		{"zero max entries", func(c *Config) { c.Journal.MaxEntries = 0 }, "journal.max_entries must be positive"},
		{"bad trend", func(c *Config) { c.Display.DefaultTrend = "sideways" }, "display.default_trend"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
		{"other extension", ".conf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Journal.Store = "sqlite"
			cfg.Journal.Path = filepath.Join(tmpDir, "journal.sqlite")
			cfg.Display.DefaultTrend = "downtrend"
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Journal, loaded.Journal)
			assert.Equal(t, fib.Downtrend, loaded.Trend())
			assert.Equal(t, cfg.Log.Level, loaded.Log.Level)
		})
	}
}

func TestSaveToFileFormatByExtension(t *testing.T) {
	dir := t.TempDir()

	for ext, prefix := range map[string]string{
		".json": "{",
		".JSON": "{",
		".yaml": "journal:",
		".yml":  "journal:",
		".conf": "journal:",
		"":      "journal:",
	} {
		path := filepath.Join(dir, "fibjournal"+ext)
		require.NoError(t, Default().SaveToFile(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), prefix), "%s: %q", ext, data)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("journal:\n  store: memory\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Journal.Store)
	assert.Equal(t, 20, cfg.Journal.MaxEntries)
	assert.Equal(t, "uptrend", cfg.Display.DefaultTrend)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("journal:\n  store: redis\n"), 0o644))
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "invalid config")
}

func TestApplyEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("FIBJOURNAL_KEY=fromdotenv\n"), 0o644))

	t.Setenv("FIBJOURNAL_STORE", "memory")
	t.Setenv("FIBJOURNAL_MAX_ENTRIES", "5")
	t.Setenv("FIBJOURNAL_TREND", "bear")
	t.Setenv("FIBJOURNAL_LOG_LEVEL", "debug")
	t.Setenv("NO_COLOR", "1")
	// godotenv never overrides variables that are already set
	t.Setenv("FIBJOURNAL_KEY", "")
	require.NoError(t, os.Unsetenv("FIBJOURNAL_KEY"))

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envFile))

	assert.Equal(t, "memory", cfg.Journal.Store)
	assert.Equal(t, "fromdotenv", cfg.Journal.Key)
	assert.Equal(t, 5, cfg.Journal.MaxEntries)
	assert.Equal(t, fib.Downtrend, cfg.Trend())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Display.Color)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnvBadNumber(t *testing.T) {
	t.Setenv("FIBJOURNAL_MAX_ENTRIES", "many")

	cfg := Default()
	assert.Error(t, cfg.ApplyEnv(""))
}

func TestApplyEnvMissingFileIgnored(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.ApplyEnv(filepath.Join(t.TempDir(), "nope.env")))
}
