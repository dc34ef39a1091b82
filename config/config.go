package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/fibjournal/fib"
	"github.com/rustyeddy/fibjournal/journal"
	"gopkg.in/yaml.v3"
)

// Config is the complete fibjournal configuration.
type Config struct {
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Display DisplayConfig `json:"display" yaml:"display"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// JournalConfig selects and locates the entry store.
type JournalConfig struct {
	Store      string `json:"store" yaml:"store"` // "file", "sqlite" or "memory"
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
	Key        string `json:"key" yaml:"key"`
	MaxEntries int    `json:"max_entries" yaml:"max_entries"`
}

type DisplayConfig struct {
	Color        bool   `json:"color" yaml:"color"`
	DefaultTrend string `json:"default_trend" yaml:"default_trend"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file,omitempty" yaml:"file,omitempty"`
	JSON  bool   `json:"json" yaml:"json"`
}

// LoadFromFile loads configuration from a file, YAML first then JSON.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes indented JSON for .json paths and YAML otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(c, "", "  ")
	default:
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Journal.Store {
	case "file", "sqlite":
		if c.Journal.Path == "" {
			return fmt.Errorf("journal.path is required for %s store", c.Journal.Store)
		}
	case "memory":
	default:
		return fmt.Errorf("journal.store must be 'file', 'sqlite' or 'memory'")
	}
	if c.Journal.Key == "" {
		return fmt.Errorf("journal.key is required")
	}
	if c.Journal.MaxEntries <= 0 {
		return fmt.Errorf("journal.max_entries must be positive")
	}
	if _, err := fib.ParseTrend(c.Display.DefaultTrend); err != nil {
		return fmt.Errorf("display.default_trend: %w", err)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// Trend returns the parsed default trend.
func (c *Config) Trend() fib.Trend {
	t, _ := fib.ParseTrend(c.Display.DefaultTrend)
	return t
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			Store:      "file",
			Path:       defaultDataDir(),
			Key:        journal.DefaultKey,
			MaxEntries: journal.DefaultMaxEntries,
		},
		Display: DisplayConfig{
			Color:        true,
			DefaultTrend: "uptrend",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "fibjournal")
	}
	return ".fibjournal"
}

// ApplyEnv loads envFile (when it exists) into the process environment
// and then overlays FIBJOURNAL_* variables onto c.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
		}
	}

	if v := os.Getenv("FIBJOURNAL_STORE"); v != "" {
		c.Journal.Store = v
	}
	if v := os.Getenv("FIBJOURNAL_PATH"); v != "" {
		c.Journal.Path = v
	}
	if v := os.Getenv("FIBJOURNAL_KEY"); v != "" {
		c.Journal.Key = v
	}
	if v := os.Getenv("FIBJOURNAL_MAX_ENTRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FIBJOURNAL_MAX_ENTRIES: %w", err)
		}
		c.Journal.MaxEntries = n
	}
	if v := os.Getenv("FIBJOURNAL_TREND"); v != "" {
		c.Display.DefaultTrend = v
	}
	if v := os.Getenv("FIBJOURNAL_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("FIBJOURNAL_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.Display.Color = false
	}
	return nil
}
