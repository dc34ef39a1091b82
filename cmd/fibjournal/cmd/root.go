package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rustyeddy/fibjournal/config"
	"github.com/rustyeddy/fibjournal/journal"
	"github.com/rustyeddy/fibjournal/logger"
	"github.com/rustyeddy/fibjournal/report"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	envFile  string
	logLevel string
	noColor  bool
)

var rootCmd = &cobra.Command{
	Use:   "fibjournal",
	Short: "Fibonacci retracement and extension levels with a trading journal",
	Long: `Fibjournal computes Fibonacci retracement and extension levels for a
price swing, labels each level with a trading zone, and keeps a small
journal of analyzed swings.

It provides tools for:
  - Calculating levels, zones and recommendations for a high/low range
  - Saving, editing and deleting journal entries
  - Exporting the journal as CSV or Org tables
  - Backing up and restoring the journal as compressed JSON`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with FIBJOURNAL_* overrides")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// app is everything a command needs once flags, config file and
// environment have been merged.
type app struct {
	cfg *config.Config
	log *logger.Log
}

func loadApp() (*app, error) {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(envFile); err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if noColor {
		cfg.Display.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Options{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
		JSON:  cfg.Log.JSON,
		Out:   os.Stderr,
	})
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log}, nil
}

func (rt *app) Close() error {
	return rt.log.Close()
}

func (rt *app) openStore() (journal.Store, error) {
	storeLog := rt.log.WithComponent("store")
	path := rt.cfg.Journal.Path

	switch rt.cfg.Journal.Store {
	case "memory":
		return journal.NewMemoryStore(), nil
	case "sqlite":
		if fi, err := os.Stat(path); err == nil && fi.IsDir() {
			path = filepath.Join(path, "journal.sqlite")
		} else if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create journal dir: %w", err)
			}
		}
		return journal.NewSQLite(path, storeLog)
	default:
		return journal.NewFileStore(path, storeLog)
	}
}

// openJournal opens the configured store. Callers close the returned
// store when done.
func (rt *app) openJournal() (*journal.Journal, journal.Store, error) {
	store, err := rt.openStore()
	if err != nil {
		return nil, nil, fmt.Errorf("open journal: %w", err)
	}
	rt.log.WithFields(logger.Fields{
		"store": rt.cfg.Journal.Store,
		"path":  rt.cfg.Journal.Path,
		"key":   rt.cfg.Journal.Key,
	}).Debug("journal opened")

	j := journal.New(store, journal.Options{
		Key:        rt.cfg.Journal.Key,
		MaxEntries: rt.cfg.Journal.MaxEntries,
		Log:        rt.log.WithComponent("journal"),
	})
	return j, store, nil
}

func (rt *app) printer(cmd *cobra.Command) *report.Printer {
	return report.New(cmd.OutOrStdout(), rt.cfg.Display.Color && !color.NoColor)
}
