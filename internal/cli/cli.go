// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Root command, global flags and shared plumbing for reelbudget.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jeranaias/reelbudget/internal/config"
	"github.com/jeranaias/reelbudget/internal/export"
	"github.com/jeranaias/reelbudget/internal/session"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

var (
	flagModel      string
	flagOllamaURL  string
	flagOffline    bool
	flagJSON       bool
	flagQuiet      bool
	flagConfigPath string
	flagLedgerFile string
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reelbudget",
		Short: "Film production budgeting with a local AI assistant",
		Long: `reelbudget keeps a film production budget and answers budgeting
questions through a local Ollama model, falling back to built-in advice
when the model is unavailable.

Running reelbudget with no command starts the terminal UI.`,
		Example: `  reelbudget                          Start the terminal UI
  reelbudget ask "create a feature film budget"
  reelbudget chat --offline           Chat using built-in replies only
  reelbudget serve --watch budget.csv Serve the JSON API and hot-reload a ledger
  reelbudget report --file budget.csv --format markdown`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flagModel, "model", "m", "", "Ollama model (overrides config)")
	pf.StringVar(&flagOllamaURL, "ollama-url", "", "Ollama base URL (overrides config)")
	pf.BoolVar(&flagOffline, "offline", false, "Never call the model; use built-in replies")
	pf.BoolVar(&flagJSON, "json", false, "Output in JSON format")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Minimal output and no log file")
	pf.StringVar(&flagConfigPath, "config", "", "Config file (default ~/.reelbudget/config.toml)")
	pf.StringVarP(&flagLedgerFile, "file", "f", "", "Ledger file (CSV or JSON) to load at startup")

	cmd.AddCommand(
		newAskCmd(),
		newChatCmd(),
		newServeCmd(),
		newStatusCmd(),
		newModelsCmd(),
		newTemplatesCmd(),
		newBudgetCmd(),
		newReportCmd(),
		newScheduleCmd(),
		newConfigCmd(),
		newDoctorCmd(),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	config.LoadDotEnv()
	if err := rootCmd.Execute(); err != nil {
		DisplayError(err, flagJSON)
		return ExitGeneralError
	}
	return ExitSuccess
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// configPath resolves --config or the default location.
func configPath() (string, error) {
	if flagConfigPath != "" {
		return flagConfigPath, nil
	}
	return config.ConfigPath()
}

// loadConfig loads the config file and applies flag overrides, which take
// precedence over environment and file values.
func loadConfig() (*config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	config.SetGlobal(cfg)
	return cfg, nil
}

func applyFlagOverrides(cfg *config.Config) {
	if flagModel != "" {
		cfg.Local.OllamaModel = flagModel
	}
	if flagOllamaURL != "" {
		cfg.Local.OllamaURL = flagOllamaURL
	}
	if flagOffline {
		cfg.Local.OfflineMode = true
	}
}

// setupLogging routes the standard logger. Interactive commands write to the
// log file so output is not interleaved with the terminal; --quiet discards.
// It returns a cleanup func.
func setupLogging(cfg *config.Config, toStderr bool) func() {
	log.SetFlags(log.LstdFlags)
	switch {
	case flagQuiet:
		log.SetOutput(io.Discard)
		return func() {}
	case toStderr:
		log.SetOutput(os.Stderr)
		return func() {}
	}

	path, err := cfg.LogPath()
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { _ = f.Close() }
}

// openOptions tunes openSession for a command.
type openOptions struct {
	// logToStderr sends the log to stderr instead of the log file
	logToStderr bool
	// allowMissingLedger starts empty when --file does not exist yet
	allowMissingLedger bool
}

// openSession loads config, sets up logging and builds a session seeded from
// --file when given. The returned cleanup must be called on exit.
func openSession(opts openOptions) (*session.Session, *config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := setupLogging(cfg, opts.logToStderr)

	sess, err := session.FromConfig(cfg)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	if flagLedgerFile != "" {
		if err := loadLedger(sess, flagLedgerFile, opts.allowMissingLedger); err != nil {
			cleanup()
			return nil, nil, nil, err
		}
	}
	return sess, cfg, cleanup, nil
}

// loadLedger replaces the session ledger with the contents of path. When
// allowMissing is set, a missing file leaves the ledger empty.
func loadLedger(sess *session.Session, path string, allowMissing bool) error {
	items, err := export.ReadFile(path)
	if err != nil {
		if allowMissing && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load ledger %s: %w", path, err)
	}
	sess.Ledger().ReplaceAll(items)
	log.Printf("LEDGER_LOAD | path=%s items=%d", path, len(items))
	return nil
}
