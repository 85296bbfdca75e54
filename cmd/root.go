// Package cmd implements the keypulse CLI command tree.
// This file defines the root command and registers all global persistent
// flags.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/keypulse/pkg/config"
)

var (
	version = "0.2.0"
	commit  = "dev"
)

// globalFlags holds the parsed values of all persistent (global) flags.
var globalFlags struct {
	ConfigPath string
	APIKey     string
	Verbose    bool
}

// rootCmd is the base command. Running `keypulse` with no subcommand
// launches the dashboard.
var rootCmd = &cobra.Command{
	Use:   "keypulse",
	Short: "keypulse — typing telemetry dashboard",
	Long: `keypulse is a terminal dashboard for typing statistics.

With an API key it reads your account stats from the hosted API; without
one it falls back to the desktop client's local HTTP API. Live keystroke
rates stream in over the client's plugin socket when available.

Quick start:
  keypulse                       # launch the dashboard
  keypulse user                  # print account totals
  keypulse calorimetry 50000000  # energy burned by 50M keystrokes`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Execute is the entry point called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&globalFlags.ConfigPath, "config", "", "path to config file")
	pf.StringVar(&globalFlags.APIKey, "api-key", "", "stats API key (overrides config and env)")
	pf.BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "debug logging")
}

// loadConfig resolves the effective configuration for a command run.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if globalFlags.ConfigPath != "" {
		cfg, err = config.LoadFromFile(globalFlags.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if globalFlags.APIKey != "" {
		cfg.API.Key = globalFlags.APIKey
	}
	if globalFlags.Verbose {
		cfg.General.LogLevel = "debug"
	}
	return cfg, nil
}

// setupLogger routes slog to the configured log file. The TUI owns the
// terminal, so logs never go to stderr while it runs; one-shot commands
// pass os.Stderr instead.
func setupLogger(cfg *config.Config, fallback io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.General.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	w := fallback
	if cfg.General.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.General.LogFile), 0o755); err == nil {
			if f, err := os.OpenFile(cfg.General.LogFile,
				os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				w = f
			}
		}
	}
	if w == nil {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
