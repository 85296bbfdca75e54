package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/keypulse/pkg/app"
	"gitlab.com/tinyland/lab/keypulse/pkg/cache"
	"gitlab.com/tinyland/lab/keypulse/pkg/localdb"
	_ "gitlab.com/tinyland/lab/keypulse/pkg/pages"
	"gitlab.com/tinyland/lab/keypulse/pkg/realtime"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI() error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("stdout is not a terminal; use the subcommands for scripted output")
	}

	c, err := buildClients(nil)
	if err != nil {
		return err
	}
	log := c.log
	if termenv.ColorProfile() == termenv.Ascii {
		log.Warn("terminal reports no color support")
	}

	opts := app.Options{
		Config: c.cfg,
		Log:    log,
		Web:    c.web,
		Local:  c.local,
	}

	if dir := c.cfg.General.CacheDir; dir != "" {
		store, err := cache.Open(filepath.Join(dir, "payloads.db"), 0)
		if err != nil {
			log.Warn("cache unavailable", "error", err)
		} else {
			defer store.Close()
			opts.Store = store
		}
	}

	if path := c.cfg.Local.InputDB; path != "" {
		db, err := localdb.Open(path)
		if err != nil {
			log.Warn("input db unavailable", "path", path, "error", err)
		} else {
			defer db.Close()
			opts.InputDB = db
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if c.cfg.Realtime.Enabled {
		monitor := realtime.NewMonitor(c.cfg.Realtime.URL, c.cfg.Realtime.Reconnect.Duration, log)
		go monitor.Run(ctx)
		opts.Monitor = monitor
	}

	model := app.New(opts)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
