package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"gitlab.com/tinyland/lab/keypulse/pkg/api"
	"gitlab.com/tinyland/lab/keypulse/pkg/components"
	"gitlab.com/tinyland/lab/keypulse/pkg/config"
)

// clients bundles whichever stats clients the configuration allows.
type clients struct {
	cfg   *config.Config
	log   *slog.Logger
	web   *api.Client // nil without an API key
	local *api.LocalClient
}

// buildClients resolves config and constructs the fetch clients. Called
// at the start of each command's RunE. One-shot commands log to
// logFallback (stderr); the TUI passes nil so logs only reach the file.
func buildClients(logFallback io.Writer) (*clients, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := setupLogger(cfg, logFallback)

	c := &clients{cfg: cfg, log: log, local: api.NewLocalClient(log)}
	if cfg.API.LocalURL != "" {
		c.local.WithBaseURL(cfg.API.LocalURL)
	}
	if cfg.HasAPIKey() {
		web, err := api.NewClient(cfg.API.Key, log)
		if err != nil {
			return nil, err
		}
		if cfg.API.BaseURL != "" {
			web.WithBaseURL(cfg.API.BaseURL)
		}
		c.web = web
	}
	return c, nil
}

// requireWeb errors out of commands that only work against the hosted
// API.
func (c *clients) requireWeb() (*api.Client, error) {
	if c.web == nil {
		return nil, fmt.Errorf("this command needs an API key (set api.key or KEYPULSE_API_KEY)")
	}
	return c.web, nil
}

// stdoutIsTTY gates decorative output; piped output stays plain.
func stdoutIsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// printSimpleTable renders a bordered table with headers using
// tablewriter. The fill callback appends rows.
func printSimpleTable(w io.Writer, headers []string, fill func(add func(...string))) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(headers)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)

	fill(func(cols ...string) {
		tw.Append(cols)
	})
	tw.Render()
}

// groupDigits renders 1234567 as "1,234,567".
func groupDigits(n int64) string { return components.FormatCount(n) }

// humanDuration renders API uptime seconds as "12d 3h 45m".
func humanDuration(seconds int64) string {
	return components.FormatDuration(time.Duration(seconds) * time.Second)
}
