package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/keypulse/pkg/realtime"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Stream live status updates from the desktop client",
	Long: `Connect to the desktop client's plugin socket and print each
status update as a line. Ctrl-C stops the stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := setupLogger(cfg, os.Stderr)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		monitor := realtime.NewMonitor(cfg.Realtime.URL, cfg.Realtime.Reconnect.Duration, log)
		go monitor.Run(ctx)

		fmt.Fprintf(os.Stderr, "listening on %s (ctrl-c to stop)\n", cfg.Realtime.URL)
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-monitor.Events():
				if !ok {
					return nil
				}
				fmt.Printf("kps=%.2f cps=%.2f unpulsed_keys=%s unpulsed_clicks=%s\n",
					ev.KPS, ev.CPS,
					groupDigits(ev.UnpulsedKeys), groupDigits(ev.UnpulsedClicks))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}
