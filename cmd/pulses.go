package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var pulsesFlags struct {
	Range string
	Limit int
}

var pulsesCmd = &cobra.Command{
	Use:   "pulses",
	Short: "List recent pulses",
	Long: `List recent pulses, newest first.

The --range filter accepts: today, yesterday, week, last-week, month,
last-month, all, or custom:YYYY-MM-DD:YYYY-MM-DD.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildClients(os.Stderr)
		if err != nil {
			return err
		}
		web, err := c.requireWeb()
		if err != nil {
			return err
		}

		pulses, err := web.Pulses(context.Background(), pulsesFlags.Range, pulsesFlags.Limit)
		if err != nil {
			return err
		}
		if len(pulses) == 0 {
			fmt.Println("no pulses in this range")
			return nil
		}

		printSimpleTable(os.Stdout, []string{"Date", "Keys", "Clicks", "Down MB", "Up MB", "Uptime"},
			func(add func(...string)) {
				for _, p := range pulses {
					add(p.Date,
						groupDigits(p.Keys),
						groupDigits(p.Clicks),
						fmt.Sprintf("%.1f", p.DownloadMB),
						fmt.Sprintf("%.1f", p.UploadMB),
						humanDuration(p.UptimeSeconds))
				}
			})
		return nil
	},
}

func init() {
	pulsesCmd.Flags().StringVar(&pulsesFlags.Range, "range", "", "date range filter")
	pulsesCmd.Flags().IntVar(&pulsesFlags.Limit, "limit", 25, "maximum pulses to list")
	rootCmd.AddCommand(pulsesCmd)
}
