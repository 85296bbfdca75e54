package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/keypulse/pkg/api"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Print account totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildClients(os.Stderr)
		if err != nil {
			return err
		}

		var stats *api.UserStats
		if c.web != nil {
			stats, err = c.web.User(context.Background())
		} else {
			stats, err = c.local.AccountTotals(context.Background())
		}
		if err != nil {
			return err
		}

		if stats.Username != "" && stats.Username != "local" {
			fmt.Printf("%s (id %d)\n", stats.Username, stats.ID)
		}
		printSimpleTable(os.Stdout, []string{"Stat", "Total", "Rank"}, func(add func(...string)) {
			rank := func(r int64) string {
				if stats.Ranks == nil {
					return "-"
				}
				return "#" + groupDigits(r)
			}
			var ranks api.UserRanks
			if stats.Ranks != nil {
				ranks = *stats.Ranks
			}
			add("Keys", groupDigits(stats.Totals.Keys), rank(ranks.Keys))
			add("Clicks", groupDigits(stats.Totals.Clicks), rank(ranks.Clicks))
			add("Scrolls", groupDigits(stats.Totals.Scrolls), rank(ranks.Scrolls))
			add("Download", fmt.Sprintf("%.1f GB", stats.Totals.DownloadMB/1024), rank(ranks.Download))
			add("Upload", fmt.Sprintf("%.1f GB", stats.Totals.UploadMB/1024), rank(ranks.Upload))
			add("Uptime", humanDuration(stats.Totals.UptimeSeconds), rank(ranks.Uptime))
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
}
