package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/keypulse/pkg/api"
	"gitlab.com/tinyland/lab/keypulse/pkg/physics"
)

var calorimetryProfile string

var calorimetryCmd = &cobra.Command{
	Use:   "calorimetry [keystrokes]",
	Short: "Energy spent pressing keys",
	Long: `Convert a keystroke count into mechanical work and food-energy
equivalents. With no argument, the account's lifetime key total is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var count int64
		if len(args) == 1 {
			n, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || n < 0 {
				return fmt.Errorf("keystroke count must be a non-negative integer, got %q", args[0])
			}
			count = n
		} else {
			c, err := buildClients(os.Stderr)
			if err != nil {
				return err
			}
			stats, err := fetchUserStats(c)
			if err != nil {
				return err
			}
			count = stats.Totals.Keys
		}

		profile := physics.ProfileAt(0)
		for _, p := range physics.Profiles() {
			if p.Name == calorimetryProfile {
				profile = p
			}
		}

		report := physics.Energy(count, profile)
		printSimpleTable(os.Stdout, []string{"Quantity", "Value"}, func(add func(...string)) {
			add("Keystrokes", groupDigits(report.Keystrokes))
			add("Switch", fmt.Sprintf("%s (%.2fN, %.1fmm)",
				profile.Name, profile.ActuationForce, profile.Travel*1000))
			add("Work", fmt.Sprintf("%.3f J", report.WorkJoules))
			add("Calories", fmt.Sprintf("%.3f cal", report.Calories))
			add("Kilocalories", fmt.Sprintf("%.6f kcal", report.Kilocalories))
			add("Candy", fmt.Sprintf("%.6f pieces", report.CandyEquiv))
			add("Running", fmt.Sprintf("%.4f min", report.RunningMinutes))
		})
		return nil
	},
}

// fetchUserStats grabs account totals from whichever client is
// configured.
func fetchUserStats(c *clients) (*api.UserStats, error) {
	ctx := context.Background()
	if c.web != nil {
		return c.web.User(ctx)
	}
	return c.local.AccountTotals(ctx)
}

func init() {
	calorimetryCmd.Flags().StringVar(&calorimetryProfile, "switch", "Cherry MX Red",
		"switch profile name")
	rootCmd.AddCommand(calorimetryCmd)
}
