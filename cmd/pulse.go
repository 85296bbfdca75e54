package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var pulseCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Ask the desktop client to pulse now",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildClients(os.Stderr)
		if err != nil {
			return err
		}
		if err := c.local.TriggerPulse(context.Background()); err != nil {
			return fmt.Errorf("pulse failed (is the desktop client running?): %w", err)
		}
		fmt.Println("pulse requested")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pulseCmd)
}
