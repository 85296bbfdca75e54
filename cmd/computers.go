package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var computersCmd = &cobra.Command{
	Use:   "computers",
	Short: "List the account's registered computers",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildClients(os.Stderr)
		if err != nil {
			return err
		}
		web, err := c.requireWeb()
		if err != nil {
			return err
		}

		computers, err := web.Computers(context.Background())
		if err != nil {
			return err
		}

		printSimpleTable(os.Stdout, []string{"Name", "OS", "Keys", "Clicks", "Pulses", "Last pulse"},
			func(add func(...string)) {
				for _, comp := range computers {
					name := comp.Name
					if comp.Archived {
						name += " (archived)"
					}
					add(name, comp.OS,
						groupDigits(comp.Totals.Keys),
						groupDigits(comp.Totals.Clicks),
						groupDigits(comp.Pulses),
						comp.LastPulseDate)
				}
			})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(computersCmd)
}
