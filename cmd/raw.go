package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rawCmd = &cobra.Command{
	Use:   "raw <path>",
	Short: "Fetch an arbitrary API path and print the JSON",
	Long: `Fetch any path under the API root with your key and print the
response. When stdout is a terminal the JSON is pretty-printed.

Example:
  keypulse raw /users/271407`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildClients(os.Stderr)
		if err != nil {
			return err
		}
		web, err := c.requireWeb()
		if err != nil {
			return err
		}

		path := args[0]
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		body, err := web.Raw(context.Background(), path)
		if err != nil {
			return err
		}

		if stdoutIsTTY() {
			var pretty bytes.Buffer
			if json.Indent(&pretty, body, "", "  ") == nil {
				fmt.Println(pretty.String())
				return nil
			}
		}
		fmt.Println(string(body))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rawCmd)
}
