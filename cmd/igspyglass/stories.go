package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var storiesCmd = &cobra.Command{
	Use:   "stories <username>",
	Short: "List a profile's stories as JSON",
	Long: `List a profile's current stories as normalized JSON records.

Anonymous access to story payloads is limited; private accounts yield a
single placeholder item explaining that stories exist but are inaccessible.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		username := strings.TrimSpace(args[0])
		return printJSON(a.resolver.ListStories(username))
	},
}

func init() {
	rootCmd.AddCommand(storiesCmd)
}
