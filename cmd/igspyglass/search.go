package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for profiles matching a query",
	Long: `Search for profiles matching a query and print the hits as JSON.

The search walks its own fallback chain: the blended search endpoint, the
legacy web search endpoint, and finally a direct probe treating the query as
an exact username.`,
	Example: `  # Search by name
  igspyglass search "jane doe"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		query := strings.TrimSpace(args[0])
		return printJSON(a.resolver.SearchProfiles(query))
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
