package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"igspyglass/pkg/analytics"
	"igspyglass/pkg/instagram"
)

var statsCmd = &cobra.Command{
	Use:   "stats <username>",
	Short: "Compute engagement statistics for a profile",
	Long: `Resolve a profile, list its recent posts and print an engagement report
as JSON.

Limited-data profiles report a zero engagement rate because preview items
carry no authoritative numbers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		username := strings.TrimSpace(args[0])
		profile := a.resolver.Resolve(username)
		if profile == nil {
			return fmt.Errorf("could not resolve profile %q", username)
		}

		posts := a.resolver.ListPosts(username, instagram.DefaultPostLimit)
		return printJSON(analytics.Compute(profile, posts))
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the download history",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if historyStats {
			stats, err := a.recorder.Stats()
			if err != nil {
				return err
			}
			return printJSON(stats)
		}

		records, err := a.recorder.History(historyLimit)
		if err != nil {
			return err
		}
		return printJSON(records)
	},
}

var (
	historyLimit int
	historyStats bool
)

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "maximum number of records to show")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "show aggregate statistics instead of records")
}
