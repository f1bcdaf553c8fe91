package main

import (
	"strings"

	"github.com/spf13/cobra"

	"igspyglass/pkg/instagram"
)

var postsLimit int

var postsCmd = &cobra.Command{
	Use:   "posts <username>",
	Short: "List a profile's recent posts as JSON",
	Long: `List a profile's recent posts as normalized JSON records.

Public accounts yield real posts with engagement counts. Private accounts
yield salvaged preview items: placeholder captions, zero engagement, and the
is_preview marker set.`,
	Example: `  # List the default number of posts
  igspyglass posts johndoe

  # List up to 30 posts
  igspyglass posts johndoe --limit 30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		username := strings.TrimSpace(args[0])
		var posts []instagram.ContentItem
		_ = a.withRetry(func() error {
			posts = a.resolver.ListPosts(username, postsLimit)
			return nil
		})

		return printJSON(posts)
	},
}

func init() {
	rootCmd.AddCommand(postsCmd)
	postsCmd.Flags().IntVarP(&postsLimit, "limit", "l", instagram.DefaultPostLimit, "maximum number of posts to list")
}
