package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"igspyglass/internal/downloader"
	"igspyglass/pkg/instagram"
)

var (
	downloadLimit      int
	downloadStories    bool
	downloadProfilePic bool
)

var downloadCmd = &cobra.Command{
	Use:   "download <username>",
	Short: "Download a profile's media",
	Long: `Download a profile's posts (and optionally stories and the profile
picture) into the configured download folder.

Transfers run concurrently over a bounded worker pool; every completed
download is appended to the history file. Preview items from private
accounts are placeholders and are skipped.`,
	Example: `  # Download recent posts
  igspyglass download johndoe

  # Download posts, stories and the profile picture
  igspyglass download johndoe --stories --profile-pic`,
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

		total, failed := 0, 0

		if downloadProfilePic {
			if path := a.service.DownloadProfilePicture(profile); path != "" {
				fmt.Printf("profile picture -> %s\n", path)
				total++
			} else {
				failed++
			}
		}

		posts := a.resolver.ListPosts(username, downloadLimit)
		posts = dropPreviews(posts)
		if len(posts) > 0 {
			ok, bad := downloader.DownloadAll(a.service, username, "post", posts, a.cfg.Download.ConcurrentDownloads, a.log)
			total += ok
			failed += bad
		}

		if downloadStories {
			stories := dropPreviews(a.resolver.ListStories(username))
			if len(stories) > 0 {
				ok, bad := downloader.DownloadAll(a.service, username, "story", stories, a.cfg.Download.ConcurrentDownloads, a.log)
				total += ok
				failed += bad
			}
		}

		fmt.Printf("downloaded %d file(s), %d failed\n", total, failed)
		if total == 0 && failed > 0 {
			return fmt.Errorf("no media downloaded for %q", username)
		}
		return nil
	},
}

// dropPreviews filters out salvaged placeholder items, which point at preview
// or synthesized URLs not worth storing.
func dropPreviews(items []instagram.ContentItem) []instagram.ContentItem {
	kept := items[:0:0]
	for _, item := range items {
		if !item.IsPreview {
			kept = append(kept, item)
		}
	}
	return kept
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().IntVarP(&downloadLimit, "limit", "l", instagram.DefaultPostLimit, "maximum number of posts to download")
	downloadCmd.Flags().BoolVar(&downloadStories, "stories", false, "also download stories")
	downloadCmd.Flags().BoolVar(&downloadProfilePic, "profile-pic", false, "also download the profile picture")
}
