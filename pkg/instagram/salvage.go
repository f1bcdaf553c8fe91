package instagram

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// PreviewCap is the hard bound on salvaged preview items, modeling the
// constrained preview grid. It is independent of any caller-supplied limit.
const PreviewCap = 9

// cdnPathFragments identify platform CDN media among arbitrary page images.
var cdnPathFragments = []string{"/vp/", "scontent", "cdninstagram", "instagram"}

const (
	previewCaptionScript = "Preview content from private account"
	previewCaptionImage  = "Preview image from private account"
	previewCaptionVideo  = "Video preview from private account"
)

// SalvagePreview extracts whatever public preview artifacts a private
// profile's page exposes. Attempts are ordered richest-first and the first
// non-empty result wins: script-embedded post edges, then CDN image tags,
// then playable video tags. Never returns more than PreviewCap items; every
// item is a placeholder with zero engagement numbers.
func SalvagePreview(doc *goquery.Document, username string, styler AvatarStyler) []PreviewItem {
	if doc == nil {
		return []PreviewItem{}
	}

	if items := salvageFromScript(doc, username, styler); len(items) > 0 {
		return items
	}
	if items := salvageFromImages(doc); len(items) > 0 {
		return items
	}
	return salvageFromVideos(doc, username, styler)
}

// salvageFromScript converts embedded timeline edges into preview items.
// These carry real ids, shortcodes and thumbnails but never real engagement.
func salvageFromScript(doc *goquery.Document, username string, styler AvatarStyler) []PreviewItem {
	user := ExtractScriptUser(doc)
	if user == nil {
		return nil
	}

	edges := user.EdgeOwnerToTimelineMedia.Edges
	if len(edges) > PreviewCap {
		edges = edges[:PreviewCap]
	}

	items := make([]PreviewItem, 0, len(edges))
	for i, edge := range edges {
		node := edge.Node

		item := PreviewItem{
			ID:           node.ID,
			Shortcode:    node.Shortcode,
			URL:          PostURL(node.Shortcode),
			DisplayURL:   node.DisplayURL,
			ThumbnailURL: node.ThumbnailSrc,
			IsVideo:      node.IsVideo,
			VideoURL:     node.VideoURL,
			Caption:      previewCaptionScript,
			IsPreview:    true,
			Timestamp:    previewTimestamp(node.TakenAtTimestamp),
		}
		if item.ID == "" {
			item.ID = fmt.Sprintf("preview_%d", i)
		}
		if item.Shortcode == "" {
			item.Shortcode = fmt.Sprintf("preview_%d", i)
		}
		if item.DisplayURL == "" && item.ThumbnailURL == "" {
			fallback := DefaultAvatarURL(fmt.Sprintf("%s_post_%d", username, i), styler)
			item.DisplayURL = fallback
			item.ThumbnailURL = fallback
		} else if item.ThumbnailURL == "" {
			item.ThumbnailURL = item.DisplayURL
		}

		items = append(items, item)
	}

	return items
}

// salvageFromImages scans img tags for CDN-hosted sources.
func salvageFromImages(doc *goquery.Document) []PreviewItem {
	var items []PreviewItem
	doc.Find("img[src]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		if src == "" || !matchesCDN(src) {
			return true
		}

		now := time.Now()
		items = append(items, PreviewItem{
			ID:           fmt.Sprintf("html_preview_%d", len(items)),
			Shortcode:    fmt.Sprintf("html_preview_%d", len(items)),
			DisplayURL:   src,
			ThumbnailURL: src,
			Caption:      previewCaptionImage,
			IsPreview:    true,
			Timestamp:    &now,
		})
		return len(items) < PreviewCap
	})
	return items
}

// salvageFromVideos scans video tags for playable sources.
func salvageFromVideos(doc *goquery.Document, username string, styler AvatarStyler) []PreviewItem {
	items := []PreviewItem{}
	doc.Find("video[src]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		if !strings.HasPrefix(src, "http") {
			return true
		}

		now := time.Now()
		items = append(items, PreviewItem{
			ID:           fmt.Sprintf("video_preview_%d", len(items)),
			Shortcode:    fmt.Sprintf("video_preview_%d", len(items)),
			DisplayURL:   src,
			VideoURL:     src,
			ThumbnailURL: DefaultAvatarURL(username, styler),
			IsVideo:      true,
			Caption:      previewCaptionVideo,
			IsPreview:    true,
			Timestamp:    &now,
		})
		return len(items) < PreviewCap
	})
	return items
}

func matchesCDN(src string) bool {
	for _, fragment := range cdnPathFragments {
		if strings.Contains(src, fragment) {
			return true
		}
	}
	return false
}

// previewTimestamp converts a platform epoch to a timestamp, substituting
// the synthesis time when the epoch is absent. The substitution is allowed
// here because preview items are synthesized placeholders, never real
// content.
func previewTimestamp(epoch int64) *time.Time {
	var ts time.Time
	if epoch > 0 {
		ts = time.Unix(epoch, 0).UTC()
	} else {
		ts = time.Now()
	}
	return &ts
}
