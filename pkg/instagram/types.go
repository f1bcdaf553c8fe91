package instagram

import "time"

// NormalizedProfile is the platform-agnostic profile record all acquisition
// strategies convert their raw results into.
//
// When IsLimitedData is true the numeric counts are not authoritative and
// must be treated as zero/unknown by consumers. IsPrivate and IsLimitedData
// are independent flags: a structured API payload can report a private
// account with full, authoritative counts.
type NormalizedProfile struct {
	Username          string        `json:"username"`
	FullName          string        `json:"full_name"`
	Bio               string        `json:"bio"`
	ProfilePicURL     string        `json:"profile_pic_url"`
	Followers         int           `json:"followers"`
	Following         int           `json:"following"`
	PostsCount        int           `json:"posts_count"`
	IsPrivate         bool          `json:"is_private"`
	IsVerified        bool          `json:"is_verified"`
	ExternalURL       string        `json:"external_url"`
	UserID            string        `json:"user_id"`
	IsLimitedData     bool          `json:"is_limited_data"`
	HasPreviewContent bool          `json:"has_preview_content"`
	LimitedPosts      []ContentItem `json:"limited_posts"`
}

// ContentItem is a normalized post or story.
//
// Timestamp is nil when the platform gave no epoch field for real content.
// Synthesized preview items may stamp the synthesis time instead.
type ContentItem struct {
	ID           string     `json:"id"`
	Shortcode    string     `json:"shortcode"`
	URL          string     `json:"url,omitempty"`
	DisplayURL   string     `json:"display_url"`
	ThumbnailURL string     `json:"thumbnail_url"`
	IsVideo      bool       `json:"is_video"`
	VideoURL     string     `json:"video_url"`
	Caption      string     `json:"caption"`
	Likes        int        `json:"likes"`
	Comments     int        `json:"comments"`
	Timestamp    *time.Time `json:"timestamp"`
	IsPreview    bool       `json:"is_preview"`
}

// PreviewItem is a ContentItem restricted to IsPreview=true: a salvaged
// placeholder carrying no authoritative engagement numbers. Likes and
// Comments are always zero and Caption is a fixed informational string,
// never a platform value.
type PreviewItem = ContentItem

// SearchResult is a normalized profile search hit.
type SearchResult struct {
	Username             string `json:"username"`
	FullName             string `json:"full_name"`
	ProfilePicURL        string `json:"profile_pic_url"`
	IsVerified           bool   `json:"is_verified"`
	IsPrivate            bool   `json:"is_private"`
	FollowerCount        int    `json:"follower_count"`
	MutualFollowersCount int    `json:"mutual_followers_count"`
}
