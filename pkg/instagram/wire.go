package instagram

// WebProfileResponse is the top-level payload of the profile-info JSON
// endpoint.
type WebProfileResponse struct {
	Data   WebProfileData `json:"data"`
	Status string         `json:"status"`
}

// WebProfileData wraps the user object in the response.
type WebProfileData struct {
	User *WireUser `json:"user"`
}

// WireUser is the platform's user object as it appears both in the
// profile-info payload and in page-embedded script data.
type WireUser struct {
	ID                       string        `json:"id"`
	Username                 string        `json:"username"`
	FullName                 string        `json:"full_name"`
	Biography                string        `json:"biography"`
	ProfilePicURL            string        `json:"profile_pic_url"`
	ProfilePicURLHD          string        `json:"profile_pic_url_hd"`
	ExternalURL              string        `json:"external_url"`
	IsPrivate                bool          `json:"is_private"`
	IsVerified               bool          `json:"is_verified"`
	EdgeFollowedBy           EdgeCount     `json:"edge_followed_by"`
	EdgeFollow               EdgeCount     `json:"edge_follow"`
	EdgeOwnerToTimelineMedia TimelineMedia `json:"edge_owner_to_timeline_media"`
}

// EdgeCount is the platform's {"count": n} wrapper.
type EdgeCount struct {
	Count int `json:"count"`
}

// TimelineMedia contains a user's media listing.
type TimelineMedia struct {
	Count    int         `json:"count"`
	PageInfo PageInfo    `json:"page_info"`
	Edges    []MediaEdge `json:"edges"`
}

// PageInfo contains pagination information.
type PageInfo struct {
	HasNextPage bool   `json:"has_next_page"`
	EndCursor   string `json:"end_cursor"`
}

// MediaEdge wraps a single media node.
type MediaEdge struct {
	Node MediaNode `json:"node"`
}

// MediaNode is a single media item (photo or video).
type MediaNode struct {
	ID                   string       `json:"id"`
	Shortcode            string       `json:"shortcode"`
	DisplayURL           string       `json:"display_url"`
	ThumbnailSrc         string       `json:"thumbnail_src"`
	IsVideo              bool         `json:"is_video"`
	VideoURL             string       `json:"video_url"`
	TakenAtTimestamp     int64        `json:"taken_at_timestamp"`
	EdgeMediaToCaption   CaptionEdges `json:"edge_media_to_caption"`
	EdgeMediaPreviewLike EdgeCount    `json:"edge_media_preview_like"`
	EdgeMediaToComment   EdgeCount    `json:"edge_media_to_comment"`
}

// CaptionEdges holds a media item's caption edges.
type CaptionEdges struct {
	Edges []CaptionEdge `json:"edges"`
}

// CaptionEdge wraps a caption text node.
type CaptionEdge struct {
	Node CaptionNode `json:"node"`
}

// CaptionNode carries caption text.
type CaptionNode struct {
	Text string `json:"text"`
}

// SharedData is the shape of the window._sharedData script payload embedded
// in profile pages.
type SharedData struct {
	EntryData EntryData `json:"entry_data"`
}

// EntryData holds per-page entry data.
type EntryData struct {
	ProfilePage []ProfilePage `json:"ProfilePage"`
}

// ProfilePage wraps the GraphQL user object of a profile page.
type ProfilePage struct {
	Graphql Graphql `json:"graphql"`
}

// Graphql holds the user object.
type Graphql struct {
	User *WireUser `json:"user"`
}

// TopSearchResponse is the payload of the search endpoints.
type TopSearchResponse struct {
	Users []TopSearchUser `json:"users"`
}

// TopSearchUser wraps a single search hit.
type TopSearchUser struct {
	User SearchUser `json:"user"`
}

// SearchUser is the abbreviated user object returned by search.
type SearchUser struct {
	Username             string `json:"username"`
	FullName             string `json:"full_name"`
	ProfilePicURL        string `json:"profile_pic_url"`
	IsVerified           bool   `json:"is_verified"`
	IsPrivate            bool   `json:"is_private"`
	FollowerCount        int    `json:"follower_count"`
	MutualFollowersCount int    `json:"mutual_followers_count"`
}
