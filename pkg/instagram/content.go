package instagram

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"igspyglass/pkg/errors"
)

const privateStoryCaption = "Stories available but account is private"

// ListPosts returns up to limit normalized posts for a username. Resolution
// failures yield an empty sequence, never nil-as-error. Private profiles
// yield their salvaged limited posts verbatim, already bounded by
// PreviewCap regardless of limit.
func (r *Resolver) ListPosts(username string, limit int) []ContentItem {
	if limit <= 0 {
		limit = DefaultPostLimit
	}

	profile := r.Resolve(username)
	if profile == nil {
		return []ContentItem{}
	}

	if profile.IsPrivate {
		r.logger.InfoWithFields("private account, returning preview posts", map[string]interface{}{
			"username": username,
			"previews": len(profile.LimitedPosts),
		})
		return profile.LimitedPosts
	}

	if posts, err := r.postsFromEndpoint(username, limit); err == nil && len(posts) > 0 {
		return posts
	} else if err != nil {
		r.logger.DebugWithFields("post listing endpoint failed", map[string]interface{}{
			"username": username,
			"error":    err.Error(),
		})
	}

	posts, err := r.postsFromScript(username, limit)
	if err != nil {
		r.logger.DebugWithFields("script post listing failed", map[string]interface{}{
			"username": username,
			"error":    err.Error(),
		})
		return []ContentItem{}
	}
	return posts
}

// ListStories returns normalized stories for a username. Private accounts
// have no real story salvage path, so a single synthesized placeholder item
// carries the explanation instead.
func (r *Resolver) ListStories(username string) []ContentItem {
	profile := r.Resolve(username)
	if profile == nil {
		return []ContentItem{}
	}

	if profile.IsPrivate {
		now := time.Now()
		placeholder := DefaultAvatarURL(username, r.avatars)
		return []ContentItem{{
			ID:           "private_story_" + username,
			DisplayURL:   placeholder,
			ThumbnailURL: placeholder,
			Caption:      privateStoryCaption,
			IsPreview:    true,
			Timestamp:    &now,
		}}
	}

	// Real story payloads require an authenticated session, which is out
	// of reach for an anonymous client; the page is still probed so the
	// outcome is logged.
	resp, err := r.session.Fetch(StoriesPageURL(r.session.BaseURL(), username), nil, htmlHeaders(), r.contentTimeout)
	if err != nil {
		r.logger.DebugWithFields("stories fetch failed", map[string]interface{}{
			"username": username,
			"error":    err.Error(),
		})
		return []ContentItem{}
	}
	if !resp.OK() {
		r.logger.DebugWithFields("stories endpoint returned non-200", map[string]interface{}{
			"username": username,
			"status":   resp.StatusCode,
		})
	}
	return []ContentItem{}
}

// postsFromEndpoint lists posts via the profile-info JSON endpoint.
func (r *Resolver) postsFromEndpoint(username string, limit int) ([]ContentItem, error) {
	resp, err := r.session.FetchJSON(ProfileInfoURL(r.session.BaseURL(), username), nil, r.contentTimeout)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, errors.New(errors.ErrorTypeStrategy, resp.StatusCode, "profile endpoint returned %d", resp.StatusCode)
	}

	var payload WebProfileResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, errors.New(errors.ErrorTypeParsing, resp.StatusCode, "malformed profile payload: %v", err)
	}
	if payload.Data.User == nil {
		return nil, errors.New(errors.ErrorTypeStrategy, resp.StatusCode, "profile payload missing user")
	}

	return formatMediaEdges(payload.Data.User.EdgeOwnerToTimelineMedia.Edges, limit), nil
}

// postsFromScript lists posts from the page-embedded script payload.
func (r *Resolver) postsFromScript(username string, limit int) ([]ContentItem, error) {
	resp, err := r.session.Fetch(ProfilePageURL(r.session.BaseURL(), username), nil, htmlHeaders(), r.contentTimeout)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrorTypeStrategy, resp.StatusCode, "profile page returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, errors.New(errors.ErrorTypeParsing, resp.StatusCode, "failed to parse profile page: %v", err)
	}

	user := ExtractScriptUser(doc)
	if user == nil {
		return nil, errors.New(errors.ErrorTypeStrategy, resp.StatusCode, "no embedded script payload")
	}

	return formatMediaEdges(user.EdgeOwnerToTimelineMedia.Edges, limit), nil
}

// formatMediaEdges normalizes raw media edges. The limit truncates after
// normalization so memory stays bounded regardless of remote payload size.
func formatMediaEdges(edges []MediaEdge, limit int) []ContentItem {
	items := make([]ContentItem, 0, len(edges))
	for _, edge := range edges {
		items = append(items, formatMediaNode(edge.Node))
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// formatMediaNode converts a single media node. Caption comes from the first
// caption edge when present; an absent platform epoch leaves the timestamp
// nil rather than defaulting to the current time.
func formatMediaNode(node MediaNode) ContentItem {
	caption := ""
	if len(node.EdgeMediaToCaption.Edges) > 0 {
		caption = node.EdgeMediaToCaption.Edges[0].Node.Text
	}

	var timestamp *time.Time
	if node.TakenAtTimestamp > 0 {
		ts := time.Unix(node.TakenAtTimestamp, 0).UTC()
		timestamp = &ts
	}

	return ContentItem{
		ID:           node.ID,
		Shortcode:    node.Shortcode,
		URL:          PostURL(node.Shortcode),
		DisplayURL:   node.DisplayURL,
		ThumbnailURL: node.ThumbnailSrc,
		IsVideo:      node.IsVideo,
		VideoURL:     node.VideoURL,
		Caption:      caption,
		Likes:        node.EdgeMediaPreviewLike.Count,
		Comments:     node.EdgeMediaToComment.Count,
		Timestamp:    timestamp,
		IsPreview:    false,
	}
}
