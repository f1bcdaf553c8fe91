package instagram

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publicUserWithPostsJSON(username string, edges string) string {
	return fmt.Sprintf(`{
		"data": {
			"user": {
				"id": "900",
				"username": %q,
				"full_name": "Poster",
				"is_private": false,
				"edge_followed_by": {"count": 1000},
				"edge_follow": {"count": 50},
				"edge_owner_to_timeline_media": {"count": 3, "edges": [%s]}
			}
		},
		"status": "ok"
	}`, username, edges)
}

const threePostEdges = `
	{"node":{
		"id":"p1","shortcode":"s1",
		"display_url":"https://scontent.cdninstagram.com/1.jpg",
		"is_video":false,
		"taken_at_timestamp":1700000000,
		"edge_media_to_caption":{"edges":[{"node":{"text":"first caption"}},{"node":{"text":"second caption"}}]},
		"edge_media_preview_like":{"count":10},
		"edge_media_to_comment":{"count":2}
	}},
	{"node":{
		"id":"p2","shortcode":"s2",
		"display_url":"https://scontent.cdninstagram.com/2.jpg",
		"is_video":true,
		"video_url":"https://scontent.cdninstagram.com/2.mp4",
		"edge_media_preview_like":{"count":20},
		"edge_media_to_comment":{"count":4}
	}},
	{"node":{
		"id":"p3","shortcode":"s3",
		"display_url":"https://scontent.cdninstagram.com/3.jpg",
		"is_video":false,
		"taken_at_timestamp":1700000002,
		"edge_media_preview_like":{"count":30},
		"edge_media_to_comment":{"count":6}
	}}`

func TestListPostsPublicProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(ProfileInfoEndpoint, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, publicUserWithPostsJSON("poster", threePostEdges))
	})

	resolver, _, _ := newTestResolver(t, mux)

	posts := resolver.ListPosts("poster", 0)
	require.Len(t, posts, 3)

	assert.Equal(t, "p1", posts[0].ID)
	assert.Equal(t, BaseURL+"/p/s1/", posts[0].URL)
	assert.Equal(t, "first caption", posts[0].Caption, "caption comes from the first caption edge")
	assert.Equal(t, 10, posts[0].Likes)
	require.NotNil(t, posts[0].Timestamp)
	assert.Equal(t, int64(1700000000), posts[0].Timestamp.Unix())
	assert.False(t, posts[0].IsPreview)

	assert.True(t, posts[1].IsVideo)
	assert.Equal(t, "https://scontent.cdninstagram.com/2.mp4", posts[1].VideoURL)
	assert.Nil(t, posts[1].Timestamp, "missing platform epoch yields a nil timestamp")
	assert.Empty(t, posts[1].Caption)
}

func TestListPostsLimitTruncates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(ProfileInfoEndpoint, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, publicUserWithPostsJSON("poster", threePostEdges))
	})

	resolver, _, _ := newTestResolver(t, mux)

	posts := resolver.ListPosts("poster", 2)
	require.Len(t, posts, 2)
	assert.Equal(t, "p1", posts[0].ID)
	assert.Equal(t, "p2", posts[1].ID)
}

func TestListPostsPrivateProfileReturnsPreviews(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(ProfileInfoEndpoint, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, privateProfilePageHTML("lockeduser", 12))
	})

	resolver, _, _ := newTestResolver(t, mux)

	posts := resolver.ListPosts("lockeduser", 30)
	require.Len(t, posts, PreviewCap, "previews stay capped regardless of the requested limit")
	for _, post := range posts {
		assert.True(t, post.IsPreview)
		assert.Zero(t, post.Likes)
	}
}

func TestListPostsUnresolvableProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	resolver, _, _ := newTestResolver(t, mux)

	posts := resolver.ListPosts("ghost", 5)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestListStoriesPrivateProfilePlaceholder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(ProfileInfoEndpoint, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>This Account is Private</p></body></html>`)
	})

	resolver, _, _ := newTestResolver(t, mux)

	stories := resolver.ListStories("lockeduser")
	require.Len(t, stories, 1)

	assert.True(t, stories[0].IsPreview)
	assert.Equal(t, "Stories available but account is private", stories[0].Caption)
	assert.Contains(t, stories[0].DisplayURL, "dicebear.com")
	assert.NotNil(t, stories[0].Timestamp)
}

func TestListStoriesPublicProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(ProfileInfoEndpoint, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, publicUserJSON("poster", 10, 10, 0))
	})
	mux.HandleFunc("/stories/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body></body></html>")
	})

	resolver, _, _ := newTestResolver(t, mux)

	stories := resolver.ListStories("poster")
	assert.NotNil(t, stories)
	assert.Empty(t, stories)
}

func TestListStoriesUnresolvableProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	resolver, _, _ := newTestResolver(t, mux)

	stories := resolver.ListStories("ghost")
	assert.NotNil(t, stories)
	assert.Empty(t, stories)
}
