package instagram

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, raw string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	require.NoError(t, err)
	return doc
}

func TestSalvagePreviewCapsScriptEdges(t *testing.T) {
	doc := docFromHTML(t, privateProfilePageHTML("capped", 12))

	items := SalvagePreview(doc, "capped", DefaultAvatarStyler)
	require.Len(t, items, PreviewCap)

	for i, item := range items {
		assert.True(t, item.IsPreview)
		assert.Zero(t, item.Likes, "preview items never carry engagement")
		assert.Zero(t, item.Comments)
		assert.Equal(t, "Preview content from private account", item.Caption)
		assert.Equal(t, fmt.Sprintf("post%d", i), item.ID)
		assert.NotNil(t, item.Timestamp)
	}
}

func TestSalvagePreviewFewerEdgesThanCap(t *testing.T) {
	doc := docFromHTML(t, privateProfilePageHTML("sparse", 3))

	items := SalvagePreview(doc, "sparse", DefaultAvatarStyler)
	assert.Len(t, items, 3)
}

func TestSalvagePreviewFallsBackToImageScan(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<img src="https://scontent.cdninstagram.com/v/photo1.jpg" />
		<img src="https://example.com/unrelated.png" />
		<img src="https://cdn.other.com/vp/photo2.jpg" />
	</body></html>`)

	items := SalvagePreview(doc, "imguser", DefaultAvatarStyler)
	require.Len(t, items, 2)

	assert.Equal(t, "https://scontent.cdninstagram.com/v/photo1.jpg", items[0].DisplayURL)
	assert.Equal(t, "Preview image from private account", items[0].Caption)
	assert.True(t, items[0].IsPreview)
	assert.Equal(t, "https://cdn.other.com/vp/photo2.jpg", items[1].DisplayURL)
}

func TestSalvagePreviewFallsBackToVideoScan(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<video src="https://scontent.cdninstagram.com/v/clip.mp4"></video>
		<video src="blob:local"></video>
	</body></html>`)

	items := SalvagePreview(doc, "viduser", DefaultAvatarStyler)
	require.Len(t, items, 1)

	assert.True(t, items[0].IsVideo)
	assert.Equal(t, "https://scontent.cdninstagram.com/v/clip.mp4", items[0].VideoURL)
	assert.Equal(t, "Video preview from private account", items[0].Caption)
	assert.Contains(t, items[0].ThumbnailURL, "dicebear.com")
}

func TestSalvagePreviewImageCapRespected(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, `<img src="https://scontent.cdninstagram.com/p%d.jpg" />`, i)
	}
	b.WriteString("</body></html>")

	items := SalvagePreview(docFromHTML(t, b.String()), "many", DefaultAvatarStyler)
	assert.Len(t, items, PreviewCap)
}

func TestSalvagePreviewScriptBeatsImages(t *testing.T) {
	// A page with both a script payload and CDN images must use the
	// script edges, the richer source.
	raw := privateProfilePageHTML("both", 2)
	raw = strings.Replace(raw, "</body>", `<img src="https://scontent.cdninstagram.com/extra.jpg" /></body>`, 1)

	items := SalvagePreview(docFromHTML(t, raw), "both", DefaultAvatarStyler)
	require.Len(t, items, 2)
	assert.Equal(t, "post0", items[0].ID)
}

func TestSalvagePreviewEmptyPage(t *testing.T) {
	items := SalvagePreview(docFromHTML(t, "<html><body><p>nothing here</p></body></html>"), "empty", DefaultAvatarStyler)
	assert.Empty(t, items)

	assert.Empty(t, SalvagePreview(nil, "nil", DefaultAvatarStyler))
}
