package instagram

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPrivateIndicators(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		isPrivate bool
	}{
		{
			name:      "canonical phrase",
			html:      `<html><body><h2>This Account is Private</h2></body></html>`,
			isPrivate: true,
		},
		{
			name:      "lowercase phrase",
			html:      `<html><body><p>This account is private</p></body></html>`,
			isPrivate: true,
		},
		{
			name:      "json flag in script",
			html:      `<html><script>{"user":{"is_private":true}}</script></html>`,
			isPrivate: true,
		},
		{
			name:      "json flag false",
			html:      `<html><script>{"user":{"is_private":false}}</script></html>`,
			isPrivate: false,
		},
		{
			name:      "private profile flag",
			html:      `<html><script>{"private_profile":true}</script></html>`,
			isPrivate: true,
		},
		{
			name:      "public page",
			html:      `<html><body><h1>Welcome</h1></body></html>`,
			isPrivate: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := docFromHTML(t, tt.html)
			assert.Equal(t, tt.isPrivate, DetectPrivate(tt.html, doc))
		})
	}
}

func TestDetectPrivateFromMetaDescription(t *testing.T) {
	html := `<html><head>
		<meta property="og:description" content="This profile is Private on this platform" />
	</head><body></body></html>`

	assert.True(t, DetectPrivate(html, docFromHTML(t, html)))
}

func TestDetectPrivateFromTextNode(t *testing.T) {
	// Both words in a single text node, arbitrary casing and markup.
	html := `<html><body><div><span>this Account seems to be Private</span></div></body></html>`
	assert.True(t, DetectPrivate(html, docFromHTML(t, html)))

	// The words split across sibling nodes do not trigger detection.
	split := `<html><body><span>private</span><span>page</span></body></html>`
	assert.False(t, DetectPrivate(split, docFromHTML(t, split)))
}

func TestDetectPrivateNilDocument(t *testing.T) {
	assert.True(t, DetectPrivate("This Account is Private", nil))
	assert.False(t, DetectPrivate("nothing to see", nil))
}

func TestDetectPrivateJSONFlagProperty(t *testing.T) {
	// Any page embedding the serialized privacy flag is detected, no
	// matter where in the document it appears.
	for _, wrapper := range []string{
		`<html><script>window._sharedData = {"user":{%s}};</script></html>`,
		`<html><body><div data-state='{%s}'></div></body></html>`,
	} {
		html := fmt.Sprintf(wrapper, `"is_private":true`)
		assert.True(t, DetectPrivate(html, docFromHTML(t, html)), html)
	}
}
