package instagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAvatarStylerIsDeterministic(t *testing.T) {
	first := DefaultAvatarStyler("someuser")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, DefaultAvatarStyler("someuser"))
	}
	assert.Contains(t, avatarStyles, first)
}

func TestDefaultAvatarURL(t *testing.T) {
	url := DefaultAvatarURL("some user", nil)
	assert.Contains(t, url, "api.dicebear.com")
	assert.Contains(t, url, "seed=some+user")

	pinned := DefaultAvatarURL("x", func(string) string { return "bottts" })
	assert.Contains(t, pinned, "/bottts/")
}
