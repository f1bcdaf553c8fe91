package instagram

import (
	"fmt"
	"hash/fnv"
	"net/url"
)

// avatarStyles are the DiceBear styles used for synthesized avatars.
var avatarStyles = []string{"identicon", "avataaars", "bottts", "micah"}

// AvatarStyler chooses an avatar style for a seed string. The chooser is
// injectable so tests can pin the style; the default derives it from the
// seed, which keeps repeated resolutions of the same profile identical.
type AvatarStyler func(seed string) string

// DefaultAvatarStyler picks a style deterministically from the seed.
func DefaultAvatarStyler(seed string) string {
	h := fnv.New32a()
	h.Write([]byte(seed))
	return avatarStyles[h.Sum32()%uint32(len(avatarStyles))]
}

// DefaultAvatarURL builds a synthesized avatar URL for profiles and previews
// that expose no usable image.
func DefaultAvatarURL(seed string, styler AvatarStyler) string {
	if styler == nil {
		styler = DefaultAvatarStyler
	}
	return fmt.Sprintf("https://api.dicebear.com/7.x/%s/svg?seed=%s", styler(seed), url.QueryEscape(seed))
}
