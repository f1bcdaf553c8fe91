package instagram

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// scriptDataPatterns locate serialized user payloads inside script tags.
// They are tried in order; the first candidate that parses as valid JSON and
// yields a user object wins, and weaker patterns are not consulted.
var scriptDataPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)window\._sharedData\s*=\s*(\{.*?\});`),
	regexp.MustCompile(`(?s)\{"config".*?"viewer".*?\}`),
	regexp.MustCompile(`(?s)\{"user":\{.*?\}\}`),
}

// ExtractScriptUser scans all script tags for an embedded user payload.
// Returns nil when no script yields valid structured data.
func ExtractScriptUser(doc *goquery.Document) *WireUser {
	if doc == nil {
		return nil
	}

	var user *WireUser
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		content := s.Text()
		if content == "" {
			return true
		}
		for _, pattern := range scriptDataPatterns {
			match := pattern.FindStringSubmatch(content)
			if match == nil {
				continue
			}
			candidate := match[0]
			if len(match) > 1 {
				candidate = match[1]
			}

			if u := decodeUserPayload([]byte(candidate)); u != nil {
				user = u
				return false
			}
		}
		return true
	})

	return user
}

// decodeUserPayload tries the known shapes of serialized user data: the
// window._sharedData page structure and the bare {"user": ...} wrapper.
func decodeUserPayload(candidate []byte) *WireUser {
	var data SharedData
	if err := json.Unmarshal(candidate, &data); err == nil {
		if pages := data.EntryData.ProfilePage; len(pages) > 0 {
			if u := pages[0].Graphql.User; u != nil && u.Username != "" {
				return u
			}
		}
	}

	var wrapped struct {
		User *WireUser `json:"user"`
	}
	if err := json.Unmarshal(candidate, &wrapped); err == nil {
		if wrapped.User != nil && wrapped.User.Username != "" {
			return wrapped.User
		}
	}

	return nil
}

// MetaContent returns the content attribute of the first meta tag with the
// given property.
func MetaContent(doc *goquery.Document, property string) string {
	if doc == nil {
		return ""
	}
	content, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
	return strings.TrimSpace(content)
}

// fullNameFromTitle applies the og:title heuristic: the text before the
// first "(" is the display name, unless it is the literal platform name.
func fullNameFromTitle(title string) string {
	if title == "" {
		return ""
	}
	if idx := strings.Index(title, "("); idx >= 0 {
		title = title[:idx]
	}
	title = strings.TrimSpace(title)
	if title == "" || title == "Instagram" {
		return ""
	}
	return title
}

// ExtractProfileData builds the best-effort profile record a page allows.
// It prefers a script-embedded user payload and falls back to cumulative
// meta-tag heuristics over a default skeleton. The result is never nil;
// absent fields keep their zero defaults.
//
// Script data on the enhanced path enriches identity fields only. Counts
// stay zero because page-embedded payloads for restricted profiles are not
// authoritative.
func ExtractProfileData(doc *goquery.Document, username string, styler AvatarStyler) *NormalizedProfile {
	profile := &NormalizedProfile{
		Username:     username,
		LimitedPosts: []ContentItem{},
	}

	if user := ExtractScriptUser(doc); user != nil {
		profile.FullName = user.FullName
		profile.Bio = user.Biography
		profile.IsVerified = user.IsVerified
		profile.UserID = user.ID
		if user.ProfilePicURLHD != "" {
			profile.ProfilePicURL = user.ProfilePicURLHD
		} else {
			profile.ProfilePicURL = user.ProfilePicURL
		}
	} else {
		// No valid script payload: all meta heuristics apply cumulatively.
		if name := fullNameFromTitle(MetaContent(doc, "og:title")); name != "" {
			profile.FullName = name
		}
		if image := MetaContent(doc, "og:image"); image != "" {
			profile.ProfilePicURL = image
		}
		if desc := MetaContent(doc, "og:description"); desc != "" {
			profile.Bio = desc
		}
	}

	if profile.ProfilePicURL == "" {
		profile.ProfilePicURL = DefaultAvatarURL(username, styler)
	}

	return profile
}
