package instagram

import (
	"fmt"
	"net/url"
)

const (
	// BaseURL is the base URL for the platform's web front.
	BaseURL = "https://www.instagram.com"

	// ProfileInfoEndpoint is the JSON endpoint for full profile payloads.
	ProfileInfoEndpoint = "/api/v1/users/web_profile_info/"

	// TopSearchEndpoint is the blended profile search endpoint.
	TopSearchEndpoint = "/api/v1/web/search/topsearch/"

	// WebSearchEndpoint is the legacy web search endpoint used as a
	// search fallback.
	WebSearchEndpoint = "/web/search/topsearch/"

	// DefaultPostLimit is the number of posts returned when the caller
	// does not specify a limit.
	DefaultPostLimit = 12
)

// ProfileInfoURL constructs the URL for the profile-info JSON endpoint.
func ProfileInfoURL(base, username string) string {
	params := url.Values{}
	params.Set("username", username)
	return fmt.Sprintf("%s%s?%s", base, ProfileInfoEndpoint, params.Encode())
}

// ProfilePageURL constructs the public HTML page URL for a user.
func ProfilePageURL(base, username string) string {
	return fmt.Sprintf("%s/%s/", base, username)
}

// StoriesPageURL constructs the stories page URL for a user.
func StoriesPageURL(base, username string) string {
	return fmt.Sprintf("%s/stories/%s/", base, username)
}

// TopSearchURL constructs the URL for the blended search endpoint.
func TopSearchURL(base, query string) string {
	params := url.Values{}
	params.Set("context", "blended")
	params.Set("query", query)
	params.Set("include_reel", "true")
	return fmt.Sprintf("%s%s?%s", base, TopSearchEndpoint, params.Encode())
}

// WebSearchURL constructs the URL for the legacy web search endpoint.
func WebSearchURL(base, query string) string {
	params := url.Values{}
	params.Set("context", "blended")
	params.Set("query", query)
	return fmt.Sprintf("%s%s?%s", base, WebSearchEndpoint, params.Encode())
}

// PostURL constructs the public URL for a post shortcode.
func PostURL(shortcode string) string {
	if shortcode == "" {
		return ""
	}
	return fmt.Sprintf("%s/p/%s/", BaseURL, shortcode)
}

// IsValidUsername checks if a username is valid according to platform rules.
func IsValidUsername(username string) bool {
	if username == "" || len(username) > 30 {
		return false
	}

	// Usernames can only contain letters, numbers, periods, and underscores.
	for _, char := range username {
		if !((char >= 'a' && char <= 'z') ||
			(char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') ||
			char == '.' || char == '_') {
			return false
		}
	}

	return true
}

// SanitizeUsername removes decoration from a username as typed by a user.
func SanitizeUsername(username string) string {
	if username == "" {
		return ""
	}

	if username[0] == '@' {
		username = username[1:]
	}

	for len(username) > 0 && (username[len(username)-1] == '/' || username[len(username)-1] == ' ') {
		username = username[:len(username)-1]
	}

	return username
}
