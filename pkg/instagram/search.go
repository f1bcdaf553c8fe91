package instagram

import (
	"encoding/json"
	"strings"

	"igspyglass/pkg/errors"
)

// MaxSearchResults bounds how many hits a single search returns.
const MaxSearchResults = 15

// SearchProfiles looks up profiles matching a query. Like resolution it walks
// an ordered chain of acquisition paths and returns the first non-empty
// outcome: the top-search endpoint, then the web-search endpoint, then a
// direct resolve of the query treated as a username. Failures produce an
// empty slice, never an error.
func (r *Resolver) SearchProfiles(query string) []SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchResult{}
	}

	log := r.logger.WithField("query", query)

	if results, err := r.searchEndpoint(TopSearchURL(r.session.BaseURL(), query)); err == nil && len(results) > 0 {
		log.WithField("results", len(results)).Debug("top search succeeded")
		return results
	} else if err != nil {
		log.WithError(err).Debug("top search failed")
	}

	if results, err := r.searchEndpoint(WebSearchURL(r.session.BaseURL(), query)); err == nil && len(results) > 0 {
		log.WithField("results", len(results)).Debug("web search succeeded")
		return results
	} else if err != nil {
		log.WithError(err).Debug("web search failed")
	}

	// Last resort: the query may itself be an exact username.
	if profile := r.Resolve(query); profile != nil {
		log.Debug("direct username probe succeeded")
		return []SearchResult{{
			Username:      profile.Username,
			FullName:      profile.FullName,
			ProfilePicURL: profile.ProfilePicURL,
			IsVerified:    profile.IsVerified,
			IsPrivate:     profile.IsPrivate,
			FollowerCount: profile.Followers,
		}}
	}

	log.Debug("all search paths exhausted")
	return []SearchResult{}
}

func (r *Resolver) searchEndpoint(endpoint string) ([]SearchResult, error) {
	resp, err := r.session.FetchJSON(endpoint, nil, r.contentTimeout)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, errors.New(errors.ErrorTypeStrategy, resp.StatusCode, "search endpoint returned %d", resp.StatusCode)
	}

	var payload TopSearchResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, errors.New(errors.ErrorTypeParsing, resp.StatusCode, "malformed search payload: %v", err)
	}

	results := make([]SearchResult, 0, len(payload.Users))
	for _, hit := range payload.Users {
		if hit.User.Username == "" {
			continue
		}
		results = append(results, SearchResult{
			Username:             hit.User.Username,
			FullName:             hit.User.FullName,
			ProfilePicURL:        hit.User.ProfilePicURL,
			IsVerified:           hit.User.IsVerified,
			IsPrivate:            hit.User.IsPrivate,
			FollowerCount:        hit.User.FollowerCount,
			MutualFollowersCount: hit.User.MutualFollowersCount,
		})
		if len(results) == MaxSearchResults {
			break
		}
	}
	return results, nil
}
