package instagram

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"igspyglass/pkg/config"
	"igspyglass/pkg/errors"
	"igspyglass/pkg/logger"
)

// Resolver orchestrates the ordered profile acquisition strategies. The
// order is fixed at construction and identical for every call: authoritative
// sources run before best-effort ones, which keeps resolution deterministic
// for identical remote state and avoids wasting remote-call budget on
// parallel racing.
type Resolver struct {
	session        *Session
	logger         logger.Logger
	avatars        AvatarStyler
	contentTimeout time.Duration
}

// NewResolver creates a Resolver bound to a session.
func NewResolver(session *Session, cfg *config.Config, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Resolver{
		session:        session,
		logger:         log,
		avatars:        DefaultAvatarStyler,
		contentTimeout: cfg.Platform.ContentTimeout,
	}
}

// SetAvatarStyler overrides the avatar style chooser. Tests inject a fixed
// chooser to keep golden outputs deterministic.
func (r *Resolver) SetAvatarStyler(styler AvatarStyler) {
	r.avatars = styler
}

// resolutionState carries facts observed by earlier strategies into later
// ones. Once any strategy has seen the profile as private, a later strategy
// must not silently widen follower/following counts.
type resolutionState struct {
	privateSeen bool
}

// strategy is one self-contained method of acquiring profile data.
type strategy struct {
	name string
	run  func(username string, state *resolutionState) (*NormalizedProfile, error)
}

// strategies returns the ordered chain. The order must not be reordered per
// call.
func (r *Resolver) strategies() []strategy {
	return []strategy{
		{name: "profile_info_endpoint", run: r.resolveFromEndpoint},
		{name: "enhanced_html", run: r.resolveFromProfilePage},
		{name: "embedded_script", run: r.resolveFromScript},
	}
}

// Resolve produces the best available profile record for a username, or nil
// when the profile is not resolvable. A nil result is a normal outcome, not
// an error; diagnostic detail is only surfaced via logging.
func (r *Resolver) Resolve(username string) *NormalizedProfile {
	username = SanitizeUsername(username)
	if !IsValidUsername(username) {
		r.logger.WarnWithFields("invalid username", map[string]interface{}{
			"username": username,
		})
		return nil
	}

	state := &resolutionState{}
	for _, st := range r.strategies() {
		profile, err := st.run(username, state)
		if err != nil {
			var apiErr *errors.Error
			if stderrors.As(err, &apiErr) && apiErr.Type == errors.ErrorTypeNotFound {
				// A 404 from the primary endpoint is authoritative:
				// no further strategies are attempted.
				r.logger.InfoWithFields("profile not found", map[string]interface{}{
					"username": username,
					"strategy": st.name,
				})
				return nil
			}
			r.logger.DebugWithFields("strategy failed", map[string]interface{}{
				"username":  username,
				"strategy":  st.name,
				"transport": apiErr != nil && errors.IsTransport(apiErr.Type),
				"error":     err.Error(),
			})
			continue
		}
		if profile == nil {
			continue
		}

		// Privacy observed by an earlier strategy is authoritative: a
		// later, weaker strategy may not widen counts for the profile.
		if state.privateSeen && !profile.IsLimitedData {
			profile.IsPrivate = true
			profile.IsLimitedData = true
			profile.Followers = 0
			profile.Following = 0
		}

		r.logger.InfoWithFields("profile resolved", map[string]interface{}{
			"username":     profile.Username,
			"strategy":     st.name,
			"is_private":   profile.IsPrivate,
			"limited_data": profile.IsLimitedData,
		})
		return profile
	}

	r.logger.InfoWithFields("all strategies exhausted", map[string]interface{}{
		"username": username,
	})
	return nil
}

// resolveFromEndpoint is strategy 1: the profile-info JSON endpoint. Success
// requires a 200 status and a payload with a non-empty username; the result
// is fully authoritative.
func (r *Resolver) resolveFromEndpoint(username string, _ *resolutionState) (*NormalizedProfile, error) {
	resp, err := r.session.FetchJSON(ProfileInfoURL(r.session.BaseURL(), username), nil, r.contentTimeout)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.New(errors.ErrorTypeNotFound, resp.StatusCode, "profile %q not found", username)
	}
	if !resp.OK() {
		return nil, errors.New(errors.ErrorTypeStrategy, resp.StatusCode, "profile endpoint returned %d", resp.StatusCode)
	}

	var payload WebProfileResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, errors.New(errors.ErrorTypeParsing, resp.StatusCode, "malformed profile payload: %v", err)
	}

	user := payload.Data.User
	if user == nil || user.Username == "" {
		return nil, errors.New(errors.ErrorTypeStrategy, resp.StatusCode, "profile payload missing user")
	}

	return normalizeWireUser(user), nil
}

// resolveFromProfilePage is strategy 2: enhanced extraction from the profile
// HTML page. Parsing is attempted on whatever body came back, even with a
// non-200 status, because the platform sometimes serves partial HTML with
// usable meta tags on error codes. Returns nil only on a definitive 404 or a
// completely empty body.
func (r *Resolver) resolveFromProfilePage(username string, state *resolutionState) (*NormalizedProfile, error) {
	resp, err := r.session.Fetch(ProfilePageURL(r.session.BaseURL(), username), nil, htmlHeaders(), r.contentTimeout)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.New(errors.ErrorTypeStrategy, resp.StatusCode, "profile page returned 404")
	}
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil, errors.New(errors.ErrorTypeStrategy, resp.StatusCode, "profile page body empty")
	}

	rawHTML := string(resp.Body)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, errors.New(errors.ErrorTypeParsing, resp.StatusCode, "failed to parse profile page: %v", err)
	}

	isPrivate := DetectPrivate(rawHTML, doc)
	if isPrivate {
		state.privateSeen = true
	}

	profile := ExtractProfileData(doc, username, r.avatars)
	profile.Username = username
	profile.IsPrivate = isPrivate
	profile.IsLimitedData = isPrivate

	if isPrivate {
		profile.LimitedPosts = SalvagePreview(doc, username, r.avatars)
		profile.HasPreviewContent = len(profile.LimitedPosts) > 0
		profile.PostsCount = len(profile.LimitedPosts)
	}

	return profile, nil
}

// resolveFromScript is strategy 3: the script-embedded payload alone. Used
// only when both earlier strategies failed; when the payload is present it
// mirrors strategy 1's data richness and is treated as authoritative, unless
// an earlier strategy already flagged the profile private.
func (r *Resolver) resolveFromScript(username string, _ *resolutionState) (*NormalizedProfile, error) {
	resp, err := r.session.Fetch(ProfilePageURL(r.session.BaseURL(), username), nil, htmlHeaders(), r.contentTimeout)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, errors.New(errors.ErrorTypeStrategy, resp.StatusCode, "profile page returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, errors.New(errors.ErrorTypeParsing, resp.StatusCode, "failed to parse profile page: %v", err)
	}

	user := ExtractScriptUser(doc)
	if user == nil || user.Username == "" {
		return nil, errors.New(errors.ErrorTypeStrategy, resp.StatusCode, "no embedded script payload")
	}

	return normalizeWireUser(user), nil
}

// normalizeWireUser converts an authoritative platform user object into the
// normalized schema.
func normalizeWireUser(user *WireUser) *NormalizedProfile {
	pic := user.ProfilePicURLHD
	if pic == "" {
		pic = user.ProfilePicURL
	}

	return &NormalizedProfile{
		Username:          user.Username,
		FullName:          user.FullName,
		Bio:               user.Biography,
		ProfilePicURL:     pic,
		Followers:         user.EdgeFollowedBy.Count,
		Following:         user.EdgeFollow.Count,
		PostsCount:        user.EdgeOwnerToTimelineMedia.Count,
		IsPrivate:         user.IsPrivate,
		IsVerified:        user.IsVerified,
		ExternalURL:       user.ExternalURL,
		UserID:            user.ID,
		IsLimitedData:     false,
		HasPreviewContent: false,
		LimitedPosts:      []ContentItem{},
	}
}

// htmlHeaders returns the per-call headers for HTML page fetches.
func htmlHeaders() map[string]string {
	return map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Upgrade-Insecure-Requests": "1",
	}
}
