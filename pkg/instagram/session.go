package instagram

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"igspyglass/pkg/config"
	"igspyglass/pkg/errors"
	"igspyglass/pkg/logger"
	"igspyglass/pkg/ratelimit"
)

// Response is the outcome of a completed HTTP exchange. It is returned for
// every response the remote produced, including non-200 statuses, because
// some strategies parse partial bodies served with error codes.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// OK reports whether the response carries a 200 status.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode == http.StatusOK
}

// Session is a persistent client session against the remote platform. The
// cookie jar accumulates across calls and is never reset mid-resolution; the
// CSRF token header is derived from the live jar on every request, not cached
// at construction.
type Session struct {
	client  *http.Client
	jar     *cookiejar.Jar
	baseURL string

	mu      sync.Mutex
	headers map[string]string

	limiter ratelimit.Limiter
	logger  logger.Logger
}

// NewSession creates a session with the platform-mandated headers. The
// limiter, when non-nil, paces every outbound request.
func NewSession(cfg *config.PlatformConfig, limiter ratelimit.Limiter, log logger.Logger) *Session {
	if log == nil {
		log = logger.GetLogger()
	}

	jar, _ := cookiejar.New(nil)

	return &Session{
		client:  &http.Client{Jar: jar},
		jar:     jar,
		baseURL: BaseURL,
		headers: map[string]string{
			"User-Agent":       cfg.UserAgent,
			"Accept":           "*/*",
			"Accept-Language":  "en-US,en;q=0.9",
			"Connection":       "keep-alive",
			"Sec-Fetch-Dest":   "empty",
			"Sec-Fetch-Mode":   "cors",
			"Sec-Fetch-Site":   "same-origin",
			"X-Requested-With": "XMLHttpRequest",
			"X-IG-App-ID":      cfg.AppID,
		},
		limiter: limiter,
		logger:  log,
	}
}

// SetBaseURL overrides the remote base URL. Used by tests to point the
// session at a local server.
func (s *Session) SetBaseURL(base string) {
	s.baseURL = base
}

// BaseURL returns the session's remote base URL.
func (s *Session) BaseURL() string {
	return s.baseURL
}

// SetHeader sets a session-wide header.
func (s *Session) SetHeader(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headers[key] = value
}

// SetHTTPClient swaps the underlying HTTP client. Used by tests.
func (s *Session) SetHTTPClient(client *http.Client) {
	if client.Jar == nil {
		client.Jar = s.jar
	}
	s.client = client
}

// Bootstrap visits the platform's front page to seed the cookie jar.
// Failures are logged and tolerated: later requests simply run without the
// bootstrap cookies.
func (s *Session) Bootstrap(timeout time.Duration) {
	resp, err := s.Fetch(s.baseURL, nil, nil, timeout)
	if err != nil {
		s.logger.WithError(err).Warn("session bootstrap failed")
		return
	}
	if !resp.OK() {
		s.logger.WarnWithFields("session bootstrap returned non-200", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return
	}
	s.logger.DebugWithFields("session bootstrapped", map[string]interface{}{
		"csrf_present": s.csrfToken() != "",
	})
}

// Fetch performs a GET request. It returns a Response for any completed HTTP
// exchange, regardless of status code, and a typed error only for transport
// failures (timeout, connection, other). It never panics and never returns an
// untyped error, so every caller has exactly one failure path to handle.
func (s *Session) Fetch(rawURL string, params url.Values, headers map[string]string, timeout time.Duration) (*Response, error) {
	if s.limiter != nil {
		s.limiter.Wait()
	}

	if len(params) > 0 {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, errors.New(errors.ErrorTypeOther, 0, "invalid URL %q: %v", rawURL, err)
		}
		q := u.Query()
		for key, values := range params {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		u.RawQuery = q.Encode()
		rawURL = u.String()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.New(errors.ErrorTypeOther, 0, "failed to create request: %v", err)
	}

	s.mu.Lock()
	for key, value := range s.headers {
		req.Header.Set(key, value)
	}
	s.mu.Unlock()

	// CSRF token comes from the live jar, never from a cached value.
	if token := s.csrfToken(); token != "" {
		req.Header.Set("X-CSRFToken", token)
	}
	req.Header.Set("Referer", s.baseURL+"/")

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		typed := classifyTransport(err)
		s.logger.DebugWithFields("request failed", map[string]interface{}{
			"url":      rawURL,
			"kind":     string(typed.Type),
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, typed
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		typed := classifyTransport(err)
		s.logger.DebugWithFields("failed to read response body", map[string]interface{}{
			"url":   rawURL,
			"error": err.Error(),
		})
		return nil, typed
	}

	s.logger.DebugWithFields("request completed", map[string]interface{}{
		"url":      rawURL,
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		Header:     resp.Header,
	}, nil
}

// FetchJSON performs a GET request and returns the response for the caller to
// decode, with the common status logging applied.
func (s *Session) FetchJSON(rawURL string, params url.Values, timeout time.Duration) (*Response, error) {
	headers := map[string]string{"Accept": "application/json"}
	return s.Fetch(rawURL, params, headers, timeout)
}

// csrfToken reads the csrftoken cookie from the current jar state.
func (s *Session) csrfToken() string {
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return ""
	}
	for _, cookie := range s.jar.Cookies(base) {
		if cookie.Name == "csrftoken" {
			return cookie.Value
		}
	}
	return ""
}

// classifyTransport maps a transport error onto the failure taxonomy.
func classifyTransport(err error) *errors.Error {
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.New(errors.ErrorTypeTimeout, 0, "request timed out: %v", err)
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.New(errors.ErrorTypeTimeout, 0, "request timed out: %v", err)
	}

	var opErr *net.OpError
	if stderrors.As(err, &opErr) {
		return errors.New(errors.ErrorTypeConnection, 0, "connection failed: %v", err)
	}
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) {
		return errors.New(errors.ErrorTypeConnection, 0, "connection failed: %v", err)
	}

	return errors.New(errors.ErrorTypeOther, 0, "transport failure: %v", err)
}
