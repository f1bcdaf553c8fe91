package instagram

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igspyglass/pkg/config"
	"igspyglass/pkg/errors"
	"igspyglass/pkg/logger"
	"igspyglass/pkg/ratelimit"
)

func newTestSession(t *testing.T, handler http.Handler) (*Session, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.DefaultConfig()
	session := NewSession(&cfg.Platform, ratelimit.Unlimited{}, logger.NewTestLogger())
	session.SetBaseURL(server.URL)
	return session, server
}

func TestFetchReturnsResponseForAnyStatus(t *testing.T) {
	for _, status := range []int{200, 404, 403, 429, 500} {
		session, server := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			fmt.Fprint(w, "body content")
		}))

		resp, err := session.Fetch(server.URL+"/x", nil, nil, 2*time.Second)
		require.NoError(t, err, "completed exchanges never produce errors, status %d", status)
		assert.Equal(t, status, resp.StatusCode)
		assert.Equal(t, "body content", string(resp.Body))
		assert.Equal(t, status == 200, resp.OK())
	}
}

func TestFetchSendsPlatformHeaders(t *testing.T) {
	var got http.Header
	session, server := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))

	_, err := session.Fetch(server.URL+"/x", nil, map[string]string{"Accept": "application/json"}, 2*time.Second)
	require.NoError(t, err)

	assert.Equal(t, "936619743392459", got.Get("X-IG-App-ID"))
	assert.Equal(t, "XMLHttpRequest", got.Get("X-Requested-With"))
	assert.Equal(t, "application/json", got.Get("Accept"), "per-call headers override session headers")
	assert.NotEmpty(t, got.Get("User-Agent"))
}

func TestSetHeaderPersistsAcrossCalls(t *testing.T) {
	var got http.Header
	session, server := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))

	session.SetHeader("X-IG-App-ID", "override-app-id")
	session.SetHeader("X-Extra", "sticky")

	for i := 0; i < 2; i++ {
		_, err := session.Fetch(server.URL+"/x", nil, nil, 2*time.Second)
		require.NoError(t, err)
		assert.Equal(t, "override-app-id", got.Get("X-IG-App-ID"))
		assert.Equal(t, "sticky", got.Get("X-Extra"))
	}
}

func TestFetchAppendsQueryParams(t *testing.T) {
	var gotQuery url.Values
	session, server := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
	}))

	params := url.Values{}
	params.Set("username", "someone")
	_, err := session.Fetch(server.URL+"/api?existing=1", params, nil, 2*time.Second)
	require.NoError(t, err)

	assert.Equal(t, "someone", gotQuery.Get("username"))
	assert.Equal(t, "1", gotQuery.Get("existing"))
}

func TestFetchConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	serverURL := server.URL
	server.Close()

	cfg := config.DefaultConfig()
	session := NewSession(&cfg.Platform, ratelimit.Unlimited{}, logger.NewTestLogger())
	session.SetBaseURL(serverURL)

	resp, err := session.Fetch(serverURL+"/x", nil, nil, 2*time.Second)
	assert.Nil(t, resp)
	require.Error(t, err)

	var apiErr *errors.Error
	require.True(t, stderrors.As(err, &apiErr))
	assert.Equal(t, errors.ErrorTypeConnection, apiErr.Type)
	assert.True(t, errors.IsTransport(apiErr.Type))
}

func TestFetchTimeout(t *testing.T) {
	session, server := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))

	resp, err := session.Fetch(server.URL+"/slow", nil, nil, 50*time.Millisecond)
	assert.Nil(t, resp)
	require.Error(t, err)

	var apiErr *errors.Error
	require.True(t, stderrors.As(err, &apiErr))
	assert.Equal(t, errors.ErrorTypeTimeout, apiErr.Type)
}

func TestCSRFTokenFromLiveJar(t *testing.T) {
	var tokens []string
	mux := http.NewServeMux()
	mux.HandleFunc("/seed", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "token-abc", Path: "/"})
	})
	mux.HandleFunc("/check", func(w http.ResponseWriter, r *http.Request) {
		tokens = append(tokens, r.Header.Get("X-CSRFToken"))
	})

	session, server := newTestSession(t, mux)

	// Before any cookie arrives, no token header is sent.
	_, err := session.Fetch(server.URL+"/check", nil, nil, 2*time.Second)
	require.NoError(t, err)

	// Seeding the jar makes every following request carry the token.
	_, err = session.Fetch(server.URL+"/seed", nil, nil, 2*time.Second)
	require.NoError(t, err)
	_, err = session.Fetch(server.URL+"/check", nil, nil, 2*time.Second)
	require.NoError(t, err)

	require.Len(t, tokens, 2)
	assert.Equal(t, "", tokens[0])
	assert.Equal(t, "token-abc", tokens[1])
}

func TestBootstrapToleratesFailure(t *testing.T) {
	log := logger.NewTestLogger()
	cfg := config.DefaultConfig()
	session := NewSession(&cfg.Platform, ratelimit.Unlimited{}, log)
	session.SetBaseURL("http://127.0.0.1:1")

	session.Bootstrap(200 * time.Millisecond)
	assert.True(t, log.HasMessage("WARN", "session bootstrap failed"))
}
