package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/vibejournal/internal/client/tokenstore"
	"github.com/dmitrijs2005/vibejournal/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method string
	path   string
	header http.Header
	body   string
}

func newRecordingServer(t *testing.T, status int, respHeader http.Header) (*httptest.Server, *captured) {
	t.Helper()
	c := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		c.method, c.path, c.header, c.body = r.Method, r.URL.Path, r.Header.Clone(), string(b)
		for k, vv := range respHeader {
			for _, v := range vv {
				w.Header().Add(k, v)
			}
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv, c
}

func storeWith(t *testing.T, token string) *tokenstore.MemoryStore {
	t.Helper()
	s := tokenstore.NewMemoryStore()
	if token != "" {
		require.NoError(t, s.Save(context.Background(), token))
	}
	return s
}

func TestRequester_AttachesBearerToken(t *testing.T) {
	srv, got := newRecordingServer(t, http.StatusOK, nil)
	r := NewRequester(srv.URL, srv.Client(), storeWith(t, "abc123"), logging.NewNop())

	resp, err := r.Do(context.Background(), "/vault/1", RequestOptions{})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer abc123", got.header.Get("Authorization"))
	assert.Equal(t, "/vault/1", got.path)
	assert.Equal(t, http.MethodGet, got.method)
	assert.NotEmpty(t, got.header.Get("X-Request-ID"))
}

func TestRequester_NoTokenNoHeader(t *testing.T) {
	srv, got := newRecordingServer(t, http.StatusOK, nil)
	r := NewRequester(srv.URL, srv.Client(), storeWith(t, ""), logging.NewNop())

	resp, err := r.Do(context.Background(), "vault/1", RequestOptions{Method: http.MethodPost})
	require.NoError(t, err)
	resp.Body.Close()

	_, present := got.header["Authorization"]
	assert.False(t, present)
	assert.Equal(t, "/vault/1", got.path)
}

func TestRequester_PublicRequestsCarryNoToken(t *testing.T) {
	srv, got := newRecordingServer(t, http.StatusOK, nil)
	r := NewRequester(srv.URL, srv.Client(), storeWith(t, "abc123"), logging.NewNop())

	resp, err := r.Do(context.Background(), "/auth/login", RequestOptions{Method: http.MethodPost, Public: true})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, got.header.Get("Authorization"))
}

func TestRequester_HeaderMerging(t *testing.T) {
	tests := []struct {
		name        string
		header      http.Header
		contentType string
	}{
		{name: "default json", header: nil, contentType: "application/json"},
		{name: "override", header: http.Header{"Content-Type": {"multipart/form-data; boundary=x"}}, contentType: "multipart/form-data; boundary=x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, got := newRecordingServer(t, http.StatusOK, nil)
			r := NewRequester(srv.URL, srv.Client(), storeWith(t, "abc123"), logging.NewNop())

			h := tt.header.Clone()
			if h == nil {
				h = http.Header{}
			}
			h.Set("X-Client", "cli")

			resp, err := r.Do(context.Background(), "/chat/text", RequestOptions{
				Method: http.MethodPost,
				Header: h,
				Body:   strings.NewReader(`{"text":"hi"}`),
			})
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tt.contentType, got.header.Get("Content-Type"))
			assert.Equal(t, "cli", got.header.Get("X-Client"))
			assert.Equal(t, "Bearer abc123", got.header.Get("Authorization"))
			assert.Equal(t, `{"text":"hi"}`, got.body)
		})
	}
}

func TestRequester_UnauthorizedDeletesTokenForAnyMethodAndPath(t *testing.T) {
	cases := []struct{ method, path string }{
		{http.MethodGet, "/vault/1"},
		{http.MethodPost, "/chat/voice"},
		{http.MethodPost, "/stripe/create-portal-session"},
		{http.MethodDelete, "/anything"},
	}

	for _, c := range cases {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			srv, _ := newRecordingServer(t, http.StatusUnauthorized, nil)
			store := storeWith(t, "abc123")
			r := NewRequester(srv.URL, srv.Client(), store, logging.NewNop())

			resp, err := r.Do(context.Background(), c.path, RequestOptions{Method: c.method})
			assert.Nil(t, resp)
			require.ErrorIs(t, err, ErrSessionExpired)

			_, err = store.Load(context.Background())
			assert.ErrorIs(t, err, tokenstore.ErrNoToken)
		})
	}
}

func TestRequester_PublicUnauthorizedPassesThrough(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusUnauthorized, nil)
	store := storeWith(t, "abc123")
	r := NewRequester(srv.URL, srv.Client(), store, logging.NewNop())

	resp, err := r.Do(context.Background(), "/auth/login", RequestOptions{Method: http.MethodPost, Public: true})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	tok, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", tok)
}

func TestRequester_RateLimited(t *testing.T) {
	tests := []struct {
		name       string
		retryAfter string
		want       time.Duration
	}{
		{name: "header present", retryAfter: "120", want: 120 * time.Second},
		{name: "header absent", retryAfter: "", want: 60 * time.Second},
		{name: "http date falls back", retryAfter: "Wed, 21 Oct 2026 07:28:00 GMT", want: 60 * time.Second},
		{name: "negative falls back", retryAfter: "-5", want: 60 * time.Second},
		{name: "zero", retryAfter: "0", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.retryAfter != "" {
				h.Set("Retry-After", tt.retryAfter)
			}
			srv, _ := newRecordingServer(t, http.StatusTooManyRequests, h)
			store := storeWith(t, "abc123")
			r := NewRequester(srv.URL, srv.Client(), store, logging.NewNop())

			resp, err := r.Do(context.Background(), "/chat/text", RequestOptions{Method: http.MethodPost})
			assert.Nil(t, resp)
			require.ErrorIs(t, err, ErrRateLimited)

			var rl *RateLimitError
			require.True(t, errors.As(err, &rl))
			assert.Equal(t, tt.want, rl.RetryAfter)

			_, err = store.Load(context.Background())
			assert.NoError(t, err, "rate limiting must not drop the session")
		})
	}
}

func TestRequester_OtherStatusesReturnedUnmodified(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusForbidden, http.StatusInternalServerError} {
		srv, _ := newRecordingServer(t, status, nil)
		r := NewRequester(srv.URL, srv.Client(), storeWith(t, "abc123"), logging.NewNop())

		resp, err := r.Do(context.Background(), "/insights/1", RequestOptions{})
		require.NoError(t, err)
		assert.Equal(t, status, resp.StatusCode)

		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, `{"ok":true}`, string(b))
	}
}

func TestRequester_AbsoluteURL(t *testing.T) {
	srv, got := newRecordingServer(t, http.StatusOK, nil)
	r := NewRequester("http://unused.invalid", srv.Client(), storeWith(t, "abc123"), logging.NewNop())

	resp, err := r.Do(context.Background(), srv.URL+"/media/clip.mp3", RequestOptions{})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "/media/clip.mp3", got.path)
}

func TestRequester_TransportFailureIsUnavailable(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusOK, nil)
	url := srv.URL
	srv.Close()

	r := NewRequester(url, nil, storeWith(t, ""), logging.NewNop())

	_, err := r.Do(context.Background(), "/health", RequestOptions{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

type failingStore struct{ err error }

func (f failingStore) Load(context.Context) (string, error) { return "", f.err }
func (f failingStore) Delete(context.Context) error         { return f.err }

func TestRequester_TokenLoadErrorStopsRequest(t *testing.T) {
	srv, got := newRecordingServer(t, http.StatusOK, nil)
	boom := errors.New("db locked")
	r := NewRequester(srv.URL, srv.Client(), failingStore{err: boom}, logging.NewNop())

	_, err := r.Do(context.Background(), "/vault/1", RequestOptions{})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, got.path, "request must not be sent")
}

func TestRequester_SameOrigin(t *testing.T) {
	r := NewRequester("https://api.example.org/v1", nil, storeWith(t, ""), logging.NewNop())

	tests := []struct {
		path string
		want bool
	}{
		{path: "/media/clip.mp3", want: true},
		{path: "https://API.example.org/media/clip.mp3", want: true},
		{path: "http://api.example.org/media/clip.mp3", want: false},
		{path: "https://api.example.org:8443/clip.mp3", want: false},
		{path: "https://cdn.example.org/clip.mp3", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, r.SameOrigin(tt.path))
		})
	}
}
