package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/vibejournal/internal/common"
	"github.com/dmitrijs2005/vibejournal/internal/logging"
	"github.com/google/uuid"
)

// TokenSource is the part of the token store the requester needs.
type TokenSource interface {
	Load(ctx context.Context) (string, error)
	Delete(ctx context.Context) error
}

// RequestOptions describe one outbound request.
type RequestOptions struct {
	Method string
	// Header is merged over the defaults. Set Content-Type here to replace
	// the JSON default (multipart and form bodies must do so).
	Header http.Header
	Body   io.Reader
	// Public requests carry no credential and pass 401 through to the
	// caller untouched. Login and registration use them.
	Public bool
}

// Requester attaches the stored bearer credential to outbound requests and
// turns the two well-known failure statuses into errors:
//
//   - 401: the stored token is deleted and ErrSessionExpired is returned;
//   - 429: a *RateLimitError carrying the Retry-After delay is returned.
//
// Every other response, error statuses included, is returned unmodified and
// the caller owns its body. There is no retry and no timeout beyond the
// http.Client's own.
type Requester struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

func NewRequester(baseURL string, httpClient *http.Client, tokens TokenSource, log logging.Logger) *Requester {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Requester{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
		log:     log,
	}
}

// Do sends a request to path, which is either relative to the base URL or
// an absolute http(s) URL.
func (r *Requester) Do(ctx context.Context, path string, opts RequestOptions) (*http.Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, r.resolve(path), opts.Body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", common.ContentTypeJSON)
	req.Header.Set("Accept", common.ContentTypeJSON)
	for k, vv := range opts.Header {
		req.Header.Del(k)
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	if !opts.Public {
		token, err := r.tokens.Load(ctx)
		switch {
		case err == nil:
			req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
		case errors.Is(err, common.ErrNoToken):
		default:
			return nil, fmt.Errorf("load token: %w", err)
		}
	}

	start := time.Now()
	resp, err := r.http.Do(req)
	if err != nil {
		r.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	r.log.Debug(ctx, "request", "method", method, "path", path, "status", resp.StatusCode,
		"duration", time.Since(start), "request_id", requestID)

	switch {
	case resp.StatusCode == http.StatusUnauthorized && !opts.Public:
		drain(resp)
		if err := r.tokens.Delete(ctx); err != nil {
			r.log.Error(ctx, "failed to delete expired token", "error", err)
		}
		return nil, ErrSessionExpired

	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		drain(resp)
		return nil, &RateLimitError{RetryAfter: retryAfter}
	}

	return resp, nil
}

func (r *Requester) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return r.baseURL + "/" + strings.TrimLeft(path, "/")
}

// SameOrigin reports whether path resolves to the base URL's scheme and
// host. Only such requests may carry the credential.
func (r *Requester) SameOrigin(path string) bool {
	target, err := url.Parse(r.resolve(path))
	if err != nil {
		return false
	}
	base, err := url.Parse(r.baseURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(target.Scheme, base.Scheme) && strings.EqualFold(target.Host, base.Host)
}

// parseRetryAfter reads a delay in whole seconds. Anything else, HTTP dates
// included, falls back to the default.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return common.DefaultRetryAfter
	}
	return time.Duration(secs) * time.Second
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
}
