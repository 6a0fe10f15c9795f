package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/vibejournal/internal/client/models"
)

const maxErrorBody = 64 << 10

var _ Client = (*HTTPClient)(nil)

// HTTPClient implements Client on top of a Requester.
type HTTPClient struct {
	r *Requester
}

func NewHTTPClient(r *Requester) *HTTPClient {
	return &HTTPClient{r: r}
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.r.Do(ctx, "/health", RequestOptions{Method: http.MethodGet, Public: true})
	if err != nil {
		return err
	}
	drain(resp)
	if resp.StatusCode >= 300 {
		return ErrUnavailable
	}
	return nil
}

// Login exchanges credentials for an access token using the form-encoded
// password grant.
func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", string(password))

	resp, err := c.r.Do(ctx, "/auth/login", RequestOptions{
		Method: http.MethodPost,
		Header: http.Header{"Content-Type": {"application/x-www-form-urlencoded"}},
		Body:   strings.NewReader(form.Encode()),
		Public: true,
	})
	if err != nil {
		return "", err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusBadRequest:
		drain(resp)
		return "", ErrInvalidCredentials
	case http.StatusForbidden:
		drain(resp)
		return "", ErrEmailNotVerified
	}

	var out models.TokenResponse
	if err := decode(resp, &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	var out models.TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &out, true); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

func (c *HTTPClient) SetupOnboarding(ctx context.Context, o models.Onboarding) (*models.OnboardingResponse, error) {
	fields := [][2]string{
		{"personality", string(o.Personality)},
		{"focus", string(o.Focus)},
	}

	var out models.OnboardingResponse
	if err := c.doMultipart(ctx, "/auth/setup-onboarding", fields, o.Audio, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ChatVoice(ctx context.Context, clip models.AudioClip) (*models.ChatResponse, error) {
	var out models.ChatResponse
	if err := c.doMultipart(ctx, "/chat/voice", nil, &clip, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ChatText(ctx context.Context, text string) (*models.ChatResponse, error) {
	var out models.ChatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chat/text", models.TextMessage{Text: text}, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ChatMorning(ctx context.Context, localTime string) (*models.ChatResponse, error) {
	var out models.ChatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chat/morning", models.MorningRequest{LocalTime: localTime}, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Archive(ctx context.Context, req models.ArchiveRequest) (*models.ArchiveResponse, error) {
	var out models.ArchiveResponse
	if err := c.doJSON(ctx, http.MethodPost, "/vault/archive", req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Vault(ctx context.Context, userID string) (*models.VaultResponse, error) {
	var out models.VaultResponse
	if err := c.doJSON(ctx, http.MethodGet, "/vault/"+url.PathEscape(userID), nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Insights(ctx context.Context, userID string) (*models.Insights, error) {
	var out models.Insights
	if err := c.doJSON(ctx, http.MethodGet, "/insights/"+url.PathEscape(userID), nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) React(ctx context.Context, vibrationID string, reaction models.Reaction) error {
	req := models.ReactRequest{VibrationID: vibrationID, Reaction: reaction}
	return c.doJSON(ctx, http.MethodPost, "/vibrations/react", req, nil, false)
}

func (c *HTTPClient) Network(ctx context.Context) (*models.NetworkFeed, error) {
	var out models.NetworkFeed
	if err := c.doJSON(ctx, http.MethodGet, "/vibrations/network", nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Offer(ctx context.Context, vibrationID, message string) (*models.StatusResponse, error) {
	var out models.StatusResponse
	req := models.OfferRequest{VibrationID: vibrationID, Message: message}
	if err := c.doJSON(ctx, http.MethodPost, "/network/offer", req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateCheckoutSession(ctx context.Context, plan models.Plan) (string, error) {
	var out models.RedirectResponse
	if err := c.doJSON(ctx, http.MethodPost, "/stripe/create-checkout-session", models.CheckoutRequest{Plan: plan}, &out, false); err != nil {
		return "", err
	}
	return out.URL, nil
}

func (c *HTTPClient) CreatePortalSession(ctx context.Context) (string, error) {
	var out models.RedirectResponse
	if err := c.doJSON(ctx, http.MethodPost, "/stripe/create-portal-session", struct{}{}, &out, false); err != nil {
		return "", err
	}
	return out.URL, nil
}

// FetchMedia downloads a clip or image. Media on another host (a CDN or blob
// store) is fetched without the credential, and its 401 does not end the
// session.
func (c *HTTPClient) FetchMedia(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	resp, err := c.r.Do(ctx, rawURL, RequestOptions{
		Method: http.MethodGet,
		Header: http.Header{"Accept": {"*/*"}},
		Public: !c.r.SameOrigin(rawURL),
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, newAPIError(resp)
	}
	return resp.Body, nil
}

// doJSON sends in (nil for no body) and decodes a 2xx answer into out
// (nil to discard it).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any, public bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	resp, err := c.r.Do(ctx, path, RequestOptions{Method: method, Body: body, Public: public})
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// doMultipart posts fields and an optional audio file part named "file".
// The JSON content type default is replaced with the multipart one carrying
// the boundary.
func (c *HTTPClient) doMultipart(ctx context.Context, path string, fields [][2]string, clip *models.AudioClip, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	if clip != nil && clip.Data != nil {
		name := clip.Filename
		if name == "" {
			name = "recording.m4a"
		}
		part, err := w.CreateFormFile("file", name)
		if err != nil {
			return fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, clip.Data); err != nil {
			return fmt.Errorf("copy audio: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return err
	}

	resp, err := c.r.Do(ctx, path, RequestOptions{
		Method: http.MethodPost,
		Header: http.Header{"Content-Type": {w.FormDataContentType()}},
		Body:   &buf,
	})
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// decode consumes resp. Non-2xx statuses become *APIError.
func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var er models.ErrorResponse
	if err := json.Unmarshal(b, &er); err != nil {
		apiErr.Detail = strings.TrimSpace(string(b))
		return apiErr
	}

	apiErr.Detail = detailText(er.Detail)
	return apiErr
}

// detailText flattens the backend detail: a string, or a list of
// {"loc": [...], "msg": "..."} validation items.
func detailText(d any) string {
	switch v := d.(type) {
	case string:
		return v
	case []any:
		msgs := make([]string, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			msg, _ := m["msg"].(string)
			if loc, ok := m["loc"].([]any); ok && len(loc) > 0 {
				if field, ok := loc[len(loc)-1].(string); ok {
					msg = field + ": " + msg
				}
			}
			if msg != "" {
				msgs = append(msgs, msg)
			}
		}
		return strings.Join(msgs, "; ")
	default:
		return ""
	}
}
