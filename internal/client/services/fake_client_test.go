package services

import (
	"context"
	"io"
	"strings"

	"github.com/dmitrijs2005/vibejournal/internal/client/client"
	"github.com/dmitrijs2005/vibejournal/internal/client/models"
)

var _ client.Client = (*fakeClient)(nil)

// fakeClient records arguments and returns canned results.
type fakeClient struct {
	PingErr error

	LoginToken string
	LoginErr   error
	LastLogin  string

	RegisterToken string
	RegisterErr   error
	LastRegister  models.RegisterRequest
	RegisterCalls int

	OnboardingResp *models.OnboardingResponse
	OnboardingErr  error
	LastOnboarding models.Onboarding
	LastAudio      string

	ChatResp    *models.ChatResponse
	ChatErr     error
	LastText    string
	LastMorning string
	LastClip    string

	ArchiveResp *models.ArchiveResponse
	ArchiveErr  error
	LastArchive models.ArchiveRequest

	VaultResp    *models.VaultResponse
	InsightsResp *models.Insights
	LastUserID   string
	ReadErr      error

	ReactErr     error
	LastReaction models.Reaction
	FeedResp     *models.NetworkFeed
	OfferResp    *models.StatusResponse
	LastOffer    string

	RedirectURL string
	BillingErr  error
	LastPlan    models.Plan

	Media    map[string]string
	MediaErr error
	Calls    int
}

func (f *fakeClient) Ping(context.Context) error { f.Calls++; return f.PingErr }

func (f *fakeClient) Login(_ context.Context, username string, _ []byte) (string, error) {
	f.Calls++
	f.LastLogin = username
	return f.LoginToken, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, req models.RegisterRequest) (string, error) {
	f.Calls++
	f.RegisterCalls++
	f.LastRegister = req
	return f.RegisterToken, f.RegisterErr
}

func (f *fakeClient) SetupOnboarding(_ context.Context, o models.Onboarding) (*models.OnboardingResponse, error) {
	f.Calls++
	f.LastOnboarding = o
	if o.Audio != nil {
		b, _ := io.ReadAll(o.Audio.Data)
		f.LastAudio = string(b)
	}
	return f.OnboardingResp, f.OnboardingErr
}

func (f *fakeClient) ChatVoice(_ context.Context, clip models.AudioClip) (*models.ChatResponse, error) {
	f.Calls++
	b, _ := io.ReadAll(clip.Data)
	f.LastClip = string(b)
	return f.ChatResp, f.ChatErr
}

func (f *fakeClient) ChatText(_ context.Context, text string) (*models.ChatResponse, error) {
	f.Calls++
	f.LastText = text
	return f.ChatResp, f.ChatErr
}

func (f *fakeClient) ChatMorning(_ context.Context, localTime string) (*models.ChatResponse, error) {
	f.Calls++
	f.LastMorning = localTime
	return f.ChatResp, f.ChatErr
}

func (f *fakeClient) Archive(_ context.Context, req models.ArchiveRequest) (*models.ArchiveResponse, error) {
	f.Calls++
	f.LastArchive = req
	return f.ArchiveResp, f.ArchiveErr
}

func (f *fakeClient) Vault(_ context.Context, userID string) (*models.VaultResponse, error) {
	f.Calls++
	f.LastUserID = userID
	return f.VaultResp, f.ReadErr
}

func (f *fakeClient) Insights(_ context.Context, userID string) (*models.Insights, error) {
	f.Calls++
	f.LastUserID = userID
	return f.InsightsResp, f.ReadErr
}

func (f *fakeClient) React(_ context.Context, _ string, reaction models.Reaction) error {
	f.Calls++
	f.LastReaction = reaction
	return f.ReactErr
}

func (f *fakeClient) Network(context.Context) (*models.NetworkFeed, error) {
	f.Calls++
	return f.FeedResp, f.ReadErr
}

func (f *fakeClient) Offer(_ context.Context, _ string, message string) (*models.StatusResponse, error) {
	f.Calls++
	f.LastOffer = message
	return f.OfferResp, f.ReadErr
}

func (f *fakeClient) CreateCheckoutSession(_ context.Context, plan models.Plan) (string, error) {
	f.Calls++
	f.LastPlan = plan
	return f.RedirectURL, f.BillingErr
}

func (f *fakeClient) CreatePortalSession(context.Context) (string, error) {
	f.Calls++
	return f.RedirectURL, f.BillingErr
}

func (f *fakeClient) FetchMedia(_ context.Context, url string) (io.ReadCloser, error) {
	if f.MediaErr != nil {
		return nil, f.MediaErr
	}
	return io.NopCloser(strings.NewReader(f.Media[url])), nil
}
