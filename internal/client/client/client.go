package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/vibejournal/internal/client/models"
)

// Client is the backend contract consumed by the services.
type Client interface {
	Ping(ctx context.Context) error

	Login(ctx context.Context, username string, password []byte) (string, error)
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
	SetupOnboarding(ctx context.Context, o models.Onboarding) (*models.OnboardingResponse, error)

	ChatVoice(ctx context.Context, clip models.AudioClip) (*models.ChatResponse, error)
	ChatText(ctx context.Context, text string) (*models.ChatResponse, error)
	ChatMorning(ctx context.Context, localTime string) (*models.ChatResponse, error)

	Archive(ctx context.Context, req models.ArchiveRequest) (*models.ArchiveResponse, error)
	Vault(ctx context.Context, userID string) (*models.VaultResponse, error)
	Insights(ctx context.Context, userID string) (*models.Insights, error)

	React(ctx context.Context, vibrationID string, reaction models.Reaction) error
	Network(ctx context.Context) (*models.NetworkFeed, error)
	Offer(ctx context.Context, vibrationID, message string) (*models.StatusResponse, error)

	CreateCheckoutSession(ctx context.Context, plan models.Plan) (string, error)
	CreatePortalSession(ctx context.Context) (string, error)

	// FetchMedia downloads a generated clip or image. url may be relative
	// to the backend base URL.
	FetchMedia(ctx context.Context, url string) (io.ReadCloser, error)
}
