package cli

import (
	"context"
	"errors"
	"math"

	"github.com/dmitrijs2005/vibejournal/internal/client/client"
	"github.com/dmitrijs2005/vibejournal/internal/common"
)

// report turns a command error into a notice. It is the single place where
// an expired session sends the App back to the logged-out state, whatever
// command hit it.
func (a *App) report(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var (
		rateLimited *client.RateLimitError
		apiErr      *client.APIError
	)

	switch {
	case errors.Is(err, context.Canceled):
		a.alerts.Warning("Cancelled")

	case errors.Is(err, client.ErrSessionExpired):
		a.dropSession()
		a.alerts.Warning("Your session has expired, please log in again")

	case errors.As(err, &rateLimited):
		a.alerts.Warning("Too many requests, try again in %d seconds", int(math.Ceil(rateLimited.RetryAfter.Seconds())))

	case errors.Is(err, common.ErrValidation):
		a.alerts.Warning("%v", err)

	case errors.Is(err, common.ErrNotLoggedIn):
		a.alerts.Warning("Please log in first")

	case errors.Is(err, client.ErrInvalidCredentials):
		a.alerts.Error("Invalid username or password")

	case errors.Is(err, client.ErrEmailNotVerified):
		a.alerts.Error("Please verify your email address before logging in")

	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ctx, ModeOffline)
		a.alerts.Error("Connection lost, check your network and try again")

	case errors.As(err, &apiErr):
		if apiErr.Detail != "" {
			a.alerts.Error("%s", apiErr.Detail)
		} else {
			a.alerts.Error("Request failed with status %d", apiErr.Status)
		}

	default:
		a.log.Error(ctx, "command failed", "error", err)
		a.alerts.Error("Something went wrong: %v", err)
	}
}
