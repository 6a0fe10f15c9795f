package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vibejournal/internal/client/models"
)

func (a *App) Network(ctx context.Context) error {
	feed, err := a.networkService.Feed(ctx)
	if err != nil {
		return err
	}
	if len(feed) == 0 {
		a.alerts.Info("No vibrations from the network yet")
		return nil
	}

	for _, v := range feed {
		a.alerts.Println(fmt.Sprintf("%s  %-10s %-12s %3d reactions  %s", v.ID, orDash(v.Mood), orDash(v.Author), v.Reactions, v.Caption))
	}
	return nil
}

func (a *App) React(ctx context.Context, vibrationID, reaction string) error {
	r := models.Reaction(strings.ToLower(reaction))
	if err := a.networkService.React(ctx, vibrationID, r); err != nil {
		return err
	}
	a.alerts.Success("Sent %s to %s", r, vibrationID)
	return nil
}

// Offer sends a short supportive note to the author of a vibration.
func (a *App) Offer(ctx context.Context, vibrationID string) error {
	message, err := getMultiline(a.reader, "Your message", a.out)
	if err != nil {
		return err
	}

	resp, err := a.networkService.Offer(ctx, vibrationID, message)
	if err != nil {
		return err
	}

	if resp.Message != "" {
		a.alerts.Success("%s", resp.Message)
	} else {
		a.alerts.Success("Offer sent")
	}
	return nil
}
