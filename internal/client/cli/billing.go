package cli

import (
	"context"

	"github.com/dmitrijs2005/vibejournal/internal/client/models"
)

// Subscribe opens a checkout session; payment happens in the browser.
func (a *App) Subscribe(ctx context.Context) error {
	plan, err := getChoice(a.reader, "Choose a plan", []string{string(models.PlanMonthly), string(models.PlanYearly)}, a.out)
	if err != nil {
		return err
	}

	url, err := a.billingService.Checkout(ctx, models.Plan(plan))
	if err != nil {
		return err
	}

	a.alerts.Info("Open this link to complete your subscription:")
	a.alerts.Println(url)
	return nil
}

func (a *App) Billing(ctx context.Context) error {
	url, err := a.billingService.Portal(ctx)
	if err != nil {
		return err
	}

	a.alerts.Info("Manage your subscription here:")
	a.alerts.Println(url)
	return nil
}
