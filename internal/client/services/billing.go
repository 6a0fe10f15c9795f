package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vibejournal/internal/client/client"
	"github.com/dmitrijs2005/vibejournal/internal/client/models"
)

// BillingService returns payment provider pages; the payment itself happens
// in the browser.
type BillingService interface {
	Checkout(ctx context.Context, plan models.Plan) (string, error)
	Portal(ctx context.Context) (string, error)
}

type billingService struct {
	client client.Client
}

func NewBillingService(c client.Client) BillingService {
	return &billingService{client: c}
}

func (s *billingService) Checkout(ctx context.Context, plan models.Plan) (string, error) {
	if err := ValidatePlan(plan); err != nil {
		return "", err
	}
	u, err := s.client.CreateCheckoutSession(ctx, plan)
	if err != nil {
		return "", fmt.Errorf("checkout: %w", err)
	}
	return u, nil
}

func (s *billingService) Portal(ctx context.Context) (string, error) {
	u, err := s.client.CreatePortalSession(ctx)
	if err != nil {
		return "", fmt.Errorf("billing portal: %w", err)
	}
	return u, nil
}
