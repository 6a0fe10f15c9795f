package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vibejournal/internal/client/client"
	"github.com/dmitrijs2005/vibejournal/internal/client/models"
)

// NetworkService is the social feed of other users' vibrations.
type NetworkService interface {
	Feed(ctx context.Context) ([]models.Vibration, error)
	React(ctx context.Context, vibrationID string, reaction models.Reaction) error
	Offer(ctx context.Context, vibrationID, message string) (*models.StatusResponse, error)
}

type networkService struct {
	client client.Client
}

func NewNetworkService(c client.Client) NetworkService {
	return &networkService{client: c}
}

func (s *networkService) Feed(ctx context.Context) ([]models.Vibration, error) {
	resp, err := s.client.Network(ctx)
	if err != nil {
		return nil, fmt.Errorf("network feed: %w", err)
	}
	return resp.Vibrations, nil
}

func (s *networkService) React(ctx context.Context, vibrationID string, reaction models.Reaction) error {
	if strings.TrimSpace(vibrationID) == "" {
		return validationErr("vibration id is required")
	}
	if err := ValidateReaction(reaction); err != nil {
		return err
	}

	if err := s.client.React(ctx, vibrationID, reaction); err != nil {
		return fmt.Errorf("react: %w", err)
	}
	return nil
}

func (s *networkService) Offer(ctx context.Context, vibrationID, message string) (*models.StatusResponse, error) {
	if strings.TrimSpace(vibrationID) == "" {
		return nil, validationErr("vibration id is required")
	}
	if err := ValidateText("message", message, maxOfferLen); err != nil {
		return nil, err
	}

	resp, err := s.client.Offer(ctx, vibrationID, message)
	if err != nil {
		return nil, fmt.Errorf("offer: %w", err)
	}
	return resp, nil
}
