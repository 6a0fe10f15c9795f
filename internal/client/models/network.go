package models

// Reaction is a fixed set of responses to someone else's vibration.
type Reaction string

const (
	ReactionHeart   Reaction = "heart"
	ReactionHug     Reaction = "hug"
	ReactionSpark   Reaction = "spark"
	ReactionSupport Reaction = "support"
)

var Reactions = []Reaction{ReactionHeart, ReactionHug, ReactionSpark, ReactionSupport}

type ReactRequest struct {
	VibrationID string   `json:"vibration_id"`
	Reaction    Reaction `json:"reaction"`
}

type NetworkFeed struct {
	Vibrations []Vibration `json:"vibrations"`
}

type OfferRequest struct {
	VibrationID string `json:"vibration_id"`
	Message     string `json:"message"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
