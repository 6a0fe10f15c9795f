// Package models defines the client-side shapes of backend requests and
// responses. Field names follow the backend's JSON contract.
package models

// Personality is the assistant tone chosen during onboarding.
type Personality string

const (
	PersonalityGentle  Personality = "gentle"
	PersonalityDirect  Personality = "direct"
	PersonalityPlayful Personality = "playful"
	PersonalityStoic   Personality = "stoic"
)

// Focus is the life area the user wants to work on.
type Focus string

const (
	FocusStress        Focus = "stress"
	FocusRelationships Focus = "relationships"
	FocusCareer        Focus = "career"
	FocusGrowth        Focus = "growth"
	FocusSleep         Focus = "sleep"
)

var Personalities = []Personality{PersonalityGentle, PersonalityDirect, PersonalityPlayful, PersonalityStoic}

var Focuses = []Focus{FocusStress, FocusRelationships, FocusCareer, FocusGrowth, FocusSleep}

type RegisterRequest struct {
	Username           string `json:"username"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	DisclaimerAccepted bool   `json:"disclaimer_accepted"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Onboarding holds the preferences sent once after registration. Audio is
// an optional voice introduction.
type Onboarding struct {
	Personality Personality
	Focus       Focus
	Audio       *AudioClip
}

type OnboardingResponse struct {
	Status         string `json:"status"`
	WelcomeMessage string `json:"welcome_message,omitempty"`
	// WelcomeAudio is a base64 encoded clip.
	WelcomeAudio string `json:"welcome_audio,omitempty"`
}

// ErrorResponse is the backend error body. Detail is either a string or a
// list of field errors.
type ErrorResponse struct {
	Detail any `json:"detail"`
}
