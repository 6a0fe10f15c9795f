// Package services contains application services for the vibejournal
// client. This file defines the authentication service: registration,
// login, logout, onboarding and the view of the current session.
package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dmitrijs2005/vibejournal/internal/client/client"
	"github.com/dmitrijs2005/vibejournal/internal/client/models"
	"github.com/dmitrijs2005/vibejournal/internal/client/tokenstore"
	"github.com/dmitrijs2005/vibejournal/internal/common"
	"github.com/dmitrijs2005/vibejournal/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register / Login: validate input locally, call the backend and store
//     the returned token.
//   - Logout: forget the stored token.
//   - SetupOnboarding: send tone and focus preferences, optionally with a
//     voice introduction, and save the welcome clip if one comes back.
//   - Session: describe the stored token without contacting the backend.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) error
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	SetupOnboarding(ctx context.Context, in OnboardingInput) (*OnboardingResult, error)
	Session(ctx context.Context) (*Session, error)
	Ping(ctx context.Context) error
}

type RegisterInput struct {
	Username           string
	Email              string
	Password           []byte
	DisclaimerAccepted bool
}

type OnboardingInput struct {
	Personality models.Personality
	Focus       models.Focus
	// AudioPath is an optional recorded introduction.
	AudioPath string
}

type OnboardingResult struct {
	Message string
	// AudioPath is where the welcome clip was saved, empty if none was sent.
	AudioPath string
}

// Session is what the client can tell about the stored token. The token is
// decoded without verification: only the backend can vouch for it.
type Session struct {
	UserID    string
	Username  string
	ExpiresAt *time.Time
}

type authService struct {
	client client.Client
	tokens tokenstore.Store
	media  *MediaStore
	log    logging.Logger
}

func NewAuthService(c client.Client, tokens tokenstore.Store, media *MediaStore, log logging.Logger) AuthService {
	return &authService{client: c, tokens: tokens, media: media, log: log}
}

func (a *authService) Register(ctx context.Context, in RegisterInput) error {
	if err := ValidateUsername(in.Username); err != nil {
		return err
	}
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if err := ValidatePassword(in.Password); err != nil {
		return err
	}
	if !in.DisclaimerAccepted {
		return validationErr("the disclaimer must be accepted")
	}

	token, err := a.client.Register(ctx, models.RegisterRequest{
		Username:           in.Username,
		Email:              in.Email,
		Password:           string(in.Password),
		DisclaimerAccepted: in.DisclaimerAccepted,
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	a.saveToken(ctx, token)
	return nil
}

func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	if username == "" || len(password) == 0 {
		return validationErr("username and password are required")
	}

	token, err := a.client.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	a.saveToken(ctx, token)
	return nil
}

// saveToken is fire-and-forget: a storage failure only costs the session
// surviving a restart, so it is logged rather than returned.
func (a *authService) saveToken(ctx context.Context, token string) {
	if token == "" {
		a.log.Warn(ctx, "backend returned an empty token")
		return
	}
	if err := a.tokens.Save(ctx, token); err != nil {
		a.log.Error(ctx, "failed to persist token", "error", err)
	}
}

func (a *authService) Logout(ctx context.Context) error {
	return a.tokens.Delete(ctx)
}

func (a *authService) SetupOnboarding(ctx context.Context, in OnboardingInput) (*OnboardingResult, error) {
	if err := ValidatePersonality(in.Personality); err != nil {
		return nil, err
	}
	if err := ValidateFocus(in.Focus); err != nil {
		return nil, err
	}

	o := models.Onboarding{Personality: in.Personality, Focus: in.Focus}

	if in.AudioPath != "" {
		f, err := os.Open(in.AudioPath)
		if err != nil {
			return nil, validationErr("cannot read recording: %v", err)
		}
		defer f.Close()
		o.Audio = &models.AudioClip{Filename: filepath.Base(in.AudioPath), Data: f}
	}

	resp, err := a.client.SetupOnboarding(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("onboarding: %w", err)
	}

	res := &OnboardingResult{Message: resp.WelcomeMessage}

	if resp.WelcomeAudio != "" {
		clip, err := base64.StdEncoding.DecodeString(resp.WelcomeAudio)
		if err != nil {
			a.log.Warn(ctx, "welcome audio is not valid base64", "error", err)
			return res, nil
		}
		path, err := a.media.SaveBytes("welcome.mp3", clip)
		if err != nil {
			return res, fmt.Errorf("save welcome audio: %w", err)
		}
		res.AudioPath = path
	}

	return res, nil
}

func (a *authService) Session(ctx context.Context) (*Session, error) {
	token, err := a.tokens.Load(ctx)
	if errors.Is(err, tokenstore.ErrNoToken) {
		return nil, common.ErrNotLoggedIn
	}
	if err != nil {
		return nil, err
	}
	return sessionFromToken(token), nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// sessionFromToken reads well-known claims. Opaque (non-JWT) tokens give an
// empty Session.
func sessionFromToken(token string) *Session {
	s := &Session{}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return s
	}

	s.UserID = claimString(claims, "user_id")
	if s.UserID == "" {
		s.UserID, _ = claims.GetSubject()
	}
	s.Username = claimString(claims, "username")
	if s.Username == "" {
		s.Username = claimString(claims, "name")
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		s.ExpiresAt = &t
	}
	return s
}

func claimString(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
