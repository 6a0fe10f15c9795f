package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vibejournal/internal/client/models"
	"github.com/dmitrijs2005/vibejournal/internal/client/services"
	"github.com/dmitrijs2005/vibejournal/internal/common"
)

// Interactive input indirections, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	getChoice     = GetChoice
	getConfirm    = GetConfirm
)

const disclaimer = "vibejournal is a journaling companion, not a therapist or a crisis service. " +
	"If you are in danger, contact your local emergency number."

// Register prompts for account details and creates the account. The
// returned token is stored, so the user is logged in afterwards.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	accepted, err := getConfirm(a.reader, disclaimer+"\nDo you accept?", a.out)
	if err != nil {
		return err
	}

	err = a.authService.Register(ctx, services.RegisterInput{
		Username:           username,
		Email:              email,
		Password:           password,
		DisclaimerAccepted: accepted,
	})
	if err != nil {
		return err
	}

	a.startSession(ctx, username)
	a.alerts.Success("Account created. Welcome, %s!", username)
	a.alerts.Info("Run 'onboard' to pick your companion's tone and focus")
	return nil
}

// Login prompts for credentials and stores the token on success.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, username, password); err != nil {
		return err
	}

	a.startSession(ctx, username)
	a.alerts.Success("Logged in as %s", username)
	return nil
}

// startSession reads the session back from the token store; typed username
// fills in when the token carries none.
func (a *App) startSession(ctx context.Context, username string) {
	s, err := a.authService.Session(ctx)
	if err != nil {
		a.log.Warn(ctx, "token not readable after login", "error", err)
		s = &services.Session{}
	}
	if s.Username == "" {
		s.Username = username
	}
	a.setSession(s)
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.dropSession()
	a.alerts.Success("Logged out")
	return nil
}

// Onboard sends tone and focus preferences, with an optional recorded
// introduction, and plays the welcome clip that comes back.
func (a *App) Onboard(ctx context.Context) error {
	personality, err := getChoice(a.reader, "Pick your companion's tone", toStrings(models.Personalities), a.out)
	if err != nil {
		return err
	}
	focus, err := getChoice(a.reader, "What would you like to focus on?", toStrings(models.Focuses), a.out)
	if err != nil {
		return err
	}
	audioPath, err := getSimpleText(a.reader, "Path to a voice introduction (Enter to skip)", a.out)
	if err != nil {
		return err
	}

	res, err := a.authService.SetupOnboarding(ctx, services.OnboardingInput{
		Personality: models.Personality(personality),
		Focus:       models.Focus(focus),
		AudioPath:   audioPath,
	})
	if err != nil {
		return err
	}

	a.alerts.Success("Onboarding complete")
	if res.Message != "" {
		a.alerts.Println(res.Message)
	}
	a.play(ctx, res.AudioPath)
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	s, err := a.authService.Session(ctx)
	if err != nil {
		return err
	}
	if cur := a.currentSession(); s.Username == "" && cur != nil {
		s.Username = cur.Username
	}

	a.alerts.Println(fmt.Sprintf("user:    %s", orDash(s.Username)))
	a.alerts.Println(fmt.Sprintf("user id: %s", orDash(s.UserID)))
	if s.ExpiresAt != nil {
		a.alerts.Println(fmt.Sprintf("expires: %s", s.ExpiresAt.Local().Format(time.DateTime)))
	}
	a.alerts.Println(fmt.Sprintf("server:  %s (%s)", a.config.ServerBaseURL, orDash(string(a.Mode()))))
	return nil
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
