package services

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/vibejournal/internal/client/models"
	"github.com/dmitrijs2005/vibejournal/internal/common"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 32
	minPasswordLen = 8
	maxTextLen     = 2000
	maxOfferLen    = 500
)

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, fmt.Sprintf(format, args...))
}

func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < minUsernameLen || n > maxUsernameLen {
		return validationErr("username must be %d to %d characters", minUsernameLen, maxUsernameLen)
	}
	if strings.ContainsAny(username, " \t\r\n") {
		return validationErr("username must not contain spaces")
	}
	return nil
}

func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@"):], ".") {
		return validationErr("%q is not a valid email address", email)
	}
	return nil
}

func ValidatePassword(password []byte) error {
	if utf8.RuneCount(password) < minPasswordLen {
		return validationErr("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

func ValidatePersonality(p models.Personality) error {
	if !slices.Contains(models.Personalities, p) {
		return validationErr("unknown personality %q", p)
	}
	return nil
}

func ValidateFocus(f models.Focus) error {
	if !slices.Contains(models.Focuses, f) {
		return validationErr("unknown focus %q", f)
	}
	return nil
}

func ValidateReaction(r models.Reaction) error {
	if !slices.Contains(models.Reactions, r) {
		return validationErr("unknown reaction %q", r)
	}
	return nil
}

func ValidatePlan(p models.Plan) error {
	if p != models.PlanMonthly && p != models.PlanYearly {
		return validationErr("unknown plan %q", p)
	}
	return nil
}

// ValidateText checks a free-form message: non-blank and at most max runes.
func ValidateText(field, text string, max int) error {
	if strings.TrimSpace(text) == "" {
		return validationErr("%s must not be empty", field)
	}
	if utf8.RuneCountInString(text) > max {
		return validationErr("%s is longer than %d characters", field, max)
	}
	return nil
}
