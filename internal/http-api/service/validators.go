package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	DefaultYearHorizon = 15
	MinScore           = 1
	MaxScore           = 10
	reservedUsername   = "me"
)

var (
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
)

// YearValidator rejects release years too far in the future.
type YearValidator struct {
	Horizon int
	Now     func() time.Time
}

func NewYearValidator(horizon int) YearValidator {
	return YearValidator{Horizon: horizon, Now: time.Now}
}

// Validate accepts any year up to and including the current year plus Horizon.
func (v YearValidator) Validate(year int) error {
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	limit := now().Year() + v.Horizon
	if year > limit {
		return NewValidationError("year", fmt.Sprintf("year must not be later than %d", limit))
	}
	return nil
}

func validateScore(v *ValidationError, score int) {
	if score < MinScore || score > MaxScore {
		v.Add("score", fmt.Sprintf("score must be between %d and %d", MinScore, MaxScore))
	}
}

func validateSlug(v *ValidationError, slug string) {
	if !slugPattern.MatchString(slug) {
		v.Add("slug", "slug may contain only letters, digits, hyphens and underscores")
	}
}

func validateUsername(v *ValidationError, username string) {
	switch {
	case strings.TrimSpace(username) == "":
		v.Add("username", "username is required")
	case strings.EqualFold(username, reservedUsername):
		v.Add("username", fmt.Sprintf("username %q is reserved", reservedUsername))
	case !usernamePattern.MatchString(username):
		v.Add("username", "username may contain only letters, digits and @/./+/-/_")
	}
}

func validateNotBlank(v *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "this field may not be blank")
	}
}

// normalizeEmail lowercases the domain part, leaving the local part as typed.
func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
