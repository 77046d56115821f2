// Package registration normalizes role-specific signup fields into the
// backend registration payload. Everything here is pure: validation and
// derivation only, no I/O.
package registration

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/apexfit/apexfit-go/internal/client/models"
	"github.com/apexfit/apexfit-go/internal/common"
)

// Fields is the raw signup form input.
type Fields struct {
	FullName     string
	Email        string
	Password     string
	Phone        string
	GymName      string // required for gym owners
	BusinessName string // required for employees/vendors
}

const maxUsernameLen = 50

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonAlnumRe = regexp.MustCompile(`[^a-zA-Z0-9]`)
	nonWordRe  = regexp.MustCompile(`[^a-zA-Z0-9_]`)
)

// now is a test seam for the username timestamp component.
var now = time.Now

// Transform validates the fields for the given role and produces the
// normalized registration payload.
//
// Client-side validation here is a fast-fail courtesy for the UI; the
// backend re-validates and stays the authority.
func Transform(role models.UserType, f Fields) (models.RegistrationPayload, error) {
	var p models.RegistrationPayload

	if !role.Valid() {
		return p, fmt.Errorf("%w: unknown role %q", common.ErrValidation, string(role))
	}

	email := strings.TrimSpace(f.Email)
	if !emailRe.MatchString(email) {
		return p, fmt.Errorf("%w: invalid email address", common.ErrValidation)
	}
	if err := ValidatePassword(f.Password); err != nil {
		return p, err
	}

	switch role {
	case models.UserTypeGymOwner:
		if strings.TrimSpace(f.GymName) == "" {
			return p, fmt.Errorf("%w: gym name is required", common.ErrValidation)
		}
	case models.UserTypeEmployee:
		if strings.TrimSpace(f.BusinessName) == "" {
			return p, fmt.Errorf("%w: business name is required", common.ErrValidation)
		}
	}

	first, last := SplitName(f.FullName)

	p = models.RegistrationPayload{
		Email:        email,
		Password:     f.Password,
		Username:     DeriveUsername(first, email),
		UserType:     role,
		FirstName:    first,
		LastName:     last,
		Phone:        strings.TrimSpace(f.Phone),
		GymName:      strings.TrimSpace(f.GymName),
		BusinessName: strings.TrimSpace(f.BusinessName),
	}
	return p, nil
}

// SplitName splits a free-text display name into a first name (first token)
// and a last name (remaining tokens). A single-word name yields an empty
// last name.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// DeriveUsername composes a username from the sanitized first name, the
// email's local part and the current unix timestamp, truncated to 50
// characters. The result always matches `^\w{3,50}$`. Uniqueness is
// best-effort; a collision surfaces as the backend's conflict error.
func DeriveUsername(firstName, email string) string {
	name := strings.ToLower(nonAlnumRe.ReplaceAllString(firstName, ""))

	local := email
	if i := strings.Index(email, "@"); i >= 0 {
		local = email[:i]
	}
	local = strings.ToLower(nonWordRe.ReplaceAllString(local, ""))

	username := name + "_" + local + "_" + strconv.FormatInt(now().Unix(), 10)
	if len(username) > maxUsernameLen {
		username = username[:maxUsernameLen]
	}
	return username
}

// ValidatePassword enforces the minimum strength rule: at least 8
// characters with an upper-case letter, a lower-case letter and a digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", common.ErrValidation)
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("%w: password must contain upper and lower case letters and a digit", common.ErrValidation)
	}
	return nil
}
