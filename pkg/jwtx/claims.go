package jwtx

import (
	"time"

	"github.com/aussiebroadwan/qasurvey/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the lifetime of a session token. There is no refresh
// flow, so a client simply logs in again once it lapses.
const DefaultSessionTTL = 24 * time.Hour

// Claims are the session-token claims. The profile travels in the token so
// the gate can authorize without touching the store twice.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated account at the time of login.
	Email string `json:"email,omitempty"`

	// Profile of the authenticated account ("administrator", "student", ...)
	Profile string `json:"profile,omitempty"`
}

// NewSessionClaims builds minimally-correct claims for a freshly
// authenticated account.
func NewSessionClaims(
	subject, email, profile string,
	issuer string,
	ttl time.Duration,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email:   email,
		Profile: profile,
	}
}

// NewJTI returns a sortable unique identifier for the "jti" claim, so log
// lines for the same session can be correlated.
func NewJTI() string {
	return idx.New().String()
}

// ExpiresAtTime returns the expiry as a time.Time, or the zero time when the
// claim is absent.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
