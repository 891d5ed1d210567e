package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/aussiebroadwan/qasurvey/internal/survey/store"
	"github.com/aussiebroadwan/qasurvey/pkg/httpx"
	"github.com/aussiebroadwan/qasurvey/pkg/jwtx"
	"github.com/aussiebroadwan/qasurvey/pkg/slogx"
)

// Session is a freshly issued bearer token.
type Session struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionClaims are the verified contents of a session token.
type SessionClaims struct {
	AccountID int64
	Email     string
	Profile   domain.Profile
	ID        string
	ExpiresAt time.Time
}

// Principal is the caller of a protected operation.
type Principal struct {
	AccountID int64          `json:"userId"`
	Email     string         `json:"email"`
	Profile   domain.Profile `json:"profile" swaggertype:"string"`
}

// SessionService issues and checks stateless session tokens. The signer is
// loaded once at startup and never rotated.
type SessionService struct {
	Store  store.Store
	Signer jwtx.Signer
	Issuer string
	TTL    time.Duration
	Now    Clock
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL <= 0 {
		return jwtx.DefaultSessionTTL
	}
	return s.TTL
}

// Issue signs a session for the account.
func (s *SessionService) Issue(a domain.Account) (Session, error) {
	claims := jwtx.NewSessionClaims(
		strconv.FormatInt(a.ID, 10),
		a.Email,
		a.Profile.String(),
		s.Issuer,
		s.ttl(),
		s.Now.now(),
	)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return Session{}, fmt.Errorf("sign session: %w", err)
	}

	return Session{Token: token, TokenType: "Bearer", ExpiresAt: claims.ExpiresAtTime()}, nil
}

// Verify checks signature, issuer and expiry. It never touches the store.
func (s *SessionService) Verify(token string) (SessionClaims, error) {
	v := jwtx.NewVerifier(s.Signer, jwtx.VerifyOptions{
		Issuer: s.Issuer,
		Now:    s.Now,
	})

	claims, err := v.Verify(token)
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		return SessionClaims{}, errorf(ErrTokenExpired, "token expired")
	case err != nil:
		return SessionClaims{}, errorf(ErrTokenMalformed, "invalid token")
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return SessionClaims{}, errorf(ErrTokenMalformed, "invalid token subject")
	}
	profile, err := domain.ParseProfile(claims.Profile)
	if err != nil {
		return SessionClaims{}, errorf(ErrTokenMalformed, "invalid token profile")
	}

	return SessionClaims{
		AccountID: id,
		Email:     claims.Email,
		Profile:   profile,
		ID:        claims.ID,
		ExpiresAt: claims.ExpiresAtTime(),
	}, nil
}

// Authenticate resolves an Authorization header into the calling principal.
// The account must still exist and must not be locked right now.
func (s *SessionService) Authenticate(ctx context.Context, header string) (Principal, error) {
	token, err := httpx.ParseBearer(header)
	switch {
	case errors.Is(err, httpx.ErrMissingBearer):
		return Principal{}, errorf(ErrTokenMalformed, "missing bearer token")
	case err != nil:
		return Principal{}, errorf(ErrTokenMalformed, "authorization header must be 'Bearer <token>'")
	}

	claims, err := s.Verify(token)
	if err != nil {
		return Principal{}, err
	}

	acct, err := s.Store.Accounts().GetAccountByID(ctx, claims.AccountID)
	if errors.Is(err, store.ErrNotFound) {
		return Principal{}, errorf(ErrAccountGone, "account no longer exists")
	}
	if err != nil {
		return Principal{}, fmt.Errorf("get account: %w", err)
	}

	if now := s.Now.now(); acct.LockedAt(now) {
		slogx.FromContext(ctx).Warn("session rejected for locked account",
			slog.Int64("account_id", acct.ID),
			slog.String("jti", claims.ID),
		)
		return Principal{}, lockout(acct, now)
	}

	return Principal{
		AccountID: claims.AccountID,
		Email:     claims.Email,
		Profile:   claims.Profile,
	}, nil
}
