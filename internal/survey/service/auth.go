package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/aussiebroadwan/qasurvey/internal/survey/store"
	"github.com/aussiebroadwan/qasurvey/internal/survey/validate"
	"github.com/aussiebroadwan/qasurvey/pkg/cryptox"
	"github.com/aussiebroadwan/qasurvey/pkg/slogx"
)

// AuthService verifies credentials and runs the failed-login lockout.
type AuthService struct {
	Store    store.Store
	Sessions *SessionService
	Now      Clock
}

// LoginResult is a successful login.
type LoginResult struct {
	Session Session            `json:"session"`
	Account domain.AccountView `json:"user"`
}

// Authenticate checks email and password and issues a session.
//
// Failures are counted per account. The failure that brings the counter to
// domain.MaxLoginAttempts locks the account for domain.LockoutDuration, and
// every login attempt during the lock is refused without looking at the
// password. A lock that has expired is cleared before the password check, so
// the account starts again with a full set of attempts.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (LoginResult, error) {
	l := slogx.FromContext(ctx)
	now := s.Now.now()

	// 1. Both credentials are required
	var fields validate.Errors
	if email == "" {
		fields = append(fields, validate.FieldError{Field: "email", Message: "is required"})
	}
	if password == "" {
		fields = append(fields, validate.FieldError{Field: "password", Message: "is required"})
	}
	if len(fields) > 0 {
		return LoginResult{}, &ValidationError{Message: "email and password are required", Fields: fields}
	}

	// 2. Unknown emails get the same answer as a wrong password, minus the hint
	acct, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		l.Warn("login failed for unknown account")
		return LoginResult{}, &CredentialsError{}
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("get account: %w", err)
	}

	// 3. Refuse while locked
	if acct.LockedAt(now) {
		l.Warn("login refused for locked account",
			slog.Int64("account_id", acct.ID),
			slog.Time("lock_expires_at", *acct.LockExpiresAt),
		)
		return LoginResult{}, lockout(acct, now)
	}

	// 4. Clear a lock that has run out
	if acct.Locked {
		acct, err = s.Store.Accounts().ResetFailedLogins(ctx, acct.ID, now)
		if errors.Is(err, store.ErrLocked) {
			return LoginResult{}, lockout(acct, now)
		}
		if err != nil {
			return LoginResult{}, fmt.Errorf("reset expired lock: %w", err)
		}
		l.Info("expired lock cleared", slog.Int64("account_id", acct.ID))
	}

	// 5. Password check, outside of any store lock
	err = cryptox.VerifyPassword(password, acct.PasswordHash)
	if err != nil && !errors.Is(err, cryptox.ErrPasswordMismatch) {
		l.Error("failed to verify password", slog.Int64("account_id", acct.ID), slogx.Err(err))
		return LoginResult{}, fmt.Errorf("verify password: %w", err)
	}

	// 6. Count the failure, locking on the last allowed one
	if err != nil {
		updated, err := s.Store.Accounts().RegisterFailedLogin(ctx, acct.ID, now)
		if err != nil {
			return LoginResult{}, fmt.Errorf("register failed login: %w", err)
		}

		if updated.LockedAt(now) {
			l.Warn("account locked after failed logins",
				slog.Int64("account_id", updated.ID),
				slog.Int("failed_logins", updated.FailedLogins),
				slog.Time("lock_expires_at", *updated.LockExpiresAt),
			)
			e := lockout(updated, now)
			e.Tripped = true
			return LoginResult{}, e
		}

		l.Warn("login failed",
			slog.Int64("account_id", updated.ID),
			slog.Int("failed_logins", updated.FailedLogins),
		)
		return LoginResult{}, &CredentialsError{RemainingAttempts: updated.RemainingAttempts()}
	}

	// 7. Success resets the counter unless a lock landed meanwhile
	acct, err = s.Store.Accounts().ResetFailedLogins(ctx, acct.ID, now)
	switch {
	case errors.Is(err, store.ErrLocked):
		return LoginResult{}, lockout(acct, now)
	case errors.Is(err, store.ErrNotFound):
		return LoginResult{}, &CredentialsError{}
	case err != nil:
		return LoginResult{}, fmt.Errorf("reset failed logins: %w", err)
	}

	session, err := s.Sessions.Issue(acct)
	if err != nil {
		return LoginResult{}, err
	}

	l.Info("login succeeded", slog.Int64("account_id", acct.ID))

	return LoginResult{Session: session, Account: acct.View(now)}, nil
}
