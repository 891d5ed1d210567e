package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/aussiebroadwan/qasurvey/internal/survey/validate"
)

// Error kinds. The text of each doubles as the machine readable code the
// HTTP layer puts in the "error" field.
var (
	ErrValidation         = errors.New("validation_error")
	ErrDuplicate          = errors.New("duplicate")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrLocked             = errors.New("account_locked")
	ErrNotFound           = errors.New("not_found")
	ErrForbidden          = errors.New("forbidden")
	ErrDenied             = errors.New("access_denied")
	ErrTokenExpired       = errors.New("token_expired")
	ErrTokenMalformed     = errors.New("invalid_token")
	ErrAccountGone        = errors.New("account_not_found")
)

// kindError is a human message tagged with one of the kinds above.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func errorf(kind error, format string, args ...any) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// ValidationError lists every rejected input field.
type ValidationError struct {
	Message string
	Fields  validate.Errors
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + e.Fields.Error()
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// invalid turns a validator or parse failure into a *ValidationError.
func invalid(msg string, err error) error {
	var fields validate.Errors
	if errors.As(err, &fields) {
		return &ValidationError{Message: msg, Fields: fields}
	}
	return &ValidationError{Message: msg + ": " + err.Error()}
}

// DuplicateError names the unique attribute that is already taken.
type DuplicateError struct {
	Field string // "email", "nationalId" or "record"
}

func (e *DuplicateError) Error() string {
	switch e.Field {
	case "email":
		return "email already registered"
	case "nationalId":
		return "national id already registered"
	case "record":
		return "account already has a survey record"
	default:
		return e.Field + " already exists"
	}
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// CredentialsError is a failed login. RemainingAttempts is zero when no hint
// may be given, which is the case for unknown emails.
type CredentialsError struct {
	RemainingAttempts int
}

func (e *CredentialsError) Error() string {
	if e.RemainingAttempts > 0 {
		return fmt.Sprintf("invalid credentials, %d attempt(s) remaining", e.RemainingAttempts)
	}
	return "invalid credentials"
}

func (e *CredentialsError) Is(target error) bool { return target == ErrInvalidCredentials }

// LockoutError is returned while an account is locked.
type LockoutError struct {
	MinutesRemaining int
	ExpiresAt        time.Time

	// Tripped is set on the failure that caused the lock.
	Tripped bool
}

func (e *LockoutError) Error() string {
	if e.Tripped {
		return fmt.Sprintf("account blocked after %d failed attempts, try again in %d minutes",
			domain.MaxLoginAttempts, e.MinutesRemaining)
	}
	return fmt.Sprintf("account temporarily blocked, try again in %d minute(s)", e.MinutesRemaining)
}

func (e *LockoutError) Is(target error) bool { return target == ErrLocked }

func lockout(a domain.Account, now time.Time) *LockoutError {
	e := &LockoutError{MinutesRemaining: a.LockMinutesRemaining(now)}
	if a.LockExpiresAt != nil {
		e.ExpiresAt = *a.LockExpiresAt
	}
	return e
}

// DeniedError is an authorization failure for the caller's profile.
type DeniedError struct {
	Allowed domain.ProfileSet
}

func (e *DeniedError) Error() string {
	return "access denied, allowed profiles: " + e.Allowed.String()
}

func (e *DeniedError) Is(target error) bool { return target == ErrDenied }
