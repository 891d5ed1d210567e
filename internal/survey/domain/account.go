package domain

import (
	"math"
	"time"
)

// Lockout policy.
const (
	MaxLoginAttempts = 3
	LockoutDuration  = 15 * time.Minute
)

type Account struct {
	ID           int64
	Name         string
	Email        string
	NationalID   string // digits only
	PasswordHash string // argon2id PHC string
	Profile      Profile
	CreatedAt    time.Time

	FailedLogins  int
	Locked        bool
	LockExpiresAt *time.Time
}

// LockedAt reports whether the account is locked at now. A lock whose
// expiry has passed no longer counts even if the flag is still set.
func (a Account) LockedAt(now time.Time) bool {
	return a.Locked && a.LockExpiresAt != nil && now.Before(*a.LockExpiresAt)
}

// LockMinutesRemaining rounds the remaining lock time up to whole minutes.
// It returns 0 when the account is not locked at now.
func (a Account) LockMinutesRemaining(now time.Time) int {
	if !a.LockedAt(now) {
		return 0
	}
	return int(math.Ceil(a.LockExpiresAt.Sub(now).Minutes()))
}

// RemainingAttempts is how many more failures are tolerated before a lock.
func (a Account) RemainingAttempts() int {
	return max(MaxLoginAttempts-a.FailedLogins, 0)
}

// View is the public projection of the account at now.
func (a Account) View(now time.Time) AccountView {
	return AccountView{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		NationalID: a.NationalID,
		Profile:    a.Profile,
		CreatedAt:  a.CreatedAt,
		Blocked:    a.LockedAt(now),
	}
}

// AccountView never carries the password hash or the lockout counters.
type AccountView struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	NationalID string    `json:"nationalId"`
	Profile    Profile   `json:"profile" swaggertype:"string" enums:"student,qa_professional,manager,recruiter,administrator"`
	CreatedAt  time.Time `json:"createdAt"`
	Blocked    bool      `json:"blocked"`
}
