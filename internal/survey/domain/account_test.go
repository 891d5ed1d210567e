package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/stretchr/testify/require"
)

func TestAccountLockedAt(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	expiry := now.Add(domain.LockoutDuration)

	tests := []struct {
		name    string
		account domain.Account
		at      time.Time
		locked  bool
		minutes int
	}{
		{"never locked", domain.Account{}, now, false, 0},
		{"flag without expiry", domain.Account{Locked: true}, now, false, 0},
		{"fresh lock", domain.Account{Locked: true, LockExpiresAt: &expiry}, now, true, 15},
		{"partial minute rounds up", domain.Account{Locked: true, LockExpiresAt: &expiry}, now.Add(14*time.Minute + time.Second), true, 1},
		{"expired exactly", domain.Account{Locked: true, LockExpiresAt: &expiry}, expiry, false, 0},
		{"expired long ago", domain.Account{Locked: true, LockExpiresAt: &expiry}, expiry.Add(time.Hour), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.locked, tt.account.LockedAt(tt.at))
			require.Equal(t, tt.minutes, tt.account.LockMinutesRemaining(tt.at))
			require.Equal(t, tt.locked, tt.account.View(tt.at).Blocked)
		})
	}
}

func TestAccountRemainingAttempts(t *testing.T) {
	for failed, want := range map[int]int{0: 3, 1: 2, 2: 1, 3: 0, 7: 0} {
		require.Equal(t, want, domain.Account{FailedLogins: failed}.RemainingAttempts())
	}
}
