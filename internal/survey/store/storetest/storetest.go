// Package storetest is a conformance suite every store driver must pass.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/aussiebroadwan/qasurvey/internal/survey/store"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, migrated, empty store.
type Factory func(t *testing.T) store.Store

var epoch = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// Run executes the suite against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Accounts/CreateAndGet", func(t *testing.T) { testCreateAndGet(t, newStore(t)) })
	t.Run("Accounts/Conflicts", func(t *testing.T) { testAccountConflicts(t, newStore(t)) })
	t.Run("Accounts/Lockout", func(t *testing.T) { testLockout(t, newStore(t)) })
	t.Run("Accounts/ConcurrentFailures", func(t *testing.T) { testConcurrentFailures(t, newStore(t)) })
	t.Run("Accounts/Reset", func(t *testing.T) { testReset(t, newStore(t)) })
	t.Run("Accounts/ClearExpired", func(t *testing.T) { testClearExpired(t, newStore(t)) })
	t.Run("Records/CreateAndList", func(t *testing.T) { testRecordCreateAndList(t, newStore(t)) })
	t.Run("Records/UpdateDelete", func(t *testing.T) { testRecordUpdateDelete(t, newStore(t)) })
}

// SeedAccount inserts an account with a unique email and national id.
func SeedAccount(t *testing.T, s store.Store, n int, profile domain.Profile) domain.Account {
	t.Helper()
	a, err := s.Accounts().CreateAccount(context.Background(), domain.Account{
		Name:         fmt.Sprintf("User %d", n),
		Email:        fmt.Sprintf("user%d@example.com", n),
		NationalID:   fmt.Sprintf("%011d", 10_000_000_000+n),
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		Profile:      profile,
		CreatedAt:    epoch,
	})
	require.NoError(t, err)
	return a
}

func testCreateAndGet(t *testing.T, s store.Store) {
	ctx := context.Background()

	empty, err := s.Accounts().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	first := SeedAccount(t, s, 1, domain.ProfileStudent)
	second := SeedAccount(t, s, 2, domain.ProfileAdministrator)
	require.Equal(t, int64(1), first.ID)
	require.Equal(t, int64(2), second.ID)
	require.Equal(t, epoch, first.CreatedAt)
	require.Zero(t, first.FailedLogins)
	require.False(t, first.Locked)
	require.Nil(t, first.LockExpiresAt)

	got, err := s.Accounts().GetAccountByID(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, second, got)

	got, err = s.Accounts().GetAccountByEmail(ctx, "user1@example.com")
	require.NoError(t, err)
	require.Equal(t, first, got)

	_, err = s.Accounts().GetAccountByEmail(ctx, "USER1@example.com")
	require.ErrorIs(t, err, store.ErrNotFound, "email lookup is case-sensitive")

	got, err = s.Accounts().GetAccountByNationalID(ctx, second.NationalID)
	require.NoError(t, err)
	require.Equal(t, second.ID, got.ID)

	_, err = s.Accounts().GetAccountByID(ctx, 99)
	require.ErrorIs(t, err, store.ErrNotFound)

	all, err := s.Accounts().ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, int64(1), all[0].ID)
	require.Equal(t, domain.ProfileAdministrator, all[1].Profile)

	empty, err = s.Accounts().IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)
}

func testAccountConflicts(t *testing.T, s store.Store) {
	ctx := context.Background()
	existing := SeedAccount(t, s, 1, domain.ProfileStudent)

	dupEmail := existing
	dupEmail.NationalID = "98765432100"
	_, err := s.Accounts().CreateAccount(ctx, dupEmail)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
	var conflict *store.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "email", conflict.Field)

	dupNID := existing
	dupNID.Email = "other@example.com"
	_, err = s.Accounts().CreateAccount(ctx, dupNID)
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "national_id", conflict.Field)

	// Email uniqueness is exact, so a different case is a different account
	caseVariant := existing
	caseVariant.Email = "User1@example.com"
	caseVariant.NationalID = "98765432100"
	_, err = s.Accounts().CreateAccount(ctx, caseVariant)
	require.NoError(t, err)
}

func testLockout(t *testing.T, s store.Store) {
	ctx := context.Background()
	a := SeedAccount(t, s, 1, domain.ProfileStudent)

	got, err := s.Accounts().RegisterFailedLogin(ctx, a.ID, epoch)
	require.NoError(t, err)
	require.Equal(t, 1, got.FailedLogins)
	require.False(t, got.Locked)

	got, err = s.Accounts().RegisterFailedLogin(ctx, a.ID, epoch.Add(time.Second))
	require.NoError(t, err)
	require.Equal(t, 2, got.FailedLogins)
	require.False(t, got.Locked)

	third := epoch.Add(2 * time.Second)
	got, err = s.Accounts().RegisterFailedLogin(ctx, a.ID, third)
	require.NoError(t, err)
	require.Equal(t, 3, got.FailedLogins)
	require.True(t, got.Locked)
	require.NotNil(t, got.LockExpiresAt)
	require.Equal(t, third.Add(domain.LockoutDuration), *got.LockExpiresAt)

	// A failure while locked counts but does not extend the lock
	got, err = s.Accounts().RegisterFailedLogin(ctx, a.ID, third.Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, 4, got.FailedLogins)
	require.Equal(t, third.Add(domain.LockoutDuration), *got.LockExpiresAt)

	_, err = s.Accounts().RegisterFailedLogin(ctx, 404, epoch)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testConcurrentFailures(t *testing.T, s store.Store) {
	ctx := context.Background()
	a := SeedAccount(t, s, 1, domain.ProfileStudent)

	const workers = 12
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Accounts().RegisterFailedLogin(ctx, a.ID, epoch)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := s.Accounts().GetAccountByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, workers, got.FailedLogins, "no failure may be lost")
	require.True(t, got.LockedAt(epoch))
	require.Equal(t, epoch.Add(domain.LockoutDuration), *got.LockExpiresAt)
}

func testReset(t *testing.T, s store.Store) {
	ctx := context.Background()
	a := SeedAccount(t, s, 1, domain.ProfileStudent)

	for range domain.MaxLoginAttempts {
		_, err := s.Accounts().RegisterFailedLogin(ctx, a.ID, epoch)
		require.NoError(t, err)
	}

	got, err := s.Accounts().ResetFailedLogins(ctx, a.ID, epoch.Add(time.Minute))
	require.ErrorIs(t, err, store.ErrLocked)
	require.True(t, got.Locked)
	require.Equal(t, domain.MaxLoginAttempts, got.FailedLogins)

	got, err = s.Accounts().ResetFailedLogins(ctx, a.ID, epoch.Add(domain.LockoutDuration))
	require.NoError(t, err)
	require.Zero(t, got.FailedLogins)
	require.False(t, got.Locked)
	require.Nil(t, got.LockExpiresAt)

	_, err = s.Accounts().ResetFailedLogins(ctx, 404, epoch)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testClearExpired(t *testing.T, s store.Store) {
	ctx := context.Background()
	early := SeedAccount(t, s, 1, domain.ProfileStudent)
	late := SeedAccount(t, s, 2, domain.ProfileStudent)
	SeedAccount(t, s, 3, domain.ProfileStudent)

	for range domain.MaxLoginAttempts {
		_, err := s.Accounts().RegisterFailedLogin(ctx, early.ID, epoch)
		require.NoError(t, err)
		_, err = s.Accounts().RegisterFailedLogin(ctx, late.ID, epoch.Add(10*time.Minute))
		require.NoError(t, err)
	}

	n, err := s.Accounts().ClearExpiredLockouts(ctx, epoch.Add(domain.LockoutDuration))
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	got, err := s.Accounts().GetAccountByID(ctx, early.ID)
	require.NoError(t, err)
	require.False(t, got.Locked)
	require.Zero(t, got.FailedLogins)

	got, err = s.Accounts().GetAccountByID(ctx, late.ID)
	require.NoError(t, err)
	require.True(t, got.Locked)
}

func newRecord(owner domain.Account, title string) domain.Record {
	return domain.Record{
		OwnerID:         owner.ID,
		OwnerProfile:    owner.Profile,
		Title:           title,
		ExperienceLevel: domain.LevelMid,
		Tools:           []string{"Cypress", "Postman"},
		Location:        "São Paulo",
		FunctionalArea:  "web",
		CreatedAt:       epoch,
		UpdatedAt:       epoch,
	}
}

func testRecordCreateAndList(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := SeedAccount(t, s, 1, domain.ProfileQAProfessional)
	bob := SeedAccount(t, s, 2, domain.ProfileManager)

	r1, err := s.Records().CreateRecord(ctx, newRecord(alice, "QA Analyst"))
	require.NoError(t, err)
	require.Equal(t, int64(1), r1.ID)
	require.Equal(t, []string{"Cypress", "Postman"}, r1.Tools)
	require.Empty(t, r1.SalaryBand)

	withSalary := newRecord(bob, "QA Lead")
	withSalary.SalaryBand = "R$ 15k+"
	withSalary.Tools = nil
	r2, err := s.Records().CreateRecord(ctx, withSalary)
	require.NoError(t, err)
	require.Equal(t, int64(2), r2.ID)
	require.Equal(t, "R$ 15k+", r2.SalaryBand)
	require.NotNil(t, r2.Tools)
	require.Empty(t, r2.Tools)

	_, err = s.Records().CreateRecord(ctx, newRecord(alice, "Second try"))
	var conflict *store.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "owner_id", conflict.Field)

	got, err := s.Records().GetRecord(ctx, r1.ID)
	require.NoError(t, err)
	require.Equal(t, r1, got)

	_, err = s.Records().GetRecord(ctx, 42)
	require.ErrorIs(t, err, store.ErrNotFound)

	all, err := s.Records().ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, []int64{1, 2}, []int64{all[0].ID, all[1].ID})

	own, err := s.Records().ListRecordsByOwner(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, r2.ID, own[0].ID)

	none, err := s.Records().ListRecordsByOwner(ctx, 99)
	require.NoError(t, err)
	require.Empty(t, none)

	// Snapshots are detached from storage
	all[0].Tools[0] = "mutated"
	again, err := s.Records().GetRecord(ctx, r1.ID)
	require.NoError(t, err)
	require.Equal(t, "Cypress", again.Tools[0])
}

func testRecordUpdateDelete(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := SeedAccount(t, s, 1, domain.ProfileQAProfessional)
	bob := SeedAccount(t, s, 2, domain.ProfileStudent)

	rec, err := s.Records().CreateRecord(ctx, newRecord(alice, "QA Analyst"))
	require.NoError(t, err)

	level := domain.LevelSenior
	title := "Senior QA"
	tools := []string{" k6 ", "k6", "Playwright"}
	patch := domain.RecordPatch{Title: &title, ExperienceLevel: &level, Tools: &tools}
	later := epoch.Add(time.Hour)

	_, err = s.Records().UpdateRecord(ctx, 99, alice.ID, patch, later)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Records().UpdateRecord(ctx, rec.ID, bob.ID, patch, later)
	require.ErrorIs(t, err, store.ErrNotOwner)

	updated, err := s.Records().UpdateRecord(ctx, rec.ID, alice.ID, patch, later)
	require.NoError(t, err)
	require.Equal(t, "Senior QA", updated.Title)
	require.Equal(t, domain.LevelSenior, updated.ExperienceLevel)
	require.Equal(t, []string{"k6", "Playwright"}, updated.Tools)
	require.Equal(t, "São Paulo", updated.Location, "unpatched fields are kept")
	require.Equal(t, epoch, updated.CreatedAt)
	require.Equal(t, later, updated.UpdatedAt)
	require.Equal(t, alice.Profile, updated.OwnerProfile)

	require.ErrorIs(t, s.Records().DeleteRecord(ctx, 99, alice.ID), store.ErrNotFound)
	require.ErrorIs(t, s.Records().DeleteRecord(ctx, rec.ID, bob.ID), store.ErrNotOwner)
	require.NoError(t, s.Records().DeleteRecord(ctx, rec.ID, alice.ID))

	_, err = s.Records().GetRecord(ctx, rec.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// The one-record slot is free again
	again, err := s.Records().CreateRecord(ctx, newRecord(alice, "QA Analyst"))
	require.NoError(t, err)
	require.Greater(t, again.ID, rec.ID, "ids are never reused")
}
