package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/aussiebroadwan/qasurvey/internal/survey/store"
)

type accountsRepo Store

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[a.Email]; ok {
		return domain.Account{}, &store.ConflictError{Field: "email"}
	}
	if _, ok := r.byNationalID[a.NationalID]; ok {
		return domain.Account{}, &store.ConflictError{Field: "national_id"}
	}

	a.ID = r.nextAccount
	r.nextAccount++

	stored := copyAccount(&a)
	r.accounts[a.ID] = &stored
	r.byEmail[a.Email] = a.ID
	r.byNationalID[a.NationalID] = a.ID

	return copyAccount(&stored), nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id int64) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, store.ErrNotFound
	}
	return copyAccount(a), nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.Account{}, store.ErrNotFound
	}
	return copyAccount(r.accounts[id]), nil
}

func (r *accountsRepo) GetAccountByNationalID(ctx context.Context, nationalID string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byNationalID[nationalID]
	if !ok {
		return domain.Account{}, store.ErrNotFound
	}
	return copyAccount(r.accounts[id]), nil
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, copyAccount(a))
	}
	slices.SortFunc(out, func(a, b domain.Account) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *accountsRepo) IsEmpty(ctx context.Context) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts) == 0, nil
}

func (r *accountsRepo) RegisterFailedLogin(ctx context.Context, id int64, now time.Time) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, store.ErrNotFound
	}

	a.FailedLogins++
	if a.FailedLogins >= domain.MaxLoginAttempts && !a.LockedAt(now) {
		expiry := now.Add(domain.LockoutDuration)
		a.Locked = true
		a.LockExpiresAt = &expiry
	}
	return copyAccount(a), nil
}

func (r *accountsRepo) ResetFailedLogins(ctx context.Context, id int64, now time.Time) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, store.ErrNotFound
	}
	if a.LockedAt(now) {
		return copyAccount(a), store.ErrLocked
	}

	a.FailedLogins = 0
	a.Locked = false
	a.LockExpiresAt = nil
	return copyAccount(a), nil
}

func (r *accountsRepo) ClearExpiredLockouts(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, a := range r.accounts {
		if a.Locked && !a.LockedAt(now) {
			a.FailedLogins = 0
			a.Locked = false
			a.LockExpiresAt = nil
			n++
		}
	}
	return n, nil
}
