package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/aussiebroadwan/qasurvey/internal/survey/store"
)

const accountColumns = `id, name, email, national_id, password_hash, profile, created_at,
	failed_logins, locked, lock_expires_at`

const (
	insertAccount = `INSERT INTO accounts (name, email, national_id, password_hash, profile, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + accountColumns

	selectAccountByID         = `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`
	selectAccountByEmail      = `SELECT ` + accountColumns + ` FROM accounts WHERE email = ?`
	selectAccountByNationalID = `SELECT ` + accountColumns + ` FROM accounts WHERE national_id = ?`
	selectAccounts            = `SELECT ` + accountColumns + ` FROM accounts ORDER BY id`
	countAccounts             = `SELECT COUNT(*) FROM accounts`

	// The CASE arms read the pre-update row, so "failed_logins + 1" is the
	// new count and "locked AND lock_expires_at > ?" is the old lock state.
	registerFailedLogin = `UPDATE accounts SET
	failed_logins = failed_logins + 1,
	locked = CASE
		WHEN failed_logins + 1 >= :max AND NOT (locked = 1 AND lock_expires_at > :now) THEN 1
		ELSE locked END,
	lock_expires_at = CASE
		WHEN failed_logins + 1 >= :max AND NOT (locked = 1 AND lock_expires_at > :now) THEN :expiry
		ELSE lock_expires_at END
WHERE id = :id
RETURNING ` + accountColumns

	resetFailedLogins = `UPDATE accounts SET failed_logins = 0, locked = 0, lock_expires_at = NULL
WHERE id = :id AND NOT (locked = 1 AND lock_expires_at > :now)
RETURNING ` + accountColumns

	clearExpiredLockouts = `UPDATE accounts SET failed_logins = 0, locked = 0, lock_expires_at = NULL
WHERE locked = 1 AND lock_expires_at <= ?`
)

type accountsRepo struct {
	db *sql.DB
}

func scanAccount(row scanner) (domain.Account, error) {
	var (
		a       domain.Account
		profile string
		created int64
		expires sql.NullInt64
	)
	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.NationalID, &a.PasswordHash, &profile, &created,
		&a.FailedLogins, &a.Locked, &expires,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}

	if a.Profile, err = domain.ParseProfile(profile); err != nil {
		return domain.Account{}, fmt.Errorf("sqlite: account %d: %w", a.ID, err)
	}
	a.CreatedAt = fromNanos(created)
	a.LockExpiresAt = fromNullNanos(expires)
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, insertAccount,
		a.Name, a.Email, a.NationalID, a.PasswordHash, a.Profile.String(), toNanos(a.CreatedAt),
	)
	created, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapConflict(err)
	}
	return created, nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id int64) (domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx, selectAccountByID, id))
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx, selectAccountByEmail, email))
}

func (r *accountsRepo) GetAccountByNationalID(ctx context.Context, nationalID string) (domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx, selectAccountByNationalID, nationalID))
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, selectAccounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *accountsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, countAccounts).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

func (r *accountsRepo) RegisterFailedLogin(ctx context.Context, id int64, now time.Time) (domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx, registerFailedLogin,
		sql.Named("max", domain.MaxLoginAttempts),
		sql.Named("now", toNanos(now)),
		sql.Named("expiry", toNanos(now.Add(domain.LockoutDuration))),
		sql.Named("id", id),
	))
}

func (r *accountsRepo) ResetFailedLogins(ctx context.Context, id int64, now time.Time) (domain.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, resetFailedLogins,
		sql.Named("id", id),
		sql.Named("now", toNanos(now)),
	))
	if !errors.Is(err, store.ErrNotFound) {
		return a, err
	}

	// No row updated: either the account is gone or it is actively locked.
	current, err := r.GetAccountByID(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}
	return current, store.ErrLocked
}

func (r *accountsRepo) ClearExpiredLockouts(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, clearExpiredLockouts, toNanos(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
