package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrNotOwner      = errors.New("store: not owner")
	ErrLocked        = errors.New("store: account locked")
)

// ConflictError names the unique field a write collided on. It matches
// ErrAlreadyExists with errors.Is.
type ConflictError struct {
	Field string // "email", "national_id" or "owner_id"
}

func (e *ConflictError) Error() string { return "store: already exists: " + e.Field }

func (e *ConflictError) Is(target error) bool { return target == ErrAlreadyExists }

// Store is the root data access interface. Concrete drivers (memory, sqlite)
// implement it. Every method that changes lockout or record state is a
// single atomic step in the driver; services never read-modify-write.
type Store interface {
	Accounts() Accounts
	Records() Records

	ApplyMigrations() error

	// Ping verifies the backing storage is usable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

type Accounts interface {
	// CreateAccount assigns the next id and inserts the account. A clash on
	// email or national id yields a *ConflictError.
	CreateAccount(ctx context.Context, a domain.Account) (domain.Account, error)

	GetAccountByID(ctx context.Context, id int64) (domain.Account, error)

	// GetAccountByEmail matches the email exactly.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	GetAccountByNationalID(ctx context.Context, nationalID string) (domain.Account, error)

	// ListAccounts returns every account ordered by id.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// IsEmpty returns true if there are no accounts.
	IsEmpty(ctx context.Context) (bool, error)

	// RegisterFailedLogin increments the failure counter and, when the new
	// count reaches domain.MaxLoginAttempts and the account is not already
	// locked at now, locks it until now+domain.LockoutDuration. Returns the
	// account as left by the update.
	RegisterFailedLogin(ctx context.Context, id int64, now time.Time) (domain.Account, error)

	// ResetFailedLogins clears the counter and any lock, unless the account
	// is locked at now, in which case it returns the account and ErrLocked.
	ResetFailedLogins(ctx context.Context, id int64, now time.Time) (domain.Account, error)

	// ClearExpiredLockouts unlocks every account whose lock expired at or
	// before now and returns how many were cleared.
	ClearExpiredLockouts(ctx context.Context, now time.Time) (int64, error)
}

type Records interface {
	// CreateRecord assigns the next id and inserts the record. An owner that
	// already has one yields a *ConflictError on "owner_id".
	CreateRecord(ctx context.Context, r domain.Record) (domain.Record, error)

	GetRecord(ctx context.Context, id int64) (domain.Record, error)

	// UpdateRecord applies patch if ownerID owns record id. Returns
	// ErrNotFound or ErrNotOwner otherwise, in that order of precedence.
	UpdateRecord(ctx context.Context, id, ownerID int64, patch domain.RecordPatch, now time.Time) (domain.Record, error)

	// DeleteRecord removes record id if ownerID owns it, with the same
	// errors as UpdateRecord.
	DeleteRecord(ctx context.Context, id, ownerID int64) error

	ListRecordsByOwner(ctx context.Context, ownerID int64) ([]domain.Record, error)

	// ListRecords returns a snapshot of every record ordered by id.
	ListRecords(ctx context.Context) ([]domain.Record, error)
}
