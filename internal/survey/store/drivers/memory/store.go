// Package memory is a volatile store driver. All state lives behind one
// RWMutex and is lost when the process exits.
package memory

import (
	"context"
	"sync"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/aussiebroadwan/qasurvey/internal/survey/store"
)

type Store struct {
	mu sync.RWMutex

	accounts     map[int64]*domain.Account
	byEmail      map[string]int64
	byNationalID map[string]int64
	nextAccount  int64

	records    map[int64]*domain.Record
	byOwner    map[int64]int64
	nextRecord int64
}

var _ store.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		accounts:     make(map[int64]*domain.Account),
		byEmail:      make(map[string]int64),
		byNationalID: make(map[string]int64),
		nextAccount:  1,
		records:      make(map[int64]*domain.Record),
		byOwner:      make(map[int64]int64),
		nextRecord:   1,
	}
}

func (s *Store) Accounts() store.Accounts { return (*accountsRepo)(s) }
func (s *Store) Records() store.Records   { return (*recordsRepo)(s) }

// ApplyMigrations is a no-op; there is no schema.
func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Close() error { return nil }

// Copies keep callers from mutating stored state through shared pointers
// or slices.

func copyAccount(a *domain.Account) domain.Account {
	out := *a
	if a.LockExpiresAt != nil {
		t := *a.LockExpiresAt
		out.LockExpiresAt = &t
	}
	return out
}

func copyRecord(r *domain.Record) domain.Record {
	out := *r
	out.Tools = append([]string{}, r.Tools...)
	return out
}
