package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/aussiebroadwan/qasurvey/internal/survey/store/drivers/memory"
	"github.com/aussiebroadwan/qasurvey/internal/survey/validate"
	"github.com/aussiebroadwan/qasurvey/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "qasurvey-test"

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// fakeClock is a settable clock shared by every service of a harness.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type harness struct {
	clock    *fakeClock
	store    *memory.Store
	sessions *SessionService
	auth     *AuthService
	accounts *AccountService
	records  *RecordService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	signer, err := jwtx.NewSignerHS256("", []byte(strings.Repeat("s", jwtx.MinHS256SecretSize)))
	require.NoError(t, err)

	clock := &fakeClock{t: epoch}
	st := memory.NewStore()
	v := validate.New()

	sessions := &SessionService{Store: st, Signer: signer, Issuer: testIssuer, Now: clock.Now}
	return &harness{
		clock:    clock,
		store:    st,
		sessions: sessions,
		auth:     &AuthService{Store: st, Sessions: sessions, Now: clock.Now},
		accounts: &AccountService{Store: st, Validator: v, Now: clock.Now},
		records:  &RecordService{Store: st, Validator: v, Now: clock.Now},
	}
}

// register creates an account with password "Senha123". n keeps email and
// national id unique.
func (h *harness) register(t *testing.T, n int, profile domain.Profile) domain.AccountView {
	t.Helper()
	view, err := h.accounts.Register(context.Background(), RegisterInput{
		Name:       "User",
		Email:      emailFor(n),
		NationalID: nationalIDFor(n),
		Password:   "Senha123",
		Profile:    profile.String(),
	})
	require.NoError(t, err)
	return view
}

func emailFor(n int) string {
	return "user" + string(rune('a'+n)) + "@example.com"
}

func nationalIDFor(n int) string {
	return "1234567890" + string(rune('0'+n%10))
}

func (h *harness) record(t *testing.T, owner domain.AccountView, in RecordInput) domain.RecordView {
	t.Helper()
	rec, err := h.records.Create(context.Background(), owner.ID, owner.Profile, in)
	require.NoError(t, err)
	return rec
}
