package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/aussiebroadwan/qasurvey/pkg/cryptox"
	"github.com/aussiebroadwan/qasurvey/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestSessionVerify(t *testing.T) {
	h := newHarness(t)
	acct := domain.Account{ID: 7, Email: "ana@example.com", Profile: domain.ProfileManager}

	session, err := h.sessions.Issue(acct)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		claims, err := h.sessions.Verify(session.Token)
		require.NoError(t, err)
		require.Equal(t, int64(7), claims.AccountID)
		require.Equal(t, "ana@example.com", claims.Email)
		require.Equal(t, domain.ProfileManager, claims.Profile)
		require.NotEmpty(t, claims.ID)
		require.Equal(t, session.ExpiresAt, claims.ExpiresAt)
	})

	t.Run("tampered", func(t *testing.T) {
		_, err := h.sessions.Verify(session.Token + "x")
		require.ErrorIs(t, err, ErrTokenMalformed)

		_, err = h.sessions.Verify("not-a-jwt")
		require.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("other key", func(t *testing.T) {
		other, err := jwtx.NewSignerHS256("", []byte(strings.Repeat("o", 32)))
		require.NoError(t, err)
		foreign := &SessionService{Signer: other, Issuer: testIssuer, Now: h.clock.Now}

		_, err = foreign.Verify(session.Token)
		require.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("other issuer", func(t *testing.T) {
		foreign := &SessionService{Signer: h.sessions.Signer, Issuer: "someone-else", Now: h.clock.Now}

		_, err := foreign.Verify(session.Token)
		require.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("expired", func(t *testing.T) {
		late := &SessionService{
			Signer: h.sessions.Signer,
			Issuer: testIssuer,
			Now:    func() time.Time { return epoch.Add(jwtx.DefaultSessionTTL + time.Second) },
		}

		_, err := late.Verify(session.Token)
		require.ErrorIs(t, err, ErrTokenExpired)
	})
}

func TestSessionEdDSA(t *testing.T) {
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("", pemKey)
	require.NoError(t, err)

	s := &SessionService{Signer: signer, Issuer: testIssuer, TTL: time.Hour}
	session, err := s.Issue(domain.Account{ID: 1, Email: "a@b.co", Profile: domain.ProfileStudent})
	require.NoError(t, err)

	claims, err := s.Verify(session.Token)
	require.NoError(t, err)
	require.Equal(t, int64(1), claims.AccountID)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestSessionAuthenticate(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	acct := h.register(t, 1, domain.ProfileRecruiter)

	res, err := h.auth.Authenticate(ctx, acct.Email, "Senha123")
	require.NoError(t, err)
	token := res.Session.Token

	t.Run("valid", func(t *testing.T) {
		for _, scheme := range []string{"Bearer", "bearer", "BEARER"} {
			p, err := h.sessions.Authenticate(ctx, scheme+" "+token)
			require.NoError(t, err)
			require.Equal(t, Principal{AccountID: acct.ID, Email: acct.Email, Profile: domain.ProfileRecruiter}, p)
		}
	})

	t.Run("bad headers", func(t *testing.T) {
		for _, header := range []string{
			"",
			token,
			"Basic " + token,
			"Bearer",
			"Bearer " + token + " extra",
		} {
			_, err := h.sessions.Authenticate(ctx, header)
			require.ErrorIs(t, err, ErrTokenMalformed, "header %q", header)
		}
	})

	t.Run("account gone", func(t *testing.T) {
		ghost, err := h.sessions.Issue(domain.Account{ID: 999, Email: "ghost@example.com", Profile: domain.ProfileStudent})
		require.NoError(t, err)

		_, err = h.sessions.Authenticate(ctx, "Bearer "+ghost.Token)
		require.ErrorIs(t, err, ErrAccountGone)
	})

	t.Run("locked account", func(t *testing.T) {
		for range domain.MaxLoginAttempts {
			_, _ = h.auth.Authenticate(ctx, acct.Email, "wrong-password")
		}

		_, err := h.sessions.Authenticate(ctx, "Bearer "+token)
		require.ErrorIs(t, err, ErrLocked)

		h.clock.Advance(domain.LockoutDuration)
		_, err = h.sessions.Authenticate(ctx, "Bearer "+token)
		require.NoError(t, err)
	})
}
