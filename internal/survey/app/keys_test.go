package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/qasurvey/pkg/cryptox"
	"github.com/aussiebroadwan/qasurvey/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func signRoundTrip(t *testing.T, s jwtx.Signer) {
	t.Helper()

	now := time.Now()
	token, err := s.Sign(jwtx.NewSessionClaims("1", "a@example.com", "student", "qasurvey", time.Hour, now))
	require.NoError(t, err)

	claims, err := jwtx.NewVerifier(s, jwtx.VerifyOptions{Issuer: "qasurvey"}).Verify(token)
	require.NoError(t, err)
	require.Equal(t, "1", claims.Subject)
}

func TestInitSigner(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("HS256 configured secret", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TokenSecret = strings.Repeat("k", 32)

		s, err := InitSigner(cfg, logger)
		require.NoError(t, err)
		require.Equal(t, jwtx.AlgHS256, s.Alg())
		require.NotEmpty(t, s.KID())
		signRoundTrip(t, s)
	})

	t.Run("HS256 generated secret", func(t *testing.T) {
		s, err := InitSigner(DefaultConfig(), logger)
		require.NoError(t, err)
		require.NoError(t, s.Validate())
		signRoundTrip(t, s)
	})

	t.Run("EdDSA generated key", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TokenAlgorithm = jwtx.AlgEdDSA

		s, err := InitSigner(cfg, logger)
		require.NoError(t, err)
		require.Equal(t, jwtx.AlgEdDSA, s.Alg())
		signRoundTrip(t, s)
	})

	t.Run("EdDSA key file", func(t *testing.T) {
		pemKey, err := cryptox.GenerateEd25519Key()
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "session.pem")
		require.NoError(t, os.WriteFile(path, pemKey, 0o600))

		cfg := DefaultConfig()
		cfg.TokenAlgorithm = jwtx.AlgEdDSA
		cfg.TokenKeyFile = path

		s, err := InitSigner(cfg, logger)
		require.NoError(t, err)
		signRoundTrip(t, s)
	})

	t.Run("EdDSA missing key file", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TokenAlgorithm = jwtx.AlgEdDSA
		cfg.TokenKeyFile = filepath.Join(t.TempDir(), "missing.pem")

		_, err := InitSigner(cfg, logger)
		require.Error(t, err)
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TokenAlgorithm = "RS256"

		_, err := InitSigner(cfg, logger)
		require.Error(t, err)
	})
}
