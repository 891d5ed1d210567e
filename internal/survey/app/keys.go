package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/qasurvey/pkg/cryptox"
	"github.com/aussiebroadwan/qasurvey/pkg/idx"
	"github.com/aussiebroadwan/qasurvey/pkg/jwtx"
)

// InitSigner loads the session signing key once at startup.
//
// HS256 uses TokenSecret, or a random secret when none is set. EdDSA reads a
// PKCS8 PEM key from TokenKeyFile, or generates one when no file is set. A
// generated key lives only in memory, so tokens do not survive a restart.
func InitSigner(cfg Config, logger *slog.Logger) (jwtx.Signer, error) {
	var (
		signer    jwtx.Signer
		generated bool
		err       error
	)

	kid := idx.New().String()

	switch jwtx.NormalizeAlg(cfg.TokenAlgorithm) {
	case jwtx.AlgEdDSA:
		var pemKey []byte
		if cfg.TokenKeyFile == "" {
			generated = true
			pemKey, err = cryptox.GenerateEd25519Key()
		} else {
			pemKey, err = os.ReadFile(filepath.Clean(cfg.TokenKeyFile))
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load EdDSA key: %w", err)
		}
		signer, err = jwtx.NewSignerEdDSA(kid, pemKey)

	case jwtx.AlgHS256:
		secret := cfg.TokenSecret
		if secret == "" {
			generated = true
			secret, err = cryptox.GenerateToken(cryptox.TokenSize512)
			if err != nil {
				return nil, fmt.Errorf("failed to generate HS256 secret: %w", err)
			}
		}
		signer, err = jwtx.NewSignerHS256(kid, []byte(secret))

	default:
		return nil, fmt.Errorf("unsupported token algorithm %q", cfg.TokenAlgorithm)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("session signer ready", "algorithm", signer.Alg(), "kid", signer.KID())
	if generated {
		logger.Warn("session key generated at startup, tokens will not survive a restart")
	}

	return signer, nil
}
