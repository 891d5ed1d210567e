package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Leeway allows small clock skew when validating exp/nbf/iat.
	Leeway time.Duration

	// Now overrides the clock used for exp/nbf checks. Nil means time.Now.
	Now func() time.Time
}

var (
	ErrMalformed = errors.New("jwtx: malformed token")
	ErrExpired   = errors.New("jwtx: token expired")
	ErrIssuer    = errors.New("jwtx: issuer mismatch")
)

// Verifier validates a JWT signed by a single known key and gives you back
// the claims if it's legit.
type Verifier struct {
	alg  string
	key  any
	opts VerifyOptions
}

// NewVerifier builds a verifier that accepts only tokens produced by the
// given signer's algorithm and key.
func NewVerifier(s Signer, opts VerifyOptions) *Verifier {
	return &Verifier{alg: s.Alg(), key: s.VerificationKey(), opts: opts}
}

// Verify parses and validates the token. Every failure is reported as either
// ErrExpired, ErrIssuer or ErrMalformed so callers only need errors.Is.
func (v *Verifier) Verify(tokenStr string) (Claims, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{v.alg}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if v.opts.Leeway > 0 {
		parserOpts = append(parserOpts, jwt.WithLeeway(v.opts.Leeway))
	}
	if v.opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.opts.Issuer))
	}
	if v.opts.Now != nil {
		parserOpts = append(parserOpts, jwt.WithTimeFunc(v.opts.Now))
	}

	claims := &Claims{}
	token, err := jwt.NewParser(parserOpts...).ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrExpired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return Claims{}, ErrIssuer
	case err != nil:
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	case !token.Valid:
		return Claims{}, ErrMalformed
	}

	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", ErrMalformed)
	}

	return *claims, nil
}
