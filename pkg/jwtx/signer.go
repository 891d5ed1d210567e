package jwtx

import "strings"

// Supported signing algorithms.
const (
	AlgHS256 = "HS256"
	AlgEdDSA = "EdDSA"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)

	// VerificationKey is the key a Verifier needs to check this signer's
	// tokens: the shared secret for HMAC, the public key otherwise.
	VerificationKey() any
	Validate() error
}

// NewSignerHS256 creates an HS256 signer from a shared secret.
func NewSignerHS256(kid string, secret []byte) (Signer, error) {
	return newHS256Signer(kid, secret)
}

// NewSignerEdDSA creates an EdDSA signer from PEM bytes.
// Ed25519 keys must be in PKCS8 format.
func NewSignerEdDSA(kid string, pemKey []byte) (Signer, error) {
	return newEdDSASigner(kid, pemKey)
}

// NormalizeAlg maps user supplied algorithm names onto the canonical ones,
// returning "" for anything unsupported.
func NormalizeAlg(alg string) string {
	switch strings.ToUpper(strings.TrimSpace(alg)) {
	case "", "HS256":
		return AlgHS256
	case "EDDSA", "ED25519":
		return AlgEdDSA
	default:
		return ""
	}
}
