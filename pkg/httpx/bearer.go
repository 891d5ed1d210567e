package httpx

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrMissingBearer   = errors.New("httpx: missing authorization header")
	ErrMalformedBearer = errors.New("httpx: malformed authorization header")
)

// ParseBearer extracts the token from an Authorization header value. The
// value must be exactly two space separated parts and the scheme is matched
// case-insensitively.
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", ErrMissingBearer
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrMalformedBearer
	}

	return parts[1], nil
}

// SetBearerChallenge sets an RFC 6750 WWW-Authenticate header. The caller
// still writes the status and body.
func SetBearerChallenge(w http.ResponseWriter, desc string) {
	desc = strings.ReplaceAll(desc, `"`, `'`)
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
}
