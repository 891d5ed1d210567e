package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/qasurvey/internal/survey/service"
	"github.com/aussiebroadwan/qasurvey/pkg/httpx"
	"github.com/aussiebroadwan/qasurvey/pkg/slogx"
)

var errInternal = errors.New("internal_error")

// errorKinds maps each service error kind onto a status, checked in order.
var errorKinds = []struct {
	kind   error
	status int
}{
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrDuplicate, http.StatusConflict},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrLocked, http.StatusForbidden},
	{service.ErrTokenExpired, http.StatusUnauthorized},
	{service.ErrTokenMalformed, http.StatusUnauthorized},
	{service.ErrAccountGone, http.StatusUnauthorized},
	{service.ErrDenied, http.StatusForbidden},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrNotFound, http.StatusNotFound},
}

// writeError renders err as an ErrorResponse. Errors of no known kind are
// logged and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, k := range errorKinds {
		if !errors.Is(err, k.kind) {
			continue
		}

		resp := ErrorResponse{Error: k.kind.Error(), Message: err.Error()}

		var verr *service.ValidationError
		if errors.As(err, &verr) {
			resp.Message = verr.Message
			resp.Fields = verr.Fields
		}
		var cerr *service.CredentialsError
		if errors.As(err, &cerr) && cerr.RemainingAttempts > 0 {
			resp.RemainingAttempts = &cerr.RemainingAttempts
		}
		var lerr *service.LockoutError
		if errors.As(err, &lerr) {
			resp.MinutesRemaining = &lerr.MinutesRemaining
		}

		httpx.WriteJSON(w, k.status, resp)
		return
	}

	slogx.FromContext(r.Context()).Error("request failed", slogx.Err(err))
	httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   errInternal.Error(),
		Message: "an unexpected error occurred",
	})
}

// badRequest reports a malformed request that never reached a service.
func badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	writeError(w, r, &service.ValidationError{Message: msg})
}
