package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/aussiebroadwan/qasurvey/internal/survey/service"
	"github.com/aussiebroadwan/qasurvey/pkg/httpx"
	"github.com/aussiebroadwan/qasurvey/pkg/slogx"
)

// authenticate resolves the bearer token into a principal, rejecting the
// request otherwise.
func (r *Router) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		p, err := r.Sessions.Authenticate(req.Context(), req.Header.Get("Authorization"))
		if err != nil {
			if !errors.Is(err, service.ErrLocked) {
				httpx.SetBearerChallenge(w, err.Error())
			}
			writeError(w, req, err)
			return
		}

		ctx := withPrincipal(req.Context(), p)
		ctx = httpx.WithSubject(ctx, strconv.FormatInt(p.AccountID, 10))
		ctx = slogx.With(ctx, "account_id", p.AccountID)

		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// requireProfiles admits only principals whose profile is in allowed.
func requireProfiles(allowed domain.ProfileSet) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := principalFrom(r.Context())
			if err := service.Authorize(p.Profile, allowed); err != nil {
				slogx.FromContext(r.Context()).Warn("access denied",
					slog.String("profile", p.Profile.String()),
					slog.String("path", r.URL.Path),
				)
				writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
