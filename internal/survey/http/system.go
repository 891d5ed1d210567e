package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/qasurvey/internal/survey/store"
	"github.com/aussiebroadwan/qasurvey/pkg/httpx"
	"github.com/aussiebroadwan/qasurvey/pkg/jwtx"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning status, uptime and version. Always 200 while the process runs.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse	"status, uptime, version"
//	@Router			/livez [get]
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the store and the session signer.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	HealthResponse	"service not ready"
//	@Router			/readyz [get]
func ReadyzHandler(startTime time.Time, version string, st store.Store, signer jwtx.Signer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &HealthChecks{Database: "ok", Signer: "ok"}
		status, code := "ok", http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
		}
		if signer == nil {
			checks.Signer = "error: no signer loaded"
			status, code = "degraded", http.StatusServiceUnavailable
		} else if err := signer.Validate(); err != nil {
			checks.Signer = "error: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

// APIInfoHandler godoc
//
//	@Summary		API index
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	APIInfoResponse
//	@Router			/api [get]
func APIInfoHandler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, APIInfoResponse{
			Message: "QA market survey API",
			Version: version,
			Endpoints: map[string]string{
				"auth":          "/api/auth",
				"users":         "/api/users",
				"research":      "/api/research",
				"documentation": "/swagger/index.html",
			},
		})
	}
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{
		Error:   "route_not_found",
		Message: "route " + r.Method + " " + r.URL.Path + " does not exist",
	})
}
