package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/qasurvey/internal/survey/service"
	"github.com/aussiebroadwan/qasurvey/pkg/httpx"
)

type AuthHandler struct {
	AuthService    *service.AuthService
	AccountService *service.AccountService
}

// HandleRegister creates an account.
//
//	@Summary		Register an account
//	@Description	Creates an account. Email and national id must be unused; the password needs 8 characters with upper case, lower case and a digit.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.RegisterInput	true	"New account"
//	@Success		201		{object}	AccountResponse
//	@Failure		400		{object}	ErrorResponse	"Invalid input"
//	@Failure		409		{object}	ErrorResponse	"Email or national id already registered"
//	@Failure		429		{object}	ErrorResponse	"Rate limited"
//	@Router			/api/auth/register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		badRequest(w, r, "request body must be a JSON object")
		return
	}

	view, err := h.AccountService.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, AccountResponse{
		Message: "account registered",
		User:    view,
	})
}

// HandleLogin exchanges credentials for a session token.
//
//	@Summary		Log in
//	@Description	Verifies email and password and returns a bearer token valid for 24 hours.
//	@Description	Three consecutive failures block the account for 15 minutes.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	LoginResponse
//	@Failure		400		{object}	ErrorResponse	"Missing email or password"
//	@Failure		401		{object}	ErrorResponse	"Invalid credentials, with remainingAttempts when known"
//	@Failure		403		{object}	ErrorResponse	"Account blocked, with minutesRemaining"
//	@Failure		429		{object}	ErrorResponse	"Rate limited"
//	@Router			/api/auth/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in LoginRequest
	if err := httpx.DecodeJSON(r, &in); err != nil {
		badRequest(w, r, "request body must be a JSON object")
		return
	}

	res, err := h.AuthService.Authenticate(r.Context(), in.Email, in.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		Message:   "login successful",
		Token:     res.Session.Token,
		TokenType: res.Session.TokenType,
		ExpiresAt: res.Session.ExpiresAt.UTC().Format(time.RFC3339),
		User:      res.Account,
	})
}

// HandleValidate echoes the caller of a valid token.
//
//	@Summary		Validate a token
//	@Description	Returns the principal carried by the bearer token.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	ValidateResponse
//	@Failure		401	{object}	ErrorResponse	"Missing, malformed or expired token"
//	@Failure		403	{object}	ErrorResponse	"Account blocked"
//	@Router			/api/auth/validate [get]
func (h *AuthHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, ValidateResponse{
		Message: "token is valid",
		User:    principalFrom(r.Context()),
	})
}
