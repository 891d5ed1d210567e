package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/qasurvey/internal/survey/service"
	"github.com/aussiebroadwan/qasurvey/pkg/httpx"
)

type UsersHandler struct {
	AccountService *service.AccountService
}

// HandleMe returns the caller's account.
//
//	@Summary		Current account
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	AccountResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/api/users/me [get]
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())

	view, err := h.AccountService.Get(r.Context(), p.AccountID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, AccountResponse{Message: "account retrieved", User: view})
}

// HandleList returns every account.
//
//	@Summary		List accounts
//	@Description	Administrators only.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	AccountListResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse	"Not an administrator"
//	@Router			/api/users [get]
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	views, err := h.AccountService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, AccountListResponse{
		Message: "accounts retrieved",
		Total:   len(views),
		Users:   views,
	})
}

// HandleGet returns one account.
//
//	@Summary		Get an account
//	@Description	Administrators only.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Account id"
//	@Success		200	{object}	AccountResponse
//	@Failure		400	{object}	ErrorResponse	"Invalid id"
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse	"Not an administrator"
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/users/{id} [get]
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := h.AccountService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, AccountResponse{Message: "account retrieved", User: view})
}

// pathID parses the {id} path value, writing a 400 when it is not a
// positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, r, "id must be a positive integer")
		return 0, false
	}
	return id, true
}
