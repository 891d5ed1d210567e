package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/aussiebroadwan/qasurvey/internal/survey/service"
	"github.com/aussiebroadwan/qasurvey/pkg/httpx"
)

type ResearchHandler struct {
	RecordService *service.RecordService
}

// HandleCreate stores the caller's survey record.
//
//	@Summary		Submit a survey record
//	@Description	Each account may hold one record. The caller's profile is recorded with it.
//	@Tags			Research
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.RecordInput	true	"Survey record"
//	@Success		201		{object}	RecordResponse
//	@Failure		400		{object}	ErrorResponse	"Invalid input"
//	@Failure		401		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse	"Account already has a record"
//	@Router			/api/research [post]
func (h *ResearchHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())

	var in service.RecordInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		badRequest(w, r, "request body must be a JSON object")
		return
	}

	rec, err := h.RecordService.Create(r.Context(), p.AccountID, p.Profile, in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, RecordResponse{Message: "survey record created", Data: rec})
}

// HandleUpdate changes the caller's survey record.
//
//	@Summary		Update a survey record
//	@Description	Only supplied fields change. Only the owner may update.
//	@Tags			Research
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Record id"
//	@Param			request	body		service.RecordUpdate	true	"Fields to change"
//	@Success		200		{object}	RecordResponse
//	@Failure		400		{object}	ErrorResponse	"Invalid input"
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse	"Not the owner"
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/research/{id} [put]
func (h *ResearchHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in service.RecordUpdate
	if err := httpx.DecodeJSON(r, &in); err != nil {
		badRequest(w, r, "request body must be a JSON object")
		return
	}

	rec, err := h.RecordService.Update(r.Context(), p.AccountID, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, RecordResponse{Message: "survey record updated", Data: rec})
}

// HandleDelete removes the caller's survey record.
//
//	@Summary		Delete a survey record
//	@Tags			Research
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Record id"
//	@Success		200	{object}	MessageResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse	"Not the owner"
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/research/{id} [delete]
func (h *ResearchHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.RecordService.Delete(r.Context(), p.AccountID, id); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "survey record deleted"})
}

// HandleListOwn returns the caller's records.
//
//	@Summary		My survey records
//	@Tags			Research
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	RecordListResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/api/research/me [get]
func (h *ResearchHandler) HandleListOwn(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())

	recs, err := h.RecordService.ListOwn(r.Context(), p.AccountID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, RecordListResponse{
		Message: "survey records retrieved",
		Total:   len(recs),
		Data:    recs,
	})
}

// HandleList filters and paginates every record.
//
//	@Summary		List survey records
//	@Description	Text filters match case-insensitive substrings; experienceLevel and ownerProfile match exactly.
//	@Description	Owner ids are only included for administrators and managers.
//	@Tags			Research
//	@Security		BearerAuth
//	@Produce		json
//	@Param			title			query		string	false	"Title contains"
//	@Param			experienceLevel	query		string	false	"Experience level"	Enums(junior, mid, senior, specialist)
//	@Param			location		query		string	false	"Location contains"
//	@Param			salaryBand		query		string	false	"Salary band contains"
//	@Param			tool			query		string	false	"Any tool contains"
//	@Param			ownerProfile	query		string	false	"Owner profile"	Enums(student, qa_professional, manager, recruiter, administrator)
//	@Param			functionalArea	query		string	false	"Functional area contains"
//	@Param			page			query		int		false	"Page, from 1"		default(1)
//	@Param			limit			query		int		false	"Items per page"	default(10)	maximum(100)
//	@Success		200				{object}	RecordPageResponse
//	@Failure		400				{object}	ErrorResponse	"Invalid filter or pagination"
//	@Failure		401				{object}	ErrorResponse
//	@Router			/api/research [get]
func (h *ResearchHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())

	q, err := parseListQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.RecordService.List(r.Context(), q, p.Profile.Privileged())
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, RecordPageResponse{
		Message:    "survey records retrieved",
		RecordPage: page,
	})
}

// HandleStatistics aggregates every record.
//
//	@Summary		Survey statistics
//	@Description	Administrators and managers only.
//	@Tags			Research
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	StatisticsResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse	"Not an administrator or manager"
//	@Router			/api/research/stats/all [get]
func (h *ResearchHandler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.RecordService.Statistics(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, StatisticsResponse{
		Message:    "statistics retrieved",
		Statistics: stats,
	})
}

// parseListQuery reads filters and pagination from the query string. Range
// checks are left to the service; only non-integers are rejected here.
func parseListQuery(v url.Values) (service.ListQuery, error) {
	q := service.ListQuery{
		Title:           v.Get("title"),
		ExperienceLevel: v.Get("experienceLevel"),
		Location:        v.Get("location"),
		SalaryBand:      v.Get("salaryBand"),
		Tool:            v.Get("tool"),
		OwnerProfile:    v.Get("ownerProfile"),
		FunctionalArea:  v.Get("functionalArea"),
	}

	var err error
	if q.Page, err = queryInt(v, "page"); err != nil {
		return service.ListQuery{}, err
	}
	if q.Limit, err = queryInt(v, "limit"); err != nil {
		return service.ListQuery{}, err
	}
	return q, nil
}

func queryInt(v url.Values, key string) (int, error) {
	s := v.Get(key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &service.ValidationError{Message: key + " must be an integer"}
	}
	return n, nil
}
