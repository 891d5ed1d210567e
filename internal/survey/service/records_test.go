package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func qaRecord() RecordInput {
	return RecordInput{
		Title:           "QA Analyst",
		ExperienceLevel: "mid",
		SalaryBand:      "5000-7000",
		Tools:           []string{" Selenium ", "Cypress", "Selenium", ""},
		Location:        "São Paulo",
		FunctionalArea:  "Automation",
	}
}

func TestCreateRecord(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	owner := h.register(t, 1, domain.ProfileQAProfessional)

	rec := h.record(t, owner, qaRecord())
	require.Equal(t, int64(1), rec.ID)
	require.Equal(t, owner.ID, *rec.OwnerID)
	require.Equal(t, domain.ProfileQAProfessional, rec.OwnerProfile)
	require.Equal(t, domain.LevelMid, rec.ExperienceLevel)
	require.Equal(t, []string{"Selenium", "Cypress"}, rec.Tools)
	require.Equal(t, epoch, rec.CreatedAt)
	require.Equal(t, epoch, rec.UpdatedAt)

	t.Run("one record per account", func(t *testing.T) {
		_, err := h.records.Create(ctx, owner.ID, owner.Profile, qaRecord())
		require.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("validation", func(t *testing.T) {
		other := h.register(t, 2, domain.ProfileStudent)

		_, err := h.records.Create(ctx, other.ID, other.Profile, RecordInput{
			Title:           "  ",
			ExperienceLevel: "pleno",
		})
		require.ErrorIs(t, err, ErrValidation)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)

		fields := map[string]bool{}
		for _, fe := range verr.Fields {
			fields[fe.Field] = true
		}
		require.Equal(t, map[string]bool{
			"title": true, "experienceLevel": true, "location": true, "functionalArea": true,
		}, fields)

		// Nothing was stored
		own, err := h.records.ListOwn(ctx, other.ID)
		require.NoError(t, err)
		require.Empty(t, own)
	})
}

func TestUpdateRecord(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	owner := h.register(t, 1, domain.ProfileQAProfessional)
	intruder := h.register(t, 2, domain.ProfileAdministrator)
	rec := h.record(t, owner, qaRecord())

	h.clock.Advance(time.Hour)

	t.Run("owner", func(t *testing.T) {
		got, err := h.records.Update(ctx, owner.ID, rec.ID, RecordUpdate{
			ExperienceLevel: ptr("senior"),
			Tools:           &[]string{"Playwright", "Playwright"},
		})
		require.NoError(t, err)
		require.Equal(t, domain.LevelSenior, got.ExperienceLevel)
		require.Equal(t, []string{"Playwright"}, got.Tools)
		require.Equal(t, "QA Analyst", got.Title)
		require.Equal(t, epoch, got.CreatedAt)
		require.Equal(t, epoch.Add(time.Hour), got.UpdatedAt)
	})

	t.Run("not found before forbidden", func(t *testing.T) {
		_, err := h.records.Update(ctx, intruder.ID, 404, RecordUpdate{Title: ptr("x")})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("forbidden", func(t *testing.T) {
		_, err := h.records.Update(ctx, intruder.ID, rec.ID, RecordUpdate{Title: ptr("Hijacked")})
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("invalid patch", func(t *testing.T) {
		_, err := h.records.Update(ctx, owner.ID, rec.ID, RecordUpdate{ExperienceLevel: ptr("guru")})
		require.ErrorIs(t, err, ErrValidation)

		_, err = h.records.Update(ctx, owner.ID, rec.ID, RecordUpdate{Location: ptr(" ")})
		require.ErrorIs(t, err, ErrValidation)

		own, err := h.records.ListOwn(ctx, owner.ID)
		require.NoError(t, err)
		require.Equal(t, "São Paulo", own[0].Location)
	})
}

func TestDeleteRecord(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	owner := h.register(t, 1, domain.ProfileStudent)
	other := h.register(t, 2, domain.ProfileStudent)
	rec := h.record(t, owner, qaRecord())

	require.ErrorIs(t, h.records.Delete(ctx, other.ID, rec.ID), ErrForbidden)
	require.ErrorIs(t, h.records.Delete(ctx, owner.ID, rec.ID+1), ErrNotFound)
	require.NoError(t, h.records.Delete(ctx, owner.ID, rec.ID))
	require.ErrorIs(t, h.records.Delete(ctx, owner.ID, rec.ID), ErrNotFound)

	// The owner may answer again
	again := h.record(t, owner, qaRecord())
	require.NotEqual(t, rec.ID, again.ID)
}

func seedListing(t *testing.T, h *harness) {
	t.Helper()
	inputs := []struct {
		profile domain.Profile
		in      RecordInput
	}{
		{domain.ProfileQAProfessional, RecordInput{Title: "QA Analyst", ExperienceLevel: "junior", SalaryBand: "3000-4000", Tools: []string{"Selenium"}, Location: "São Paulo", FunctionalArea: "Manual"}},
		{domain.ProfileQAProfessional, RecordInput{Title: "QA Engineer", ExperienceLevel: "senior", SalaryBand: "9000-12000", Tools: []string{"Cypress", "Postman"}, Location: "Recife", FunctionalArea: "Automation"}},
		{domain.ProfileStudent, RecordInput{Title: "Intern QA", ExperienceLevel: "junior", Tools: []string{"Selenium IDE"}, Location: "São Paulo", FunctionalArea: "Manual"}},
		{domain.ProfileManager, RecordInput{Title: "Test Manager", ExperienceLevel: "specialist", SalaryBand: "15000+", Tools: []string{"Jira"}, Location: "Lisbon", FunctionalArea: "Management"}},
		{domain.ProfileQAProfessional, RecordInput{Title: "SDET", ExperienceLevel: "mid", SalaryBand: "7000-9000", Tools: []string{"Playwright", "k6"}, Location: "Curitiba", FunctionalArea: "Automation"}},
	}
	for i, in := range inputs {
		acct := h.register(t, i+1, in.profile)
		h.record(t, acct, in.in)
	}
}

func TestListAnonymization(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	seedListing(t, h)

	public, err := h.records.List(ctx, ListQuery{}, false)
	require.NoError(t, err)
	require.Len(t, public.Items, 5)
	for _, item := range public.Items {
		require.Nil(t, item.OwnerID)
		require.NotEmpty(t, item.Title)
	}

	privileged, err := h.records.List(ctx, ListQuery{}, true)
	require.NoError(t, err)
	for i, item := range privileged.Items {
		require.NotNil(t, item.OwnerID)
		require.Equal(t, int64(i+1), *item.OwnerID)
	}
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	seedListing(t, h)

	tests := []struct {
		name string
		q    ListQuery
		want []int64
	}{
		{"no filter", ListQuery{}, []int64{1, 2, 3, 4, 5}},
		{"title substring", ListQuery{Title: "qa"}, []int64{1, 2, 3}},
		{"level exact", ListQuery{ExperienceLevel: "junior"}, []int64{1, 3}},
		{"location folded", ListQuery{Location: "SÃO"}, []int64{1, 3}},
		{"salary skips empty bands", ListQuery{SalaryBand: "000"}, []int64{1, 2, 4, 5}},
		{"tool substring", ListQuery{Tool: "selenium"}, []int64{1, 3}},
		{"owner profile", ListQuery{OwnerProfile: "qa_professional"}, []int64{1, 2, 5}},
		{"functional area", ListQuery{FunctionalArea: "auto"}, []int64{2, 5}},
		{"conjunctive", ListQuery{Location: "são paulo", ExperienceLevel: "junior", OwnerProfile: "student"}, []int64{3}},
		{"nothing matches", ListQuery{Title: "qa", FunctionalArea: "management"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := h.records.List(ctx, tt.q, false)
			require.NoError(t, err)

			ids := make([]int64, 0, len(page.Items))
			for _, item := range page.Items {
				ids = append(ids, item.ID)
			}
			require.Equal(t, tt.want, ids)
			require.Equal(t, len(tt.want), page.Pagination.TotalItems)
		})
	}

	t.Run("filters are echoed", func(t *testing.T) {
		page, err := h.records.List(ctx, ListQuery{Tool: "k6", ExperienceLevel: "mid"}, false)
		require.NoError(t, err)
		require.Equal(t, domain.ListFilter{Tool: "k6", ExperienceLevel: domain.LevelMid}, page.Filters)
	})

	t.Run("unknown enum values", func(t *testing.T) {
		_, err := h.records.List(ctx, ListQuery{ExperienceLevel: "pleno"}, false)
		require.ErrorIs(t, err, ErrValidation)

		_, err = h.records.List(ctx, ListQuery{OwnerProfile: "root"}, false)
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestListPagination(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	seedListing(t, h)

	first, err := h.records.List(ctx, ListQuery{Page: 1, Limit: 2}, false)
	require.NoError(t, err)
	require.Equal(t, domain.Pagination{
		CurrentPage: 1, TotalPages: 3, TotalItems: 5, ItemsPerPage: 2,
		HasNextPage: true, HasPreviousPage: false,
	}, first.Pagination)

	var all []int64
	for page := 1; page <= first.Pagination.TotalPages; page++ {
		p, err := h.records.List(ctx, ListQuery{Page: page, Limit: 2}, false)
		require.NoError(t, err)
		for _, item := range p.Items {
			all = append(all, item.ID)
		}
	}
	require.Equal(t, []int64{1, 2, 3, 4, 5}, all)

	last, err := h.records.List(ctx, ListQuery{Page: 3, Limit: 2}, false)
	require.NoError(t, err)
	require.False(t, last.Pagination.HasNextPage)
	require.True(t, last.Pagination.HasPreviousPage)

	beyond, err := h.records.List(ctx, ListQuery{Page: 9, Limit: 2}, false)
	require.NoError(t, err)
	require.Empty(t, beyond.Items)

	defaults, err := h.records.List(ctx, ListQuery{}, false)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultPage, defaults.Pagination.CurrentPage)
	require.Equal(t, domain.DefaultLimit, defaults.Pagination.ItemsPerPage)

	_, err = h.records.List(ctx, ListQuery{Page: -1}, false)
	require.ErrorIs(t, err, ErrValidation)
	_, err = h.records.List(ctx, ListQuery{Limit: -5}, false)
	require.ErrorIs(t, err, ErrValidation)
}

func TestListPaginationBounds(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	seedListing(t, h)

	full, err := h.records.List(ctx, ListQuery{Page: 1, Limit: domain.MaxLimit}, false)
	require.NoError(t, err)
	require.Len(t, full.Items, 5)
	require.Equal(t, 1, full.Pagination.TotalPages)

	_, err = h.records.List(ctx, ListQuery{Limit: domain.MaxLimit + 1}, false)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "limit", verr.Fields[0].Field)
	require.Equal(t, "must be at most 100", verr.Fields[0].Message)

	_, err = h.records.List(ctx, ListQuery{Limit: math.MaxInt}, false)
	require.ErrorIs(t, err, ErrValidation)

	far, err := h.records.List(ctx, ListQuery{Page: math.MaxInt, Limit: 10}, false)
	require.NoError(t, err)
	require.Empty(t, far.Items)
	require.Equal(t, 5, far.Pagination.TotalItems)
	require.False(t, far.Pagination.HasNextPage)
	require.True(t, far.Pagination.HasPreviousPage)
}

func TestStatistics(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	empty, err := h.records.Statistics(ctx)
	require.NoError(t, err)
	require.Zero(t, empty.Total)
	require.Empty(t, empty.ToolUsage)

	seedListing(t, h)

	stats, err := h.records.Statistics(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, stats.Total)
	require.Equal(t, map[string]int{"junior": 2, "mid": 1, "senior": 1, "specialist": 1}, stats.ByLevel)
	require.Equal(t, 2, stats.ByLocation["São Paulo"])
	require.Equal(t, 1, stats.ByTitle["SDET"])
	require.Equal(t, 1, stats.ToolUsage["Selenium"])
	require.Equal(t, 1, stats.ToolUsage["Selenium IDE"])
	require.Len(t, stats.ToolUsage, 7)
}
