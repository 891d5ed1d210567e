package service

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
)

// ListQuery is a filtered, paginated listing request. Zero Page and Limit
// select domain.DefaultPage and domain.DefaultLimit; Limit is capped at
// domain.MaxLimit.
type ListQuery struct {
	Title           string `query:"title"`
	ExperienceLevel string `query:"experienceLevel" validate:"omitempty,experience_level"`
	Location        string `query:"location"`
	SalaryBand      string `query:"salaryBand"`
	Tool            string `query:"tool"`
	OwnerProfile    string `query:"ownerProfile" validate:"omitempty,profile"`
	FunctionalArea  string `query:"functionalArea"`

	Page  int `query:"page" validate:"gte=0"`
	Limit int `query:"limit" validate:"gte=0,lte=100"`
}

func (q ListQuery) filter() (domain.ListFilter, error) {
	f := domain.ListFilter{
		Title:          q.Title,
		Location:       q.Location,
		SalaryBand:     q.SalaryBand,
		Tool:           q.Tool,
		FunctionalArea: q.FunctionalArea,
	}

	var err error
	if q.ExperienceLevel != "" {
		if f.ExperienceLevel, err = domain.ParseExperienceLevel(q.ExperienceLevel); err != nil {
			return domain.ListFilter{}, err
		}
	}
	if q.OwnerProfile != "" {
		if f.OwnerProfile, err = domain.ParseProfile(q.OwnerProfile); err != nil {
			return domain.ListFilter{}, err
		}
	}
	return f, nil
}

// List filters a snapshot of every record and returns one page of it. Owner
// ids are only shown to privileged readers.
func (s *RecordService) List(ctx context.Context, q ListQuery, privileged bool) (domain.RecordPage, error) {
	if err := s.Validator.Struct(q); err != nil {
		return domain.RecordPage{}, invalid("invalid listing query", err)
	}

	f, err := q.filter()
	if err != nil {
		return domain.RecordPage{}, invalid("invalid listing query", err)
	}

	page, limit := q.Page, q.Limit
	if page == 0 {
		page = domain.DefaultPage
	}
	if limit == 0 {
		limit = domain.DefaultLimit
	}

	recs, err := s.Store.Records().ListRecords(ctx)
	if err != nil {
		return domain.RecordPage{}, fmt.Errorf("list records: %w", err)
	}

	matched := make([]domain.RecordView, 0, len(recs))
	for _, r := range recs {
		if f.Match(r) {
			matched = append(matched, r.View(privileged))
		}
	}

	items, p := domain.Paginate(matched, page, limit)
	return domain.RecordPage{Items: items, Pagination: p, Filters: f}, nil
}

// Statistics aggregates every record.
func (s *RecordService) Statistics(ctx context.Context) (domain.Statistics, error) {
	recs, err := s.Store.Records().ListRecords(ctx)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("list records: %w", err)
	}
	return domain.Aggregate(recs), nil
}
