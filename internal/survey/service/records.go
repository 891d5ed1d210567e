package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/aussiebroadwan/qasurvey/internal/survey/store"
	"github.com/aussiebroadwan/qasurvey/internal/survey/validate"
	"github.com/aussiebroadwan/qasurvey/pkg/slogx"
)

// RecordService manages survey records and the queries over them.
type RecordService struct {
	Store     store.Store
	Validator *validate.Validator
	Now       Clock
}

// RecordInput is a new survey record.
type RecordInput struct {
	Title           string   `json:"title" validate:"not_blank" example:"QA Analyst"`
	ExperienceLevel string   `json:"experienceLevel" validate:"required,experience_level" enums:"junior,mid,senior,specialist"`
	SalaryBand      string   `json:"salaryBand" example:"5000-7000"`
	Tools           []string `json:"tools" example:"Selenium,Cypress"`
	Location        string   `json:"location" validate:"not_blank" example:"São Paulo"`
	FunctionalArea  string   `json:"functionalArea" validate:"not_blank" example:"Automation"`
}

// RecordUpdate changes the supplied fields of a record. Supplied required
// fields may not be blank.
type RecordUpdate struct {
	Title           *string   `json:"title" validate:"omitnil,not_blank"`
	ExperienceLevel *string   `json:"experienceLevel" validate:"omitnil,experience_level" enums:"junior,mid,senior,specialist"`
	SalaryBand      *string   `json:"salaryBand"`
	Tools           *[]string `json:"tools"`
	Location        *string   `json:"location" validate:"omitnil,not_blank"`
	FunctionalArea  *string   `json:"functionalArea" validate:"omitnil,not_blank"`
}

// Create stores the caller's record. An account owns at most one.
func (s *RecordService) Create(
	ctx context.Context,
	accountID int64,
	profile domain.Profile,
	in RecordInput,
) (domain.RecordView, error) {
	if err := s.Validator.Struct(in); err != nil {
		return domain.RecordView{}, invalid("invalid survey record", err)
	}

	level, err := domain.ParseExperienceLevel(in.ExperienceLevel)
	if err != nil {
		return domain.RecordView{}, invalid("invalid survey record", err)
	}

	now := s.Now.now()
	rec, err := s.Store.Records().CreateRecord(ctx, domain.Record{
		OwnerID:         accountID,
		OwnerProfile:    profile,
		Title:           strings.TrimSpace(in.Title),
		ExperienceLevel: level,
		SalaryBand:      strings.TrimSpace(in.SalaryBand),
		Tools:           domain.NormalizeTools(in.Tools),
		Location:        strings.TrimSpace(in.Location),
		FunctionalArea:  strings.TrimSpace(in.FunctionalArea),
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.RecordView{}, &DuplicateError{Field: "record"}
	}
	if err != nil {
		return domain.RecordView{}, fmt.Errorf("create record: %w", err)
	}

	slogx.FromContext(ctx).Info("survey record created",
		slog.Int64("record_id", rec.ID),
		slog.Int64("account_id", accountID),
	)

	return rec.View(true), nil
}

// Update applies in to record id on behalf of accountID.
func (s *RecordService) Update(ctx context.Context, accountID, id int64, in RecordUpdate) (domain.RecordView, error) {
	if err := s.Validator.Struct(in); err != nil {
		return domain.RecordView{}, invalid("invalid survey record", err)
	}

	patch := domain.RecordPatch{
		Title:          trimmed(in.Title),
		SalaryBand:     trimmed(in.SalaryBand),
		Tools:          in.Tools,
		Location:       trimmed(in.Location),
		FunctionalArea: trimmed(in.FunctionalArea),
	}
	if in.ExperienceLevel != nil {
		level, err := domain.ParseExperienceLevel(*in.ExperienceLevel)
		if err != nil {
			return domain.RecordView{}, invalid("invalid survey record", err)
		}
		patch.ExperienceLevel = &level
	}

	rec, err := s.Store.Records().UpdateRecord(ctx, id, accountID, patch, s.Now.now())
	if err != nil {
		return domain.RecordView{}, recordError(id, err)
	}

	slogx.FromContext(ctx).Info("survey record updated",
		slog.Int64("record_id", rec.ID),
		slog.Int64("account_id", accountID),
	)

	return rec.View(true), nil
}

// Delete removes record id on behalf of accountID.
func (s *RecordService) Delete(ctx context.Context, accountID, id int64) error {
	if err := s.Store.Records().DeleteRecord(ctx, id, accountID); err != nil {
		return recordError(id, err)
	}

	slogx.FromContext(ctx).Info("survey record deleted",
		slog.Int64("record_id", id),
		slog.Int64("account_id", accountID),
	)
	return nil
}

// ListOwn returns the caller's records in full.
func (s *RecordService) ListOwn(ctx context.Context, accountID int64) ([]domain.RecordView, error) {
	recs, err := s.Store.Records().ListRecordsByOwner(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list own records: %w", err)
	}

	out := make([]domain.RecordView, len(recs))
	for i, r := range recs {
		out[i] = r.View(true)
	}
	return out, nil
}

func recordError(id int64, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return errorf(ErrNotFound, "survey record %d not found", id)
	case errors.Is(err, store.ErrNotOwner):
		return errorf(ErrForbidden, "no permission to change survey record %d", id)
	default:
		return fmt.Errorf("record %d: %w", id, err)
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
