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
	"github.com/aussiebroadwan/qasurvey/pkg/cryptox"
	"github.com/aussiebroadwan/qasurvey/pkg/slogx"
)

// AccountService registers and looks up accounts.
type AccountService struct {
	Store     store.Store
	Validator *validate.Validator
	Now       Clock
}

// RegisterInput is a new account.
type RegisterInput struct {
	Name       string `json:"name" validate:"not_blank" example:"Ana Souza"`
	Email      string `json:"email" validate:"required,email_address" example:"ana@example.com"`
	NationalID string `json:"nationalId" validate:"required,national_id" example:"123.456.789-09"`
	Password   string `json:"password" validate:"required,strong_password" example:"Senha123"`
	Profile    string `json:"profile" validate:"required,profile" enums:"student,qa_professional,manager,recruiter,administrator"`
}

// Register creates an account. Email and national id must be unused; the
// national id is stored as digits only.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (domain.AccountView, error) {
	l := slogx.FromContext(ctx)

	if err := s.Validator.Struct(in); err != nil {
		return domain.AccountView{}, invalid("invalid registration", err)
	}

	profile, err := domain.ParseProfile(in.Profile)
	if err != nil {
		return domain.AccountView{}, invalid("invalid registration", err)
	}
	nationalID := validate.NormalizeNationalID(in.NationalID)

	// Cheap checks first so a duplicate never pays for a hash. The insert
	// below enforces uniqueness again.
	if _, err := s.Store.Accounts().GetAccountByEmail(ctx, in.Email); err == nil {
		return domain.AccountView{}, &DuplicateError{Field: "email"}
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.AccountView{}, fmt.Errorf("get account by email: %w", err)
	}
	if _, err := s.Store.Accounts().GetAccountByNationalID(ctx, nationalID); err == nil {
		return domain.AccountView{}, &DuplicateError{Field: "nationalId"}
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.AccountView{}, fmt.Errorf("get account by national id: %w", err)
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		l.Error("failed to hash password", slogx.Err(err))
		return domain.AccountView{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.Now.now()
	acct, err := s.Store.Accounts().CreateAccount(ctx, domain.Account{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		NationalID:   nationalID,
		PasswordHash: hash,
		Profile:      profile,
		CreatedAt:    now,
	})
	var conflict *store.ConflictError
	if errors.As(err, &conflict) {
		if conflict.Field == "national_id" {
			return domain.AccountView{}, &DuplicateError{Field: "nationalId"}
		}
		return domain.AccountView{}, &DuplicateError{Field: conflict.Field}
	}
	if err != nil {
		return domain.AccountView{}, fmt.Errorf("create account: %w", err)
	}

	l.Info("account registered",
		slog.Int64("account_id", acct.ID),
		slog.String("profile", acct.Profile.String()),
	)

	return acct.View(now), nil
}

// Get returns the account with the given id.
func (s *AccountService) Get(ctx context.Context, id int64) (domain.AccountView, error) {
	acct, err := s.Store.Accounts().GetAccountByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.AccountView{}, errorf(ErrNotFound, "account %d not found", id)
	}
	if err != nil {
		return domain.AccountView{}, fmt.Errorf("get account: %w", err)
	}
	return acct.View(s.Now.now()), nil
}

// List returns every account ordered by id.
func (s *AccountService) List(ctx context.Context) ([]domain.AccountView, error) {
	accts, err := s.Store.Accounts().ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	now := s.Now.now()
	out := make([]domain.AccountView, len(accts))
	for i, a := range accts {
		out[i] = a.View(now)
	}
	return out, nil
}
