package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/aussiebroadwan/qasurvey/pkg/cryptox"
	"github.com/aussiebroadwan/qasurvey/pkg/slogx"
)

var ErrBootstrapMisconfigured = errors.New("administrator bootstrap misconfigured")

// BootstrapService seeds the first administrator into an empty store, so a
// fresh deployment can reach the administrator-only routes.
type BootstrapService struct {
	Accounts *AccountService

	Name       string
	Email      string
	Password   string // generated when empty
	NationalID string
}

// EnsureAdministrator creates the administrator when the store has no
// accounts. It returns the password used, which is only interesting when it
// was generated, and false when nothing was created.
func (s *BootstrapService) EnsureAdministrator(ctx context.Context) (string, bool, error) {
	l := slogx.FromContext(ctx)

	if s.Email == "" {
		return "", false, nil
	}

	empty, err := s.Accounts.Store.Accounts().IsEmpty(ctx)
	if err != nil {
		return "", false, fmt.Errorf("check accounts: %w", err)
	}
	if !empty {
		l.Debug("store already has accounts, skipping administrator bootstrap")
		return "", false, nil
	}

	password := s.Password
	if password == "" {
		if password, err = cryptox.GeneratePassword(); err != nil {
			return "", false, fmt.Errorf("generate administrator password: %w", err)
		}
	}

	name := s.Name
	if name == "" {
		name = "Administrator"
	}

	view, err := s.Accounts.Register(ctx, RegisterInput{
		Name:       name,
		Email:      s.Email,
		NationalID: s.NationalID,
		Password:   password,
		Profile:    domain.ProfileAdministrator.String(),
	})
	if errors.Is(err, ErrValidation) {
		return "", false, fmt.Errorf("%w: %w", ErrBootstrapMisconfigured, err)
	}
	if err != nil {
		return "", false, err
	}

	l.Info("administrator bootstrapped", slog.Int64("account_id", view.ID), slog.String("email", view.Email))
	return password, true, nil
}
