package http

import (
	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/aussiebroadwan/qasurvey/internal/survey/service"
	"github.com/aussiebroadwan/qasurvey/internal/survey/validate"
)

// ErrorResponse is the body of every error. The hints are only present on
// failed logins.
type ErrorResponse struct {
	Error             string                `json:"error" example:"invalid_credentials"`
	Message           string                `json:"message" example:"invalid credentials, 2 attempt(s) remaining"`
	Fields            []validate.FieldError `json:"fields,omitempty"`
	RemainingAttempts *int                  `json:"remainingAttempts,omitempty"`
	MinutesRemaining  *int                  `json:"minutesRemaining,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"ana@example.com"`
	Password string `json:"password" example:"Senha123"`
}

type LoginResponse struct {
	Message   string             `json:"message"`
	Token     string             `json:"token"`
	TokenType string             `json:"tokenType" example:"Bearer"`
	ExpiresAt string             `json:"expiresAt" example:"2025-03-02T09:00:00Z"`
	User      domain.AccountView `json:"user"`
}

type ValidateResponse struct {
	Message string            `json:"message"`
	User    service.Principal `json:"user"`
}

type AccountResponse struct {
	Message string             `json:"message"`
	User    domain.AccountView `json:"user"`
}

type AccountListResponse struct {
	Message string               `json:"message"`
	Total   int                  `json:"total"`
	Users   []domain.AccountView `json:"users"`
}

type RecordResponse struct {
	Message string            `json:"message"`
	Data    domain.RecordView `json:"data"`
}

type RecordListResponse struct {
	Message string              `json:"message"`
	Total   int                 `json:"total"`
	Data    []domain.RecordView `json:"data"`
}

type RecordPageResponse struct {
	Message string `json:"message"`
	domain.RecordPage
}

type StatisticsResponse struct {
	Message    string            `json:"message"`
	Statistics domain.Statistics `json:"statistics"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type APIInfoResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}
