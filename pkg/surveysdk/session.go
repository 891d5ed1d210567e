package surveysdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// expiryBuffer is how long before the server-side expiry a session stops
// using its token, so a request never races the deadline.
const expiryBuffer = 30 * time.Second

// Session is an authenticated session.
type Session struct {
	client *Client

	mu        sync.RWMutex
	token     string
	expiresAt time.Time // zero when unknown
	user      Account
}

func newSession(c *Client, login LoginResponse) (*Session, error) {
	expiresAt, err := time.Parse(time.RFC3339, login.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("invalid expiresAt %q: %w", login.ExpiresAt, err)
	}

	return &Session{
		client:    c,
		token:     login.Token,
		expiresAt: expiresAt.Add(-expiryBuffer),
		user:      login.User,
	}, nil
}

// Token returns the bearer token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ExpiresAt returns when the session stops being usable, or the zero time
// when unknown.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// User returns the account returned at login.
func (s *Session) User() Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) validToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.expiresAt.IsZero() && !time.Now().Before(s.expiresAt) {
		return "", ErrSessionExpired
	}
	return s.token, nil
}

// Validate asks the server who the token belongs to.
func (s *Session) Validate(ctx context.Context) (*Principal, error) {
	var out struct {
		User Principal `json:"user"`
	}
	if err := s.get(ctx, "/api/auth/validate", &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Me returns the caller's own account.
func (s *Session) Me(ctx context.Context) (*Account, error) {
	var out accountEnvelope
	if err := s.get(ctx, "/api/users/me", &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ListUsers returns every account. Administrators only.
func (s *Session) ListUsers(ctx context.Context) ([]Account, error) {
	var out struct {
		Users []Account `json:"users"`
	}
	if err := s.get(ctx, "/api/users", &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// GetUser returns one account. Administrators only.
func (s *Session) GetUser(ctx context.Context, id int64) (*Account, error) {
	var out accountEnvelope
	if err := s.get(ctx, "/api/users/"+strconv.FormatInt(id, 10), &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// CreateRecord submits the caller's survey record.
func (s *Session) CreateRecord(ctx context.Context, in RecordInput) (*Record, error) {
	var out recordEnvelope
	if err := s.send(ctx, http.MethodPost, "/api/research", in, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateRecord changes the fields set in patch on a record the caller owns.
func (s *Session) UpdateRecord(ctx context.Context, id int64, patch RecordPatch) (*Record, error) {
	var out recordEnvelope
	path := "/api/research/" + strconv.FormatInt(id, 10)
	if err := s.send(ctx, http.MethodPut, path, patch, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteRecord removes a record the caller owns.
func (s *Session) DeleteRecord(ctx context.Context, id int64) error {
	var out struct{}
	path := "/api/research/" + strconv.FormatInt(id, 10)
	return s.send(ctx, http.MethodDelete, path, nil, &out, http.StatusOK)
}

// ListOwnRecords returns the caller's records.
func (s *Session) ListOwnRecords(ctx context.Context) ([]Record, error) {
	var out struct {
		Data []Record `json:"data"`
	}
	if err := s.get(ctx, "/api/research/me", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ListRecords returns one page of records matching opts.
func (s *Session) ListRecords(ctx context.Context, opts ListOptions) (*RecordPage, error) {
	path := "/api/research"
	if q := opts.values().Encode(); q != "" {
		path += "?" + q
	}

	var out RecordPage
	if err := s.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Statistics returns the aggregate view. Managers and administrators only.
func (s *Session) Statistics(ctx context.Context) (*Statistics, error) {
	var out struct {
		Statistics Statistics `json:"statistics"`
	}
	if err := s.get(ctx, "/api/research/stats/all", &out); err != nil {
		return nil, err
	}
	return &out.Statistics, nil
}

func (s *Session) get(ctx context.Context, path string, target any) error {
	return s.send(ctx, http.MethodGet, path, nil, target, http.StatusOK)
}

func (s *Session) send(ctx context.Context, method, path string, body, target any, expected int) error {
	token, err := s.validToken()
	if err != nil {
		return err
	}

	resp, err := s.client.doJSON(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, expected)
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}

	set("title", o.Title)
	set("experienceLevel", o.ExperienceLevel)
	set("location", o.Location)
	set("salaryBand", o.SalaryBand)
	set("tool", o.Tool)
	set("ownerProfile", o.OwnerProfile)
	set("functionalArea", o.FunctionalArea)
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	return v
}
