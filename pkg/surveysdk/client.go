package surveysdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client is a client for the survey service. It provides the unauthenticated
// operations and creates Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new survey service client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new account. It does not log in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Account, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", "", req)
	if err != nil {
		return nil, err
	}

	var out accountEnvelope
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Login authenticates with email and password and returns a Session.
// Failed logins come back as *APIError carrying the remaining attempts or
// the lockout minutes.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", body)
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return newSession(c, out)
}

// NewSessionFromToken wraps a token obtained elsewhere. The expiry is not
// known, so the session only learns the token lapsed from the server.
func (c *Client) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service can serve traffic.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
