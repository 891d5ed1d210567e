package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/aussiebroadwan/qasurvey/internal/survey/service"
	"github.com/aussiebroadwan/qasurvey/internal/survey/store/drivers/memory"
	"github.com/aussiebroadwan/qasurvey/internal/survey/validate"
	"github.com/aussiebroadwan/qasurvey/pkg/httpx"
	"github.com/aussiebroadwan/qasurvey/pkg/jwtx"
	"github.com/aussiebroadwan/qasurvey/pkg/slogx"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type testServer struct {
	router *Router
	clock  *testClock
}

func newTestServer(t *testing.T, configure ...func(*Router)) *testServer {
	t.Helper()

	signer, err := jwtx.NewSignerHS256("", []byte(strings.Repeat("s", 32)))
	require.NoError(t, err)

	clock := &testClock{t: epoch}
	st := memory.NewStore()
	v := validate.New()
	sessions := &service.SessionService{Store: st, Signer: signer, Issuer: "qasurvey-test", Now: clock.Now}

	r := NewRouter(signer, "test", st, slog.New(slog.DiscardHandler))
	r.Sessions = sessions
	r.AuthService = &service.AuthService{Store: st, Sessions: sessions, Now: clock.Now}
	r.AccountService = &service.AccountService{Store: st, Validator: v, Now: clock.Now}
	r.RecordService = &service.RecordService{Store: st, Validator: v, Now: clock.Now}
	for _, fn := range configure {
		fn(r)
	}
	r.ApplyRoutes()

	return &testServer{router: r, clock: clock}
}

// do sends a JSON request and decodes a JSON response into out when non-nil.
func (s *testServer) do(t *testing.T, method, path, token string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec
}

var nationalIDs = []string{"", "52998224725", "11144477735", "39053344705", "85205678014", "15350946056"}

// signup registers account n with password Senha123 and logs it in.
func (s *testServer) signup(t *testing.T, n int, profile domain.Profile) (domain.AccountView, string) {
	t.Helper()

	email := "user" + string(rune('0'+n)) + "@example.com"
	var reg AccountResponse
	rec := s.do(t, http.MethodPost, "/api/auth/register", "", service.RegisterInput{
		Name:       "User",
		Email:      email,
		NationalID: nationalIDs[n],
		Password:   "Senha123",
		Profile:    profile.String(),
	}, &reg)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var login LoginResponse
	rec = s.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: email, Password: "Senha123"}, &login)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	return reg.User, login.Token
}

func TestRegisterLoginValidate(t *testing.T) {
	s := newTestServer(t)
	acct, token := s.signup(t, 1, domain.ProfileQAProfessional)
	require.Equal(t, "52998224725", acct.NationalID)

	var v ValidateResponse
	rec := s.do(t, http.MethodGet, "/api/auth/validate", token, nil, &v)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, acct.ID, v.User.AccountID)
	require.Equal(t, domain.ProfileQAProfessional, v.User.Profile)

	var me AccountResponse
	rec = s.do(t, http.MethodGet, "/api/users/me", token, nil, &me)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, acct, me.User)
	require.NotContains(t, rec.Body.String(), "argon2")

	t.Run("duplicate", func(t *testing.T) {
		var e ErrorResponse
		rec := s.do(t, http.MethodPost, "/api/auth/register", "", service.RegisterInput{
			Name: "Again", Email: acct.Email, NationalID: "11144477735", Password: "Senha123", Profile: "student",
		}, &e)
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Equal(t, "duplicate", e.Error)
	})

	t.Run("invalid registration lists fields", func(t *testing.T) {
		var e ErrorResponse
		rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "nope"}, &e)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "validation_error", e.Error)
		require.NotEmpty(t, e.Fields)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginLockoutOverHTTP(t *testing.T) {
	s := newTestServer(t)
	acct, _ := s.signup(t, 1, domain.ProfileStudent)

	login := func(password string) (*httptest.ResponseRecorder, ErrorResponse) {
		var e ErrorResponse
		rec := s.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: acct.Email, Password: password}, nil)
		_ = json.Unmarshal(rec.Body.Bytes(), &e)
		return rec, e
	}

	for _, remaining := range []int{2, 1} {
		rec, e := login("Wrong123")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "invalid_credentials", e.Error)
		require.NotNil(t, e.RemainingAttempts)
		require.Equal(t, remaining, *e.RemainingAttempts)
	}

	rec, e := login("Wrong123")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "account_locked", e.Error)
	require.Equal(t, 15, *e.MinutesRemaining)

	rec, e = login("Senha123")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "account_locked", e.Error)

	s.clock.Advance(domain.LockoutDuration)
	rec, _ = login("Senha123")
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("unknown email has no hint", func(t *testing.T) {
		var e ErrorResponse
		rec := s.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: "ghost@example.com", Password: "Senha123"}, &e)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Nil(t, e.RemainingAttempts)
	})

	t.Run("missing credentials", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{}, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBearerErrors(t *testing.T) {
	s := newTestServer(t)

	for name, header := range map[string]string{
		"missing":  "",
		"scheme":   "Token abc",
		"garbage":  "Bearer abc",
		"too many": "Bearer a b",
		"no token": "Bearer",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/research", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			s.router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
		})
	}

	t.Run("expired", func(t *testing.T) {
		_, token := s.signup(t, 1, domain.ProfileStudent)
		s.clock.Advance(jwtx.DefaultSessionTTL + time.Minute)

		var e ErrorResponse
		rec := s.do(t, http.MethodGet, "/api/auth/validate", token, nil, &e)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "token_expired", e.Error)
	})
}

func TestResearchFlow(t *testing.T) {
	s := newTestServer(t)
	qa, qaToken := s.signup(t, 1, domain.ProfileQAProfessional)
	_, studentToken := s.signup(t, 2, domain.ProfileStudent)
	_, managerToken := s.signup(t, 3, domain.ProfileManager)

	input := service.RecordInput{
		Title:           "QA Analyst",
		ExperienceLevel: "mid",
		SalaryBand:      "5000-7000",
		Tools:           []string{"Selenium", "Cypress"},
		Location:        "São Paulo",
		FunctionalArea:  "Automation",
	}

	var created RecordResponse
	rec := s.do(t, http.MethodPost, "/api/research", qaToken, input, &created)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, qa.ID, *created.Data.OwnerID)
	id := created.Data.ID

	rec = s.do(t, http.MethodPost, "/api/research", qaToken, input, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	t.Run("anonymized for non-privileged readers", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/research", studentToken, nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotContains(t, rec.Body.String(), "userId")

		var page RecordPageResponse
		rec = s.do(t, http.MethodGet, "/api/research?location=paulo&tool=cyp", managerToken, nil, &page)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, page.Items, 1)
		require.Equal(t, qa.ID, *page.Items[0].OwnerID)
		require.Equal(t, "paulo", page.Filters.Location)
		require.Equal(t, 1, page.Pagination.TotalItems)
	})

	t.Run("bad listing queries", func(t *testing.T) {
		for _, query := range []string{"page=-1", "limit=abc", "experienceLevel=pleno", "ownerProfile=root"} {
			rec := s.do(t, http.MethodGet, "/api/research?"+query, studentToken, nil, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code, query)
		}
	})

	t.Run("own records", func(t *testing.T) {
		var own RecordListResponse
		rec := s.do(t, http.MethodGet, "/api/research/me", qaToken, nil, &own)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 1, own.Total)
	})

	t.Run("statistics are privileged", func(t *testing.T) {
		var e ErrorResponse
		rec := s.do(t, http.MethodGet, "/api/research/stats/all", studentToken, nil, &e)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Equal(t, "access_denied", e.Error)
		require.Contains(t, e.Message, "manager, administrator")

		var stats StatisticsResponse
		rec = s.do(t, http.MethodGet, "/api/research/stats/all", managerToken, nil, &stats)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 1, stats.Statistics.Total)
		require.Equal(t, 1, stats.Statistics.ToolUsage["Cypress"])
	})

	t.Run("update and delete", func(t *testing.T) {
		path := "/api/research/" + itoa(id)

		rec := s.do(t, http.MethodPut, path, studentToken, map[string]string{"title": "Mine now"}, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)

		rec = s.do(t, http.MethodPut, "/api/research/999", qaToken, map[string]string{"title": "x"}, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)

		rec = s.do(t, http.MethodPut, "/api/research/abc", qaToken, map[string]string{"title": "x"}, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var updated RecordResponse
		rec = s.do(t, http.MethodPut, path, qaToken, map[string]string{"experienceLevel": "senior"}, &updated)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, domain.LevelSenior, updated.Data.ExperienceLevel)

		rec = s.do(t, http.MethodDelete, path, studentToken, nil, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
		rec = s.do(t, http.MethodDelete, path, qaToken, nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		rec = s.do(t, http.MethodDelete, path, qaToken, nil, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUsersAdministratorOnly(t *testing.T) {
	s := newTestServer(t)
	student, studentToken := s.signup(t, 1, domain.ProfileStudent)
	_, managerToken := s.signup(t, 2, domain.ProfileManager)
	_, adminToken := s.signup(t, 3, domain.ProfileAdministrator)

	for _, token := range []string{studentToken, managerToken} {
		rec := s.do(t, http.MethodGet, "/api/users", token, nil, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
		rec = s.do(t, http.MethodGet, "/api/users/1", token, nil, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
	}

	var list AccountListResponse
	rec := s.do(t, http.MethodGet, "/api/users", adminToken, nil, &list)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 3, list.Total)

	var one AccountResponse
	rec = s.do(t, http.MethodGet, "/api/users/"+itoa(student.ID), adminToken, nil, &one)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, student, one.User)

	rec = s.do(t, http.MethodGet, "/api/users/77", adminToken, nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccessDeniedIsLogged(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	s := newTestServer(t, func(r *Router) {
		r.middlewares = []httpx.Middleware{slogx.HTTPMiddleware(logger)}
	})
	_, token := s.signup(t, 1, domain.ProfileStudent)

	rec := s.do(t, http.MethodGet, "/api/users", token, nil, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	var denied map[string]any
	for line := range strings.Lines(logs.String()) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["msg"] == "access denied" {
			denied = entry
		}
	}
	require.NotNil(t, denied, logs.String())
	require.Equal(t, "WARN", denied["level"])
	require.Equal(t, "student", denied["profile"])
	require.Equal(t, "/api/users", denied["path"])
}

func TestResearchListPageBounds(t *testing.T) {
	s := newTestServer(t)
	_, token := s.signup(t, 1, domain.ProfileStudent)

	var errResp ErrorResponse
	rec := s.do(t, http.MethodGet, "/api/research?limit=101", token, nil, &errResp)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "validation_error", errResp.Error)
	require.Equal(t, "limit", errResp.Fields[0].Field)

	var page RecordPageResponse
	rec = s.do(t, http.MethodGet, "/api/research?page="+strconv.Itoa(math.MaxInt)+"&limit=100", token, nil, &page)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Empty(t, page.Items)
	require.False(t, page.Pagination.HasNextPage)
}

func TestLoginRateLimit(t *testing.T) {
	s := newTestServer(t, func(r *Router) {
		r.Limits.Login = httpx.RateLimitConfig{Requests: 1, Window: time.Minute, Burst: 1}
	})

	body := LoginRequest{Email: "ghost@example.com", Password: "Senha123"}
	rec := s.do(t, http.MethodPost, "/api/auth/login", "", body, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", body, nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestSystemRoutes(t *testing.T) {
	s := newTestServer(t)

	var live HealthResponse
	rec := s.do(t, http.MethodGet, "/livez", "", nil, &live)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	var ready HealthResponse
	rec = s.do(t, http.MethodGet, "/readyz", "", nil, &ready)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", ready.Checks.Database)

	var info APIInfoResponse
	rec = s.do(t, http.MethodGet, "/api", "", nil, &info)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "/api/research", info.Endpoints["research"])

	var e ErrorResponse
	rec = s.do(t, http.MethodGet, "/nowhere", "", nil, &e)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "route_not_found", e.Error)

	rec = s.do(t, http.MethodGet, "/api/research", "", nil, nil)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
