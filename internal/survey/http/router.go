package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/aussiebroadwan/qasurvey/internal/survey/service"
	"github.com/aussiebroadwan/qasurvey/internal/survey/store"
	"github.com/aussiebroadwan/qasurvey/pkg/httpx"
	"github.com/aussiebroadwan/qasurvey/pkg/jwtx"
	"github.com/aussiebroadwan/qasurvey/pkg/slogx"

	_ "github.com/aussiebroadwan/qasurvey/api/survey" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Limits are the rate limit profiles applied per route group.
type Limits struct {
	Login    httpx.RateLimitConfig
	Register httpx.RateLimitConfig
	API      httpx.RateLimitConfig
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       jwtx.Signer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	Limits         Limits
	Sessions       *service.SessionService
	AuthService    *service.AuthService
	AccountService *service.AccountService
	RecordService  *service.RecordService
}

func NewRouter(signer jwtx.Signer, buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Limits: Limits{
			Login:    httpx.LoginLimit,
			Register: httpx.RegisterLimit,
			API:      httpx.APILimit,
		},
	}

	// Default middleware chain, outermost first
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(func(req *http.Request, v any) {
			slogx.FromContext(req.Context()).Error("panic serving request", "panic", v)
		}),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerResearch()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
	r.Mux.HandleFunc("/", notFoundHandler)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			QA Market Survey API
//	@version		1.0.0
//	@description	Collects compensation and tooling data from the software testing market.
//	@description
//	@description				Accounts log in with email and password and receive a bearer token valid for 24 hours.
//	@description				Three consecutive failed logins block an account for 15 minutes.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h in authentication, an optional profile gate and the
// per-account rate limit.
func (r *Router) secured(h http.HandlerFunc, allowed domain.ProfileSet) http.Handler {
	mws := []httpx.Middleware{r.authenticate}
	if allowed != nil {
		mws = append(mws, requireProfiles(allowed))
	}
	mws = append(mws, httpx.RateLimitBySubject(r.Limits.API))
	return httpx.Chain(h, mws...)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:    r.AuthService,
		AccountService: r.AccountService,
	}

	// POST /register - moderate rate limit by IP (public signup)
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.Limits.Register),
		),
	)

	// POST /login - strict rate limit by IP, on top of the account lockout
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(r.Limits.Login),
		),
	)

	r.Mux.Handle("GET /api/auth/validate", r.secured(h.HandleValidate, nil))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{AccountService: r.AccountService}

	r.Mux.Handle("GET /api/users/me", r.secured(h.HandleMe, nil))
	r.Mux.Handle("GET /api/users", r.secured(h.HandleList, service.AdministrativeProfiles))
	r.Mux.Handle("GET /api/users/{id}", r.secured(h.HandleGet, service.AdministrativeProfiles))
}

func (r *Router) registerResearch() {
	h := &ResearchHandler{RecordService: r.RecordService}

	r.Mux.Handle("POST /api/research", r.secured(h.HandleCreate, nil))
	r.Mux.Handle("GET /api/research", r.secured(h.HandleList, nil))
	r.Mux.Handle("GET /api/research/me", r.secured(h.HandleListOwn, nil))
	r.Mux.Handle("GET /api/research/stats/all", r.secured(h.HandleStatistics, service.PrivilegedProfiles))
	r.Mux.Handle("PUT /api/research/{id}", r.secured(h.HandleUpdate, nil))
	r.Mux.Handle("DELETE /api/research/{id}", r.secured(h.HandleDelete, nil))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient limits, monitoring may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.Limits.API),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer),
			httpx.RateLimitByIP(r.Limits.API),
		),
	)
	r.Mux.Handle("GET /api", APIInfoHandler(r.buildVersion))
}
