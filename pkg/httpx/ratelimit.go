package httpx

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/qasurvey/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig is a token bucket: Requests per Window on average, with up
// to Burst requests accepted back to back.
type RateLimitConfig struct {
	Requests int           `toml:"requests"`
	Window   time.Duration `toml:"window"`
	Burst    int           `toml:"burst"`
}

// Default profiles. The login profile is the one that matters: together with
// account lockout it bounds online password guessing per client.
var (
	LoginLimit    = RateLimitConfig{Requests: 10, Window: time.Minute, Burst: 10}
	RegisterLimit = RateLimitConfig{Requests: 20, Window: time.Minute, Burst: 10}
	APILimit      = RateLimitConfig{Requests: 300, Window: time.Minute, Burst: 60}
)

// Or returns c with any non-positive field replaced from def.
func (c RateLimitConfig) Or(def RateLimitConfig) RateLimitConfig {
	if c.Requests <= 0 {
		c.Requests = def.Requests
	}
	if c.Window <= 0 {
		c.Window = def.Window
	}
	if c.Burst <= 0 {
		c.Burst = def.Burst
	}
	return c
}

func (c RateLimitConfig) limit() rate.Limit {
	return rate.Limit(float64(c.Requests) / c.Window.Seconds())
}

// KeyExtractor picks the bucket a request is charged against. An empty key
// means the request is not limited.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor returns the client address, preferring the first hop of
// X-Forwarded-For and then X-Real-IP when the service sits behind a proxy.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// SubjectKeyExtractor keys on the authenticated subject set by WithSubject.
func SubjectKeyExtractor(r *http.Request) string {
	return SubjectFromContext(r.Context())
}

// FirstKeyExtractor returns the first non-empty key, tagged with the index
// of the extractor that produced it so keys from different sources never
// collide.
func FirstKeyExtractor(extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		for i, extract := range extractors {
			if key := extract(r); key != "" {
				return strconv.Itoa(i) + ":" + key
			}
		}
		return ""
	}
}

// limiterSet owns one token bucket per key and forgets buckets that have
// been idle for idleTTL.
type limiterSet struct {
	cfg     RateLimitConfig
	idleTTL time.Duration
	now     func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func newLimiterSet(cfg RateLimitConfig) *limiterSet {
	return &limiterSet{
		cfg:       cfg,
		idleTTL:   max(cfg.Window*2, 5*time.Minute),
		now:       time.Now,
		buckets:   make(map[string]*bucket),
		lastSweep: time.Now(),
	}
}

// allow charges one request to key and reports whether it fits, plus how
// long the caller should wait before retrying when it does not.
func (s *limiterSet) allow(key string) (bool, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) > s.idleTTL {
		for k, b := range s.buckets {
			if now.Sub(b.seen) > s.idleTTL {
				delete(s.buckets, k)
			}
		}
		s.lastSweep = now
	}

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(s.cfg.limit(), s.cfg.Burst)}
		s.buckets[key] = b
	}
	b.seen = now

	if b.lim.AllowN(now, 1) {
		return true, 0
	}

	r := b.lim.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	r.CancelAt(now)
	return false, delay
}

// RateLimitMiddleware rejects requests with 429 once the bucket picked by
// keyExtractor is empty.
func RateLimitMiddleware(cfg RateLimitConfig, keyExtractor KeyExtractor) Middleware {
	set := newLimiterSet(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyExtractor(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			ok, delay := set.allow(key)
			if ok {
				next.ServeHTTP(w, r)
				return
			}

			retryAfter := max(int(delay.Round(time.Second).Seconds()), 1)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
			w.Header().Set("X-RateLimit-Window", cfg.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", key,
				"retry_after", retryAfter,
			)

			WriteJSON(w, http.StatusTooManyRequests, map[string]string{
				"error":   "rate_limited",
				"message": "too many requests, try again later",
			})
		})
	}
}

// RateLimitByIP limits by client address only.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, IPKeyExtractor)
}

// RateLimitBySubject limits by authenticated subject, falling back to the
// client address for anonymous requests.
func RateLimitBySubject(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, FirstKeyExtractor(SubjectKeyExtractor, IPKeyExtractor))
}
