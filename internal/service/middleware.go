package service

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"link-catalog/internal/conf"
	"link-catalog/pkg/problemdetails"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = time.Hour

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits requests per client IP. A zero rate disables it.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rateLimit rate.Limit
	burst     int
	stop      chan struct{}
	stopOnce  sync.Once
}

// NewRateLimiter allows requestsPerMinute per IP with an equal burst.
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		burst:    requestsPerMinute,
		stop:     make(chan struct{}),
	}
	if requestsPerMinute > 0 {
		rl.rateLimit = rate.Every(time.Minute / time.Duration(requestsPerMinute))
		go rl.cleanupLoop(10 * time.Minute)
	}
	return rl
}

// NewRateLimiterFromConf builds the limiter for the public selection routes.
func NewRateLimiterFromConf(c *conf.Selection) (*RateLimiter, func()) {
	perMinute := 0
	if c != nil {
		perMinute = c.RateLimitPerMinute
	}
	rl := NewRateLimiter(perMinute)
	return rl, rl.Stop
}

// Stop ends the background cleanup.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, exists := rl.limiters[ip]
	if !exists {
		e = &limiterEntry{limiter: rate.NewLimiter(rl.rateLimit, rl.burst)}
		rl.limiters[ip] = e
	}
	e.lastSeen = time.Now()
	return e.limiter
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if rl.burst <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := rl.limiterFor(clientIP(r))
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burst))

		if !limiter.Allow() {
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))
			writeProblem(w, problemdetails.New(
				http.StatusTooManyRequests,
				problemdetails.TypeRateLimitExceeded,
				"Rate Limit Exceeded",
				"Too many requests. Please try again later.",
			))
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictIdle(time.Now())
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, e := range rl.limiters {
		if now.Sub(e.lastSeen) > limiterIdleTTL {
			delete(rl.limiters, ip)
		}
	}
}

// clientIP strips the port; RealIP has already replaced RemoteAddr when a proxy header was present.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// LoggerMiddleware logs every request through the kratos logger.
func LoggerMiddleware(logger log.Logger) func(http.Handler) http.Handler {
	helper := log.NewHelper(log.With(logger, "module", "http"))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				helper.Infow(
					"msg", "http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start).String(),
					"remote_addr", r.RemoteAddr,
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

type sessionKey struct{}

// SessionFromContext returns the administrator session id set by RequireAdmin.
func SessionFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionKey{}).(string)
	return id, ok
}

// RequireAdmin rejects requests without a valid administrator session.
func (s *CatalogService) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.auth.Authorize(r.Context(), sessionToken(r))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, id)))
	})
}

// sessionToken reads the session cookie, falling back to a bearer token.
func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		return strings.TrimSpace(token)
	}
	return ""
}
