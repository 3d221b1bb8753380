package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"docx-recovery/internal/domain"

	"github.com/felixge/httpsnoop"
	"golang.org/x/time/rate"
)

const (
	rateLimitMessage = "Too many requests, please try again later."
	clfTimeFormat    = "02/Jan/2006:15:04:05 -0700"
)

// DefaultSecurityHeaders returns the response headers applied to every request
func DefaultSecurityHeaders() map[string]string {
	return map[string]string{
		"Content-Security-Policy":           "default-src 'self';base-uri 'self';font-src 'self' https: data:;form-action 'self';frame-ancestors 'self';img-src 'self' data:;object-src 'none';script-src 'self';script-src-attr 'none';style-src 'self' https: 'unsafe-inline';upgrade-insecure-requests",
		"Cross-Origin-Opener-Policy":        "same-origin",
		"Cross-Origin-Resource-Policy":      "same-origin",
		"Origin-Agent-Cluster":              "?1",
		"Referrer-Policy":                   "no-referrer",
		"Strict-Transport-Security":         "max-age=15552000; includeSubDomains",
		"X-Content-Type-Options":            "nosniff",
		"X-DNS-Prefetch-Control":            "off",
		"X-Download-Options":                "noopen",
		"X-Frame-Options":                   "SAMEORIGIN",
		"X-Permitted-Cross-Domain-Policies": "none",
		"X-XSS-Protection":                  "0",
	}
}

// SecurityHeaders sets the given headers on every response
func SecurityHeaders(headers map[string]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for k, v := range headers {
				w.Header().Set(k, v)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AccessLog writes one Common Log Format line per request to out
func AccessLog(out io.Writer) func(http.Handler) http.Handler {
	var mu sync.Mutex
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			m := httpsnoop.CaptureMetrics(next, w, r)

			user := "-"
			if name, _, ok := r.BasicAuth(); ok && name != "" {
				user = name
			}
			size := "-"
			if m.Written > 0 {
				size = strconv.FormatInt(m.Written, 10)
			}

			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(out, "%s - %s [%s] \"%s %s %s\" %d %s\n",
				clientIP(r), user, start.Format(clfTimeFormat),
				r.Method, r.URL.RequestURI(), r.Proto, m.Code, size)
		})
	}
}

// Recoverer turns a panic escaping a route handler into an empty 500 response
func Recoverer(logger domain.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("Unhandled route failure", fmt.Errorf("panic: %v", rec), "method", r.Method, "path", r.URL.Path)
				writeStatus(w, http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type visitor struct {
	limiter     *rate.Limiter
	windowStart time.Time
}

// RateLimiter allows a fixed number of requests per client address per window.
// Windows are fixed: each address starts a fresh one with its first request
// after the previous window ended.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	max      int
	window   time.Duration
	now      func() time.Time
	logger   domain.Logger
}

// NewRateLimiter creates a limiter; max <= 0 disables limiting
func NewRateLimiter(max int, window time.Duration, logger domain.Logger) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		max:      max,
		window:   window,
		now:      time.Now,
		logger:   logger,
	}
}

func (rl *RateLimiter) enabled() bool {
	return rl.max > 0 && rl.window > 0
}

// allow reports whether ip may proceed and when its current window ends.
func (rl *RateLimiter) allow(ip string) (bool, time.Time) {
	now := rl.now()
	if !rl.enabled() {
		return true, now
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok || now.Sub(v.windowStart) >= rl.window {
		// Less than one token refills before the window is replaced, so the
		// bucket holds exactly max requests per window.
		v = &visitor{
			limiter:     rate.NewLimiter(rate.Every(rl.window), rl.max),
			windowStart: now,
		}
		rl.visitors[ip] = v
	}
	return v.limiter.AllowN(now, 1), v.windowStart.Add(rl.window)
}

// cleanup forgets addresses whose window has ended.
func (rl *RateLimiter) cleanup() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if now.Sub(v.windowStart) >= rl.window {
			delete(rl.visitors, ip)
		}
	}
}

// StartJanitor evicts idle addresses every window until ctx is done
func (rl *RateLimiter) StartJanitor(ctx context.Context) {
	if !rl.enabled() {
		return
	}
	go func() {
		ticker := time.NewTicker(rl.window)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.cleanup()
			}
		}
	}()
}

// Middleware rejects requests over the limit with 429
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		ok, resetAt := rl.allow(ip)
		if ok {
			next.ServeHTTP(w, r)
			return
		}

		rl.logger.Warn("Rate limit exceeded", "ip", ip, "path", r.URL.Path)
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(resetAt.Sub(rl.now()))))
		writeText(w, http.StatusTooManyRequests, rateLimitMessage)
	})
}

func retryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
