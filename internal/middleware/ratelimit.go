package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RealIP extracts the client's real IP address, preferring Cloudflare's
// CF-Connecting-IP header, then X-Forwarded-For, and falling back to RemoteAddr.
func RealIP(r *http.Request) string {
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First IP in the chain is the original client
		if i := strings.IndexByte(xff, ','); i > 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type counter struct {
	count   int
	resetAt time.Time
}

// RateLimiter counts requests per key within fixed windows, in memory.
// State is lost on restart, which is acceptable for throttling the auth
// endpoints of a single-binary deployment.
type RateLimiter struct {
	mu       sync.Mutex
	counters map[string]*counter
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		counters: make(map[string]*counter),
	}
}

// Allow reports whether the key is still under limit for the current
// window. A key's first request after its window lapses starts a new one.
func (rl *RateLimiter) Allow(key string, limit int, window time.Duration) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	c, ok := rl.counters[key]
	if !ok || now.After(c.resetAt) {
		rl.counters[key] = &counter{count: 1, resetAt: now.Add(window)}
		return true
	}
	c.count++
	return c.count <= limit
}

// Cleanup drops counters whose window has lapsed.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, c := range rl.counters {
		if now.After(c.resetAt) {
			delete(rl.counters, key)
		}
	}
}

// RateLimit returns middleware that rejects requests over the limit with
// 429, keyed by keyFunc.
func RateLimit(limiter *RateLimiter, keyFunc func(*http.Request) string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(keyFunc(r), limit, window) {
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
