package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAllowUpToLimit(t *testing.T) {
	rl := NewRateLimiter()

	for i := range 10 {
		if !rl.Allow("10.0.0.1", 10, time.Minute) {
			t.Fatalf("request %d denied under the limit", i+1)
		}
	}
	if rl.Allow("10.0.0.1", 10, time.Minute) {
		t.Error("request over the limit was allowed")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter()

	for range 3 {
		rl.Allow("10.0.0.1", 3, time.Minute)
	}
	if rl.Allow("10.0.0.1", 3, time.Minute) {
		t.Error("exhausted key was allowed")
	}
	if !rl.Allow("10.0.0.2", 3, time.Minute) {
		t.Error("fresh key was denied because another key is exhausted")
	}
}

func TestAllowStartsNewWindowAfterLapse(t *testing.T) {
	rl := NewRateLimiter()

	for range 2 {
		rl.Allow("10.0.0.1", 2, 10*time.Millisecond)
	}
	if rl.Allow("10.0.0.1", 2, 10*time.Millisecond) {
		t.Error("allowed inside an exhausted window")
	}

	time.Sleep(15 * time.Millisecond)

	if !rl.Allow("10.0.0.1", 2, 10*time.Millisecond) {
		t.Error("denied after the window lapsed")
	}
}

func TestCleanupKeepsLiveCounters(t *testing.T) {
	rl := NewRateLimiter()

	rl.Allow("stale", 5, 10*time.Millisecond)
	time.Sleep(15 * time.Millisecond)
	rl.Allow("live", 5, time.Minute)

	rl.Cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.counters["stale"]; ok {
		t.Error("lapsed counter survived cleanup")
	}
	if _, ok := rl.counters["live"]; !ok {
		t.Error("live counter was removed by cleanup")
	}
}

func TestRateLimitRejectsWith429(t *testing.T) {
	rl := NewRateLimiter()

	handler := RateLimit(rl, RealIP, 1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/login", nil)
	req.RemoteAddr = "10.0.0.1:52000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: status = %d, want %d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request: status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

func TestRateLimitSeparatesClientsByIP(t *testing.T) {
	rl := NewRateLimiter()

	handler := RateLimit(rl, RealIP, 1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest("POST", "/api/login", nil)
	first.RemoteAddr = "10.0.0.1:52000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("repeat client: status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}

	other := httptest.NewRequest("POST", "/api/login", nil)
	other.RemoteAddr = "10.0.0.2:52000"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	if rec.Code != http.StatusOK {
		t.Errorf("other client: status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRealIPHeaderPrecedence(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:52000"
	if got := RealIP(req); got != "10.0.0.1" {
		t.Errorf("RemoteAddr fallback = %q, want %q", got, "10.0.0.1")
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := RealIP(req); got != "203.0.113.7" {
		t.Errorf("X-Forwarded-For = %q, want first hop %q", got, "203.0.113.7")
	}

	req.Header.Set("CF-Connecting-IP", "198.51.100.9")
	if got := RealIP(req); got != "198.51.100.9" {
		t.Errorf("CF-Connecting-IP = %q, want %q", got, "198.51.100.9")
	}
}
