package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/estatedesk/estatedesk/internal/domain"
)

func TestRateLimiterBurst(t *testing.T) {
	rl := &rateLimiter{
		buckets:  make(map[string]*tokenBucket),
		rate:     1,
		capacity: 3,
	}

	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("request beyond burst should be denied")
	}
	// A different IP has its own bucket
	if !rl.allow("10.0.0.2") {
		t.Error("fresh IP should be allowed")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		want       string
	}{
		{"direct", "192.168.1.5:41234", "", "192.168.1.5"},
		{"forwarded", "10.0.0.1:80", "203.0.113.7", "203.0.113.7"},
		{"forwarded chain", "10.0.0.1:80", "203.0.113.7, 10.0.0.2", "203.0.113.7"},
		{"no port", "192.168.1.5", "", "192.168.1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := clientIP(r); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRoleRankOrdering(t *testing.T) {
	if roleRank(domain.RoleAdmin) <= roleRank(domain.RoleManager) {
		t.Error("admin should outrank manager")
	}
	if roleRank(domain.RoleManager) <= roleRank(domain.RoleAgent) {
		t.Error("manager should outrank agent")
	}
	if roleRank(domain.Role("intern")) != 0 {
		t.Error("unknown role should rank 0")
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := securityHeadersMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	var seen string
	h := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(ctxRequestID).(string)
	}))

	// Client-supplied ID is kept
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	h.ServeHTTP(rec, req)
	if seen != "abc-123" {
		t.Errorf("request ID in context = %q, want abc-123", seen)
	}
	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID header = %q, want abc-123", got)
	}

	// Missing ID gets generated
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected generated request ID")
	}
}

func TestCORSPreflight(t *testing.T) {
	h := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight should not reach the handler")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("OPTIONS", "/api/v1/leads", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("missing Access-Control-Allow-Origin")
	}
}

func TestQueryHelpers(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=25&needs_followup=true&bad=abc", nil)

	if got := queryInt(r, "limit", 50); got != 25 {
		t.Errorf("queryInt(limit) = %d, want 25", got)
	}
	if got := queryInt(r, "missing", 50); got != 50 {
		t.Errorf("queryInt(missing) = %d, want default 50", got)
	}
	if got := queryInt(r, "bad", 50); got != 50 {
		t.Errorf("queryInt(bad) = %d, want default 50", got)
	}
	if !queryBool(r, "needs_followup") {
		t.Error("queryBool(needs_followup) = false, want true")
	}
	if queryBool(r, "missing") {
		t.Error("queryBool(missing) = true, want false")
	}
}

func TestRateLimitMiddlewareResponds429(t *testing.T) {
	rl := &rateLimiter{
		buckets:  make(map[string]*tokenBucket),
		rate:     0.001,
		capacity: 1,
	}
	h := rateLimitMiddleware(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "198.51.100.9:1234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
}
