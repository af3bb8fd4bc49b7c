package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/preston-bernstein/hooponomics-service/internal/testutil"
)

func okHandler(limiter *RateLimiter) http.Handler {
	return limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	handler := okHandler(NewRateLimiter(0.001, 2, false))

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/teams", nil)
		req.RemoteAddr = addr
		return testutil.ServeRequest(handler, req)
	}

	testutil.AssertStatus(t, send("10.0.0.1:1000"), http.StatusOK)
	testutil.AssertStatus(t, send("10.0.0.1:1001"), http.StatusOK)
	rr := send("10.0.0.1:1002")
	testutil.AssertStatus(t, rr, http.StatusTooManyRequests)
	if rr.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	if body["error"] != "rate limit exceeded" {
		t.Fatalf("unexpected body %v", body)
	}

	testutil.AssertStatus(t, send("10.0.0.2:1000"), http.StatusOK)
}

func TestRateLimiterIgnoresForwardedForByDefault(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1, false)
	handler := okHandler(limiter)

	allowed := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/teams", nil)
		req.RemoteAddr = "10.0.0.9:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		if testutil.ServeRequest(handler, req).Code == http.StatusOK {
			allowed++
		}
	}
	if allowed != 1 {
		t.Fatalf("expected a single allowed request from one socket, got %d", allowed)
	}
	if n := limiter.clientCount(); n != 1 {
		t.Fatalf("expected one tracked client, got %d", n)
	}
}

func TestRateLimiterTrustedProxyUsesLastHop(t *testing.T) {
	handler := okHandler(NewRateLimiter(0.001, 1, true))

	send := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodGet, "/teams", nil)
		req.RemoteAddr = "10.0.0.1:80"
		req.Header.Set("X-Forwarded-For", forwarded)
		return testutil.ServeRequest(handler, req).Code
	}

	if code := send("1.1.1.1, 203.0.113.7"); code != http.StatusOK {
		t.Fatalf("expected first request allowed, got %d", code)
	}
	if code := send("2.2.2.2, 203.0.113.7"); code != http.StatusTooManyRequests {
		t.Fatalf("expected spoofed leading hop to share the bucket, got %d", code)
	}
	if code := send("203.0.113.8"); code != http.StatusOK {
		t.Fatalf("expected a different proxy-appended hop to get its own bucket, got %d", code)
	}
}

func TestRateLimiterSweepsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(1, 1, false)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 20; i++ {
		limiter.Allow(fmt.Sprintf("10.0.0.%d", i))
	}
	if n := limiter.clientCount(); n != 20 {
		t.Fatalf("expected 20 tracked clients, got %d", n)
	}

	now = now.Add(limiterIdleTTL + sweepInterval)
	limiter.Allow("10.0.1.1")
	if n := limiter.clientCount(); n != 1 {
		t.Fatalf("expected idle clients swept, got %d", n)
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	limiter := NewRateLimiter(0, 0, false)
	for i := 0; i < 100; i++ {
		if !limiter.Allow("client") {
			t.Fatalf("expected disabled limiter to allow request %d", i)
		}
	}
	var nilLimiter *RateLimiter
	if !nilLimiter.Allow("client") {
		t.Fatalf("expected nil limiter to allow")
	}
}
