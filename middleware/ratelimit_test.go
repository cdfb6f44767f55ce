// ABOUTME: Unit tests for rate limiting middleware
// ABOUTME: Tests core limiter, key extraction, and middleware factory

package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := rl.Allow("test-key")
		if !allowed {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	rl.Allow("test-key")
	rl.Allow("test-key")

	allowed, retryAfter := rl.Allow("test-key")
	if allowed {
		t.Fatal("Third request should be rejected")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Errorf("Expected retryAfter between 0 and 60s, got %v", retryAfter)
	}
}

func TestRateLimiter_SeparateKeys(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	if allowed, _ := rl.Allow("key-a"); !allowed {
		t.Fatal("First request for key-a should be allowed")
	}
	if allowed, _ := rl.Allow("key-b"); !allowed {
		t.Fatal("First request for key-b should be allowed (separate quota)")
	}
	if allowed, _ := rl.Allow("key-a"); allowed {
		t.Fatal("Second request for key-a should be rejected")
	}
}

func TestRateLimiter_WindowResetsAtBoundary(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return now }

	rl.Allow("k")
	if allowed, _ := rl.Allow("k"); allowed {
		t.Fatal("Expected second request in window to be rejected")
	}

	now = now.Add(time.Minute)
	if allowed, _ := rl.Allow("k"); !allowed {
		t.Error("Expected the boundary instant to start a new window")
	}
}

func TestRateLimiter_SweepBoundsMemory(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Second)
	rl.now = func() time.Time { return now }

	for i := 0; i < 50; i++ {
		rl.Allow(fmt.Sprintf("old-%d", i))
	}
	now = now.Add(2 * time.Second)
	for i := 0; i < 50; i++ {
		rl.Allow(fmt.Sprintf("new-%d", i))
	}

	if rl.Len() > 50 {
		t.Errorf("Expected expired keys swept, got %d tracked", rl.Len())
	}
}

func TestRateLimiter_Concurrent(t *testing.T) {
	rl := NewRateLimiter(50, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := rl.Allow("shared"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Errorf("Expected exactly 50 allowed, got %d", allowed)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		remoteAddr string
		want       string
	}{
		{"remote addr with port", "", "10.0.0.1:5555", "ip:10.0.0.1"},
		{"leftmost forwarded", "203.0.113.9, 10.0.0.2", "10.0.0.1:5555", "ip:203.0.113.9"},
		{"garbage forwarded falls back", "not-an-ip", "10.0.0.1:5555", "ip:10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRateLimit_Returns429(t *testing.T) {
	handler := RateLimit(NewRateLimiter(1, time.Minute), ClientIP)(okHandler)

	first := httptest.NewRecorder()
	handler(first, httptest.NewRequest(http.MethodPost, "/api/v1/plan", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("Expected first request 200, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler(second, httptest.NewRequest(http.MethodPost, "/api/v1/plan", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}

	var body map[string]any
	if err := json.NewDecoder(second.Body).Decode(&body); err != nil {
		t.Fatalf("Expected JSON body: %v", err)
	}
	if body["error"] != "Rate limit exceeded" {
		t.Errorf("Unexpected body %v", body)
	}
}

func TestRateLimit_NilLimiterDisabled(t *testing.T) {
	handler := RateLimit(nil, ClientIP)(okHandler)
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest(http.MethodPost, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected disabled limiter to pass request %d, got %d", i, w.Code)
		}
	}
}
