package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/partsdesk/partsdesk/internal/metrics"
	"github.com/partsdesk/partsdesk/internal/ratelimit"
)

func rateLimited(limiter *ratelimit.Limiter, enabled bool) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return RateLimitPerKey(RateLimitConfig{
		Logger:  discardLogger(),
		Limiter: limiter,
		Metrics: metrics.NewNoop(),
		Enabled: enabled,
	})(next)
}

func keyedRequest(key string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	if key != "" {
		req.Header.Set(APIKeyHeader, key)
	}
	return req
}

func TestRateLimitPerKey_AllowsUpToLimit(t *testing.T) {
	t.Parallel()

	h := rateLimited(ratelimit.New(20, time.Minute), true)

	for i := 0; i < 20; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, keyedRequest("sk_store_a"))
		if rec.Code != http.StatusOK {
			t.Fatalf("Request %d should pass, got %d", i+1, rec.Code)
		}
	}

	// The 21st request inside the window is denied.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, keyedRequest("sk_store_a"))

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Denied response should carry Retry-After")
	}

	var resp struct {
		Success    bool   `json:"success"`
		Message    string `json:"message"`
		RetryAfter int    `json:"retryAfter"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("429 body is not JSON: %v", err)
	}
	if resp.Success {
		t.Error("429 should set success=false")
	}
	if resp.RetryAfter <= 0 {
		t.Errorf("429 body should carry a positive retryAfter, got %d", resp.RetryAfter)
	}
}

func TestRateLimitPerKey_SetsRateLimitHeaders(t *testing.T) {
	t.Parallel()

	h := rateLimited(ratelimit.New(5, time.Minute), true)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, keyedRequest("sk_store_b"))

	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "4" {
		t.Errorf("X-RateLimit-Remaining = %q, want 4", got)
	}
	if rec.Header().Get("X-RateLimit-Reset") == "" {
		t.Error("X-RateLimit-Reset should be set")
	}
}

func TestRateLimitPerKey_DisabledPassesThrough(t *testing.T) {
	t.Parallel()

	h := rateLimited(ratelimit.New(1, time.Minute), false)

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, keyedRequest("sk_store_c"))
		if rec.Code != http.StatusOK {
			t.Fatalf("Disabled limiter should pass request %d, got %d", i+1, rec.Code)
		}
	}
}

func TestRateLimitPerKey_MissingKeyBypasses(t *testing.T) {
	t.Parallel()

	h := rateLimited(ratelimit.New(1, time.Minute), true)

	// Keyless requests are left to the signature middleware and the
	// global IP limiter.
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, keyedRequest(""))
		if rec.Code != http.StatusOK {
			t.Fatalf("Keyless request %d should bypass, got %d", i+1, rec.Code)
		}
	}
}

func TestRateLimitPerKey_KeysIndependent(t *testing.T) {
	t.Parallel()

	h := rateLimited(ratelimit.New(1, time.Minute), true)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, keyedRequest("sk_store_d"))
	if rec.Code != http.StatusOK {
		t.Fatalf("First request for key d should pass, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, keyedRequest("sk_store_d"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Second request for key d should be denied, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, keyedRequest("sk_store_e"))
	if rec.Code != http.StatusOK {
		t.Fatalf("First request for key e should pass, got %d", rec.Code)
	}
}
