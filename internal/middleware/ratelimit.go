package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/partsdesk/partsdesk/internal/auth"
	"github.com/partsdesk/partsdesk/internal/metrics"
	"github.com/partsdesk/partsdesk/internal/ratelimit"
)

// RateLimitConfig holds configuration for the per-key rate limit middleware.
type RateLimitConfig struct {
	Logger  *slog.Logger
	Limiter *ratelimit.Limiter
	Metrics metrics.Recorder
	Enabled bool
}

// RateLimitPerKey returns middleware that rate limits requests per API
// key with a fixed-window counter. Requests without an API key bypass
// this limiter deliberately: the signature middleware already rejects
// keyless requests on protected routes, and the global per-IP limiter
// still applies.
func RateLimitPerKey(cfg RateLimitConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(APIKeyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result := cfg.Limiter.Allow(key)

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				recorder.IncRateLimitDenied()

				retryAfter := int(result.RetryAfter.Seconds())
				cfg.Logger.Warn("rate limit exceeded",
					slog.String("key_preview", auth.KeyPreview(key)),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.Int("retry_after_seconds", retryAfter),
					slog.String("request_id", GetRequestID(r.Context())),
				)

				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				msg := fmt.Sprintf(
					`{"success":false,"message":"Rate limit exceeded","retryAfter":%d}`,
					retryAfter,
				)
				_, _ = w.Write([]byte(msg))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
