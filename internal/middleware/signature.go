package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/partsdesk/partsdesk/internal/auth"
	"github.com/partsdesk/partsdesk/internal/metrics"
)

// Signature headers carried by every protected request.
const (
	APIKeyHeader    = "x-api-key"
	TimestampHeader = "x-timestamp"
	SignatureHeader = "x-signature"
)

// SignatureConfig holds configuration for the signature auth middleware.
type SignatureConfig struct {
	Logger   *slog.Logger
	Verifier *auth.Verifier
	Metrics  metrics.Recorder
	// MaxBodySize bounds how much request body is read for verification.
	MaxBodySize int64
}

// rejectionReason maps a verification error to its stable reason code.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		return "MISSING_CREDENTIALS"
	case errors.Is(err, auth.ErrInvalidAPIKey):
		return "INVALID_API_KEY"
	case errors.Is(err, auth.ErrInvalidTimestamp):
		return "INVALID_TIMESTAMP"
	case errors.Is(err, auth.ErrStaleTimestamp):
		return "STALE_TIMESTAMP"
	case errors.Is(err, auth.ErrInvalidSignature):
		return "INVALID_SIGNATURE"
	default:
		return "UNAUTHORIZED"
	}
}

// SignatureAuth returns a middleware that authenticates requests signed
// with the shared API secret. The raw body is read for verification and
// restored for the downstream handler. Every rejection is a 401 with a
// machine-readable reason; the caller must re-sign with a fresh timestamp.
func SignatureAuth(cfg SignatureConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := readBody(r, cfg.MaxBodySize)
			if err != nil {
				writeAuthError(w, "INVALID_BODY", "Request body could not be read")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			creds := auth.Credentials{
				APIKey:    r.Header.Get(APIKeyHeader),
				Timestamp: r.Header.Get(TimestampHeader),
				Signature: r.Header.Get(SignatureHeader),
				Body:      body,
			}

			if err := cfg.Verifier.Verify(creds); err != nil {
				reason := rejectionReason(err)
				recorder.IncAuthRejected(reason)

				// Redacted preview only. The secret and the full
				// signature never reach the logs.
				cfg.Logger.Warn("signature verification failed",
					slog.String("reason", reason),
					slog.String("key_preview", auth.KeyPreview(creds.APIKey)),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)

				writeAuthError(w, reason, "Request authentication failed")
				return
			}

			identity := &auth.Identity{
				Client: auth.ClientStorefront,
				APIKey: creds.APIKey,
			}
			ctx := auth.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// readBody drains up to maxSize bytes of the request body.
func readBody(r *http.Request, maxSize int64) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	if maxSize <= 0 {
		maxSize = 1 << 20
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSize))
	if err != nil {
		return nil, err
	}
	_ = r.Body.Close()
	return body, nil
}

// writeAuthError writes a 401 response with a stable reason code.
func writeAuthError(w http.ResponseWriter, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	resp := map[string]any{
		"success": false,
		"message": message,
		"errors":  []map[string]string{{"code": code}},
	}
	_ = json.NewEncoder(w).Encode(resp)
}
