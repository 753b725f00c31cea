package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/partsdesk/partsdesk/internal/auth"
	"github.com/partsdesk/partsdesk/internal/metrics"
)

const (
	testAPIKey = "sk_store_test_key"
	testSecret = "middleware-test-secret"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func signatureMiddleware(t *testing.T) func(http.Handler) http.Handler {
	t.Helper()
	return SignatureAuth(SignatureConfig{
		Logger:   discardLogger(),
		Verifier: auth.NewVerifier(testAPIKey, testSecret, auth.DefaultSignatureWindow),
		Metrics:  metrics.NewNoop(),
	})
}

func signRequest(r *http.Request, body []byte) {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	r.Header.Set(APIKeyHeader, testAPIKey)
	r.Header.Set(TimestampHeader, ts)
	r.Header.Set(SignatureHeader, auth.Sign(testSecret, body, ts))
}

func TestSignatureAuth_AcceptsSignedRequest(t *testing.T) {
	t.Parallel()

	var gotIdentity *auth.Identity
	var gotBody []byte
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity = auth.IdentityFromContext(r.Context())
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})

	body := []byte(`{"email":"buyer@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/quotes", bytes.NewReader(body))
	signRequest(req, body)

	rec := httptest.NewRecorder()
	signatureMiddleware(t)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotIdentity == nil || gotIdentity.Client != auth.ClientStorefront {
		t.Errorf("Expected storefront identity in context, got: %+v", gotIdentity)
	}
	// The body must be restored for the downstream handler.
	if !bytes.Equal(gotBody, body) {
		t.Errorf("Downstream body = %q, want %q", gotBody, body)
	}
}

func TestSignatureAuth_AcceptsEmptyBodyGet(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/parts", nil)
	signRequest(req, nil)

	rec := httptest.NewRecorder()
	signatureMiddleware(t)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for signed GET, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSignatureAuth_Rejections(t *testing.T) {
	t.Parallel()

	body := []byte(`{"subject":"hi"}`)
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	staleTS := strconv.FormatInt(time.Now().Add(-10*time.Minute).UnixMilli(), 10)

	tests := []struct {
		name     string
		headers  map[string]string
		wantCode string
	}{
		{
			name:     "no credentials",
			headers:  map[string]string{},
			wantCode: "MISSING_CREDENTIALS",
		},
		{
			name: "wrong api key",
			headers: map[string]string{
				APIKeyHeader:    "sk_store_other",
				TimestampHeader: ts,
				SignatureHeader: auth.Sign(testSecret, body, ts),
			},
			wantCode: "INVALID_API_KEY",
		},
		{
			name: "non-numeric timestamp",
			headers: map[string]string{
				APIKeyHeader:    testAPIKey,
				TimestampHeader: "yesterday",
				SignatureHeader: auth.Sign(testSecret, body, "yesterday"),
			},
			wantCode: "INVALID_TIMESTAMP",
		},
		{
			name: "stale timestamp",
			headers: map[string]string{
				APIKeyHeader:    testAPIKey,
				TimestampHeader: staleTS,
				SignatureHeader: auth.Sign(testSecret, body, staleTS),
			},
			wantCode: "STALE_TIMESTAMP",
		},
		{
			name: "bad signature",
			headers: map[string]string{
				APIKeyHeader:    testAPIKey,
				TimestampHeader: ts,
				SignatureHeader: "deadbeef",
			},
			wantCode: "INVALID_SIGNATURE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("Handler should not be reached on rejection")
			})

			req := httptest.NewRequest(http.MethodPost, "/api/quotes", bytes.NewReader(body))
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			signatureMiddleware(t)(next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("Expected 401, got %d", rec.Code)
			}

			var resp struct {
				Success bool `json:"success"`
				Errors  []struct {
					Code string `json:"code"`
				} `json:"errors"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Response is not JSON: %v", err)
			}
			if resp.Success {
				t.Error("Rejection should set success=false")
			}
			if len(resp.Errors) != 1 || resp.Errors[0].Code != tt.wantCode {
				t.Errorf("Expected code %s, got: %+v", tt.wantCode, resp.Errors)
			}
		})
	}
}

func TestSignatureAuth_TamperedBodyRejected(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be reached")
	})

	signed := []byte(`{"quantity":1}`)
	tampered := []byte(`{"quantity":9}`)

	req := httptest.NewRequest(http.MethodPost, "/api/quotes", bytes.NewReader(tampered))
	signRequest(req, signed)

	rec := httptest.NewRecorder()
	signatureMiddleware(t)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 for tampered body, got %d", rec.Code)
	}
}
