// Package auth provides request signature verification and admin authentication.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"
)

// DefaultSignatureWindow bounds replay exposure in both directions,
// including clock skew between client and server.
const DefaultSignatureWindow = 5 * time.Minute

// Verification errors. Each maps to a machine-readable 401 reason.
var (
	ErrMissingCredentials = errors.New("missing api key, timestamp, or signature")
	ErrInvalidAPIKey      = errors.New("invalid api key")
	ErrInvalidTimestamp   = errors.New("timestamp is not numeric")
	ErrStaleTimestamp     = errors.New("timestamp outside allowed window")
	ErrInvalidSignature   = errors.New("invalid signature")
)

// emptyBody is the canonical serialization of an empty request body.
// The client signs the same literal for body-less requests; the two
// sides must agree byte for byte or empty-body signatures never match.
var emptyBody = []byte("{}")

// Credentials carries the authentication material extracted from one request.
type Credentials struct {
	APIKey    string
	Timestamp string // unix milliseconds, as sent on the wire
	Signature string // hex-encoded HMAC-SHA256
	Body      []byte // raw request body, may be empty
}

// Verifier validates signed requests against a single configured
// API key and shared secret.
type Verifier struct {
	apiKey string
	secret string
	window time.Duration
	now    func() time.Time
}

// NewVerifier creates a Verifier. A non-positive window falls back to
// DefaultSignatureWindow.
func NewVerifier(apiKey, secret string, window time.Duration) *Verifier {
	if window <= 0 {
		window = DefaultSignatureWindow
	}
	return &Verifier{
		apiKey: apiKey,
		secret: secret,
		window: window,
		now:    time.Now,
	}
}

// Verify decides ACCEPT or REJECT for one request. The returned error
// is nil on acceptance or one of the package sentinel errors.
func (v *Verifier) Verify(c Credentials) error {
	if c.APIKey == "" || c.Timestamp == "" || c.Signature == "" {
		return ErrMissingCredentials
	}

	// The key itself is not secret-derived, so plain equality is fine here.
	if c.APIKey != v.apiKey {
		return ErrInvalidAPIKey
	}

	ts, err := strconv.ParseInt(c.Timestamp, 10, 64)
	if err != nil {
		return ErrInvalidTimestamp
	}

	if abs(v.now().UnixMilli()-ts) > v.window.Milliseconds() {
		return ErrStaleTimestamp
	}

	expected := Sign(v.secret, c.Body, c.Timestamp)
	if !hmac.Equal([]byte(expected), []byte(c.Signature)) {
		return ErrInvalidSignature
	}

	return nil
}

// Sign computes the hex HMAC-SHA256 signature over bodyJSON || timestamp.
// An empty body canonicalizes to the literal "{}".
func Sign(secret string, body []byte, timestamp string) string {
	if len(body) == 0 {
		body = emptyBody
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	mac.Write([]byte(timestamp))
	return hex.EncodeToString(mac.Sum(nil))
}

// KeyPreview returns a redacted preview of an API key suitable for
// security-monitoring logs. Never log the full key or a signature.
func KeyPreview(key string) string {
	if key == "" {
		return "<empty>"
	}
	if len(key) <= 6 {
		return key[:1] + "..."
	}
	return key[:6] + "..."
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
