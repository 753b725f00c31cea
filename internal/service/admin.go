package service

import (
	"crypto/subtle"
	"errors"

	"github.com/partsdesk/partsdesk/internal/auth"
	"github.com/partsdesk/partsdesk/internal/metrics"
)

// ErrInvalidLogin is returned for any failed admin login. The same
// error covers unknown email and wrong password to prevent enumeration.
var ErrInvalidLogin = errors.New("invalid email or password")

// AdminService handles the single-operator admin login.
type AdminService struct {
	issuer       *auth.TokenIssuer
	email        string
	passwordHash string
	metrics      metrics.Recorder
}

// NewAdminService creates an AdminService for the configured operator
// credentials (email plus argon2id password hash).
func NewAdminService(issuer *auth.TokenIssuer, email, passwordHash string, recorder metrics.Recorder) *AdminService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AdminService{issuer: issuer, email: email, passwordHash: passwordHash, metrics: recorder}
}

// Login verifies operator credentials and issues a bearer token.
// The password hash is always verified, even on email mismatch, so
// both failure paths take comparable time.
func (s *AdminService) Login(email, password string) (string, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(normalizeEmail(email)), []byte(normalizeEmail(s.email))) == 1

	passwordOK, err := auth.VerifyPassword(password, s.passwordHash)
	if err != nil {
		passwordOK = false
	}

	if !emailOK || !passwordOK {
		s.metrics.IncAdminLogin("failed")
		return "", ErrInvalidLogin
	}

	token, err := s.issuer.Issue(s.email)
	if err != nil {
		return "", err
	}

	s.metrics.IncAdminLogin("success")
	return token, nil
}

// Verify validates a bearer token and returns its claims.
func (s *AdminService) Verify(token string) (*auth.AdminClaims, error) {
	return s.issuer.Verify(token)
}
