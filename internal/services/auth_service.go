package services

import (
	"context"
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// AuthService verifies the single shared admin secret held in site settings.
// An instance with no secret configured is deliberately open (first-run
// mode): the gate passes trivially until a secret is set.
type AuthService struct {
	Settings SettingsStore
}

func NewAuthService(store SettingsStore) *AuthService {
	return &AuthService{Settings: store}
}

func (s *AuthService) Protected(ctx context.Context) (bool, error) {
	doc, err := s.Settings.Get(ctx)
	if err != nil {
		return false, err
	}
	return doc.AdminPass != "", nil
}

// Verify checks a submitted credential against the stored secret. New
// secrets are stored as bcrypt hashes; legacy documents may still hold the
// plain value, which gets a constant-time comparison instead.
func (s *AuthService) Verify(ctx context.Context, attempt string) (bool, error) {
	doc, err := s.Settings.Get(ctx)
	if err != nil {
		return false, err
	}
	real := doc.AdminPass
	if real == "" {
		return false, nil
	}
	if strings.HasPrefix(real, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(real), []byte(attempt)) == nil, nil
	}
	return subtle.ConstantTimeCompare([]byte(real), []byte(attempt)) == 1, nil
}
