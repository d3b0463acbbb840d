package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTokenTestService(secret string) *AuthService {
	return &AuthService{secretKey: []byte(secret)}
}

func TestResetTokenRoundTrip(t *testing.T) {
	s := newTokenTestService("test-secret")

	token, err := s.createResetToken(42)
	if err != nil {
		t.Fatalf("createResetToken() error = %v", err)
	}

	userID, err := s.parseResetToken(token)
	if err != nil {
		t.Fatalf("parseResetToken() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("parseResetToken() = %d, want 42", userID)
	}
}

func TestResetTokenWrongSecret(t *testing.T) {
	s := newTokenTestService("test-secret")

	token, err := s.createResetToken(42)
	if err != nil {
		t.Fatalf("createResetToken() error = %v", err)
	}

	other := newTokenTestService("different-secret")
	if _, err := other.parseResetToken(token); err == nil {
		t.Error("parseResetToken() accepted a token signed with another secret")
	}
}

func TestResetTokenExpired(t *testing.T) {
	s := newTokenTestService("test-secret")

	claims := jwt.RegisteredClaims{
		Subject:   "42",
		Audience:  jwt.ClaimStrings{"password_reset"},
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := s.parseResetToken(token); err == nil {
		t.Error("parseResetToken() accepted an expired token")
	}
}

func TestResetTokenWrongAudience(t *testing.T) {
	s := newTokenTestService("test-secret")

	claims := jwt.RegisteredClaims{
		Subject:   "42",
		Audience:  jwt.ClaimStrings{"something_else"},
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := s.parseResetToken(token); err == nil {
		t.Error("parseResetToken() accepted a token for another purpose")
	}
}

func TestResetTokenGarbage(t *testing.T) {
	s := newTokenTestService("test-secret")

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := s.parseResetToken(token); err == nil {
			t.Errorf("parseResetToken(%q) accepted a malformed token", token)
		}
	}
}
