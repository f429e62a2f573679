package auth

import (
	"testing"

	"startup-hub/backend/internal/config"
	"startup-hub/backend/internal/constants"
)

func testTokenService() *TokenService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTLHours = 1
	return NewTokenService(cfg)
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := testTokenService()

	raw, err := svc.Issue("user-123", constants.RoleUser)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := svc.Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if claims.UserID() != "user-123" {
		t.Errorf("Expected user-123, got %s", claims.UserID())
	}
	if claims.Role() != "user" {
		t.Errorf("Expected role user, got %s", claims.Role())
	}
	if claims.IsAdmin() {
		t.Error("Expected non-admin claims")
	}
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	svc := testTokenService()

	raw, err := svc.Issue("user-123", constants.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	other := &TokenService{secret: []byte("other-secret"), ttl: svc.ttl}
	if _, err := other.Parse(raw); err == nil {
		t.Fatal("Expected parse to fail with a different secret")
	}
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc := testTokenService()
	if _, err := svc.Parse("not-a-token"); err == nil {
		t.Fatal("Expected parse to fail for malformed token")
	}
}
