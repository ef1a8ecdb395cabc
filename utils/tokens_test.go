package utils

import (
	"testing"
	"time"

	"membroBack/internal/models"
)

func TestManagerRoundTrip(t *testing.T) {
	manager, err := NewManager("test-signing-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := manager.NewAccessToken(42, models.RoleManager, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id: expected 42, got %d", claims.UserID)
	}
	if claims.Role != models.RoleManager {
		t.Errorf("role: expected %s, got %s", models.RoleManager, claims.Role)
	}
}

func TestManagerRejectsWrongKey(t *testing.T) {
	signer, _ := NewManager("key-one")
	verifier, _ := NewManager("key-two")

	token, err := signer.NewAccessToken(1, models.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := verifier.Parse(token); err == nil {
		t.Fatal("expected parse to fail with a different key")
	}
}

func TestManagerRejectsExpiredToken(t *testing.T) {
	manager, _ := NewManager("test-signing-key")

	token, err := manager.NewAccessToken(1, models.RoleUser, -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := manager.Parse(token); err == nil {
		t.Fatal("expected parse to fail for an expired token")
	}
}

func TestNewManagerRequiresKey(t *testing.T) {
	if _, err := NewManager(""); err == nil {
		t.Fatal("expected error for empty signing key")
	}
}

func TestNewRefreshToken(t *testing.T) {
	manager, _ := NewManager("test-signing-key")

	first, err := manager.NewRefreshToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(first))
	}

	second, _ := manager.NewRefreshToken()
	if first == second {
		t.Fatal("expected refresh tokens to differ")
	}
}
