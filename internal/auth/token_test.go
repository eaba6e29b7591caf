package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStatic_Token(t *testing.T) {
	token, err := Static("abc123").Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token != "abc123" {
		t.Errorf("Token = %q", token)
	}
}

func TestStatic_EmptyIsAnError(t *testing.T) {
	if _, err := Static("").Token(context.Background()); err == nil {
		t.Error("empty token should be an error, not an empty bearer header")
	}
}

func TestMinter_MintAndParse(t *testing.T) {
	userID := uuid.New()
	m := NewMinter("test-secret", userID, time.Hour)

	token, err := m.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}

	claims, err := ParseClaims(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %v, expected %v", claims.UserID, userID)
	}
	if claims.ExpiresAt == nil {
		t.Error("minted token should carry an expiry")
	}
}

func TestMinter_ReusesCachedToken(t *testing.T) {
	m := NewMinter("test-secret", uuid.New(), time.Hour)

	first, err := m.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	second, err := m.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if first != second {
		t.Error("a fresh token should be reused until close to expiry")
	}
}

func TestMinter_RemintsNearExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMinter("test-secret", uuid.New(), time.Hour)
	m.now = func() time.Time { return now }

	first, err := m.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}

	// 30 seconds of validity left, inside the one minute remint margin.
	now = now.Add(time.Hour - 30*time.Second)
	second, err := m.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if first == second {
		t.Error("a nearly expired token should be reminted")
	}
}

func TestParseClaims_RejectsWrongSecret(t *testing.T) {
	m := NewMinter("test-secret", uuid.New(), time.Hour)
	token, err := m.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}

	if _, err := ParseClaims(token, "other-secret"); err == nil {
		t.Error("a token signed with a different secret should not parse")
	}
}

func TestParseClaims_RejectsExpired(t *testing.T) {
	past := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMinter("test-secret", uuid.New(), time.Minute)
	m.now = func() time.Time { return past }

	token, err := m.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}

	if _, err := ParseClaims(token, "test-secret"); err == nil {
		t.Error("an expired token should not parse")
	}
}

func TestParseClaims_RejectsEmpty(t *testing.T) {
	if _, err := ParseClaims("", "test-secret"); err == nil {
		t.Error("empty token string should be rejected")
	}
}
