package util

import (
	"course_companion_backend/internal/model"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		Email:            "student@example.com",
		Role:             model.RoleStudent,
		SubscriptionTier: model.TierPremium,
	}
	user.ID = "user-123"

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}

	if claims.UserID != user.ID {
		t.Errorf("UserID = %q, want %q", claims.UserID, user.ID)
	}
	if claims.Role != model.RoleStudent {
		t.Errorf("Role = %q, want %q", claims.Role, model.RoleStudent)
	}
	if claims.Tier != model.TierPremium {
		t.Errorf("Tier = %q, want %q", claims.Tier, model.TierPremium)
	}
	if claims.Email != user.Email {
		t.Errorf("Email = %q, want %q", claims.Email, user.Email)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	user := &model.User{Email: "a@b.c", Role: model.RoleStudent, SubscriptionTier: model.TierFree}
	user.ID = "user-456"

	token, err := GenerateJWT(user, "secret-one", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, "secret-two"); err == nil {
		t.Error("expected an error when parsing with the wrong secret")
	}
}
