package auth

import (
	"strings"
	"testing"

	"github.com/estatedesk/estatedesk/internal/domain"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	a := New("test-secret")

	hash, err := a.HashPassword("s3cure-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cure-password" {
		t.Fatal("hash equals plaintext")
	}

	if err := a.CheckPassword("s3cure-password", hash); err != nil {
		t.Errorf("CheckPassword rejected correct password: %v", err)
	}
	if err := a.CheckPassword("wrong-password", hash); err == nil {
		t.Error("CheckPassword accepted wrong password")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	a := New("test-secret")

	token, err := a.GenerateJWT("user-1", "agent@example.com", domain.RoleAgent)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("token does not look like a JWT: %s", token)
	}

	claims, err := a.ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "agent@example.com" || claims.Role != domain.RoleAgent {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := New("secret-a").GenerateJWT("user-1", "agent@example.com", domain.RoleAgent)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	if _, err := New("secret-b").ValidateJWT(token); err == nil {
		t.Error("token signed with a different secret validated")
	}
}

func TestJWTGarbage(t *testing.T) {
	if _, err := New("test-secret").ValidateJWT("not.a.token"); err == nil {
		t.Error("garbage token validated")
	}
}
