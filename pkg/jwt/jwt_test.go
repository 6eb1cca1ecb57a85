package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	id := uuid.New()

	token, expiresAt, err := m.GenerateToken(id, "cajero1", "CAJERO")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Errorf("expiry %v is not in the future", expiresAt)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != id || claims.Username != "cajero1" || claims.Role != "CAJERO" {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	token, _, err := NewManager("one", time.Hour).GenerateToken(uuid.New(), "u", "GERENTE")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewManager("two", time.Hour).ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	m := NewManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := m.GenerateToken(uuid.New(), "u", "CAJERO")
	if err != nil {
		t.Fatal(err)
	}

	m.now = time.Now
	if _, err := m.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateEmptyToken(t *testing.T) {
	if _, err := NewManager("s", time.Hour).ValidateToken(""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("err = %v, want ErrMissingToken", err)
	}
}
