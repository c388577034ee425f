package crypto

import (
	"encoding/base64"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Password1!")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if hash == "Password1!" {
		t.Fatal("expected hash to differ from plaintext")
	}

	if !VerifyPassword(hash, "Password1!") {
		t.Fatal("expected password verification to succeed")
	}

	if VerifyPassword(hash, "incorrect") {
		t.Fatal("expected password verification to fail")
	}
}

func TestHashPasswordWithCostFallsBack(t *testing.T) {
	hash, err := HashPasswordWithCost("Password1!", 1)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("cost error: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", cost)
	}
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(32)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("expected url-safe base64 token: %v", err)
	}
	if len(raw) != 32 {
		t.Fatalf("expected 32 random bytes, got %d", len(raw))
	}
	if strings.ContainsAny(token, "+/=") {
		t.Fatalf("token contains non url-safe characters: %s", token)
	}

	other, err := GenerateToken(32)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if other == token {
		t.Fatal("expected distinct tokens")
	}
}

func TestGenerateTokenRejectsNonPositiveLength(t *testing.T) {
	if _, err := GenerateToken(0); err != ErrInvalidTokenLength {
		t.Fatalf("expected ErrInvalidTokenLength, got %v", err)
	}
}

func TestHashTokenIsDeterministic(t *testing.T) {
	a := HashToken("code")
	b := HashToken("code")
	if a != b {
		t.Fatal("expected identical digests")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(a))
	}
	if HashToken("other") == a {
		t.Fatal("expected different digests for different inputs")
	}
}
