package crypto

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(42, "a@x.com", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty string")
	}
}

func TestVerifyTokenValid(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(42, "a@x.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	claims, err := VerifyToken(token, secret)
	if err != nil {
		t.Fatalf("VerifyToken() unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("VerifyToken() UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("VerifyToken() Email = %q, want %q", claims.Email, "a@x.com")
	}
}

func TestVerifyTokenMalformed(t *testing.T) {
	_, err := VerifyToken("not-a-valid-token", "test-secret")
	if err == nil {
		t.Error("VerifyToken() expected error for malformed token")
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(42, "a@x.com", "correct-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	_, err = VerifyToken(token, "wrong-secret")
	if err == nil {
		t.Error("VerifyToken() expected error for wrong secret")
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := GenerateToken(42, "a@x.com", "test-secret", time.Millisecond)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	_, err = VerifyToken(token, "test-secret")
	if err == nil {
		t.Error("VerifyToken() expected error for expired token")
	}
}

func TestVerifyTokenWrongIssuer(t *testing.T) {
	secret := "test-secret"

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: 42,
		Email:  "a@x.com",
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if _, err := VerifyToken(tokenString, secret); err == nil {
		t.Error("VerifyToken() expected error for wrong issuer")
	}
}

func TestVerifyTokenWrongSigningMethod(t *testing.T) {
	// An unsigned token must never verify, even with "alg": "none".
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: 42,
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if _, err := VerifyToken(tokenString, "test-secret"); err == nil {
		t.Error("VerifyToken() expected error for unsigned token")
	}
}
