package utils

import (
	"testing"
	"time"
)

func TestGenerateTokenRoundTrip(t *testing.T) {
	tokenString, err := GenerateToken("prov-1", "provider", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	token, err := ValidateToken(tokenString)
	if err != nil || !token.Valid {
		t.Fatalf("ValidateToken: %v (valid=%v)", err, token != nil && token.Valid)
	}

	claims, err := TokenClaims(token)
	if err != nil {
		t.Fatalf("TokenClaims: %v", err)
	}
	if claims["sub"] != "prov-1" {
		t.Errorf("sub = %v, want prov-1", claims["sub"])
	}
	if claims["role"] != "provider" {
		t.Errorf("role = %v, want provider", claims["role"])
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
}

func TestHashTokenIsStable(t *testing.T) {
	a := HashToken("token-1")
	b := HashToken("token-1")
	if a != b {
		t.Fatalf("hash not deterministic: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("hash length = %d, want 64 hex chars", len(a))
	}
	if HashToken("token-2") == a {
		t.Fatal("distinct tokens hashed to the same value")
	}
}
