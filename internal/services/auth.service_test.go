package services

import (
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := NewAuthService("test-secret-key-with-32-bytes!!!", time.Hour)

	token, err := auth.GenerateToken("pit-wall-laptop")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected a three-part JWT, got %q", token)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.ClientName != "pit-wall-laptop" {
		t.Errorf("unexpected client name: %q", claims.ClientName)
	}
	if claims.Issuer != "pitwall" {
		t.Errorf("unexpected issuer: %q", claims.Issuer)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	auth := NewAuthService("test-secret-key-with-32-bytes!!!", -time.Hour)

	token, err := auth.GenerateToken("stale-client")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := auth.ValidateToken(token); err == nil {
		t.Fatal("expected an expired token to be rejected")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	auth := NewAuthService("test-secret-key-with-32-bytes!!!", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		if _, err := auth.ValidateToken(tok); err == nil {
			t.Errorf("expected token %q to be rejected", tok)
		}
	}
}

func TestWrongKeyRejected(t *testing.T) {
	minter := NewAuthService("test-secret-key-with-32-bytes!!!", time.Hour)
	verifier := NewAuthService("another-secret-key-with-32-bytes", time.Hour)

	token, err := minter.GenerateToken("driver-station")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("expected a token signed with a different key to be rejected")
	}
}

func TestShortKeyIsPadded(t *testing.T) {
	// A short explicit key gets padded, and the same service instance
	// must still verify its own tokens.
	auth := NewAuthService("short", time.Hour)

	token, err := auth.GenerateToken("bench-rig")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.ClientName != "bench-rig" {
		t.Errorf("unexpected client name: %q", claims.ClientName)
	}
}
