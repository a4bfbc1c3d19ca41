package api

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := mintSessionToken("luffy@example.com", "Luffy", time.Hour)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	claims, err := verifySessionToken(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.Sub != "luffy@example.com" || claims.Name != "Luffy" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestSessionTokenExpired(t *testing.T) {
	token, err := mintSessionToken("luffy@example.com", "Luffy", -time.Minute)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := verifySessionToken(token); err != errTokenExpired {
		t.Fatalf("expected errTokenExpired, got %v", err)
	}
}

func TestSessionTokenTampered(t *testing.T) {
	token, err := mintSessionToken("luffy@example.com", "Luffy", time.Hour)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := verifySessionToken(token + "x"); err == nil {
		t.Fatal("tampered token accepted")
	}
	if _, err := verifySessionToken("not-a-token"); err != errMalformedToken {
		t.Fatalf("expected errMalformedToken, got %v", err)
	}
}
