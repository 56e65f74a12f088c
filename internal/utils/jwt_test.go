package utils

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := NewAccessToken("secret", 42, "ADMIN", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := ParseAccessToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "ADMIN" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewAccessToken("secret", 42, "USER", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseAccessToken("other", token); err == nil {
		t.Fatal("token accepted with wrong secret")
	}
}

func TestAccessTokenRejectsExpired(t *testing.T) {
	token, err := NewAccessToken("secret", 42, "USER", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseAccessToken("secret", token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	raw, hash, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if raw == "" || hash == "" || raw == hash {
		t.Fatalf("raw=%q hash=%q", raw, hash)
	}
	if HashRefreshRaw(raw) != hash {
		t.Fatal("hash is not reproducible from the raw token")
	}

	raw2, _, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("generate second: %v", err)
	}
	if raw == raw2 {
		t.Fatal("two refresh tokens collided")
	}
}
