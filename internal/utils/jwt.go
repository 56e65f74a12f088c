package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the JWT payload for short-lived access tokens. Role is
// embedded so the authorization middleware does not hit the database on
// every request.
type AccessClaims struct {
	UserID uint64 `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// NewAccessToken signs an HS256 access token for the given user.
func NewAccessToken(secret string, userID uint64, role string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// ErrInvalidToken covers malformed, expired and wrongly signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// ParseAccessToken validates the signature and expiry and returns the claims.
func ParseAccessToken(secret, raw string) (*AccessClaims, error) {
	var claims AccessClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// NewRefreshToken generates an opaque refresh token. The raw value goes to
// the client; only its SHA-256 hash is stored server side.
func NewRefreshToken() (raw, hash string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, HashRefreshRaw(raw), nil
}

// HashRefreshRaw hashes a raw refresh token for storage or lookup.
func HashRefreshRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
