package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidToken covers malformed, badly signed and expired tokens alike
var ErrInvalidToken = errors.New("invalid or expired token")

// Codec issues and verifies signed bearer tokens binding a user id.
// It is stateless; the signing key is injected at construction.
type Codec struct {
	signingKey []byte
	expiry     time.Duration // zero means tokens never expire
}

// NewCodec creates a Codec. expiryHours <= 0 disables the exp claim.
func NewCodec(signingKey string, expiryHours int) *Codec {
	var expiry time.Duration
	if expiryHours > 0 {
		expiry = time.Duration(expiryHours) * time.Hour
	}
	return &Codec{
		signingKey: []byte(signingKey),
		expiry:     expiry,
	}
}

// Issue produces a signed token for the given user id
func (tc *Codec) Issue(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"iat":    time.Now().Unix(),
	}
	if tc.expiry > 0 {
		claims["exp"] = time.Now().Add(tc.expiry).Unix()
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(tc.signingKey)
}

// Verify parses and validates a token string and returns the bound user id.
// Any failure (bad signature, malformed token, expiry) yields ErrInvalidToken.
func (tc *Codec) Verify(tokenString string) (uint, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tc.signingKey, nil
	})
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return 0, ErrInvalidToken
	}

	// JWT numeric claims decode as float64
	userID, ok := claims["userId"].(float64)
	if !ok || userID <= 0 {
		return 0, ErrInvalidToken
	}

	return uint(userID), nil
}
