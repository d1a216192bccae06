package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The cookie value is not the raw session id: it is an HS256-signed token
// wrapping the id, so a forged or tampered cookie is rejected before Redis
// is ever consulted. The token itself carries no expiry; session lifetime
// is governed solely by the Redis idle TTL.

type tokenClaims struct {
	jwt.RegisteredClaims
}

// EncodeToken signs a session id into a cookie-safe token.
func EncodeToken(secret []byte, sessionID string) (string, error) {
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       sessionID,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// DecodeToken validates a cookie token and returns the session id inside.
func DecodeToken(secret []byte, tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return "", errors.New("invalid session token claims")
	}

	return claims.ID, nil
}
