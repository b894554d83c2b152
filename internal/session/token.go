package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "inkwell"

// TokenCodec signs and verifies the cookie value carried by the browser.
// The token payload is only the session ID; everything else stays in the
// server-side store.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec returns a codec signing with the given secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Encode produces a signed token for the session ID, expiring with the session.
func (c *TokenCodec) Encode(sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": sessionID,
		"iss": tokenIssuer,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode validates signature, issuer, and expiry and returns the session ID.
func (c *TokenCodec) Decode(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid session token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("session token missing subject")
	}
	return sub, nil
}
