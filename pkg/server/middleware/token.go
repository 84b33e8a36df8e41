package middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// NewSessionToken mints a signed session token for the given principal
// email, expiring after ttl.
func NewSessionToken(key []byte, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
	return token.SignedString(key)
}
