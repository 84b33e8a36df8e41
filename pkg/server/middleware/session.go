package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/archipelago-ops/sitevault/pkg/audit"
	"github.com/archipelago-ops/sitevault/pkg/config"
	"github.com/archipelago-ops/sitevault/pkg/identity"
)

// SessionAuthenticator is middleware that validates bearer session tokens
// and resolves them to registered users.
type SessionAuthenticator struct {
	key      []byte
	resolver *identity.Resolver
}

// NewSessionAuthenticator creates a new session authenticator middleware
// verifying tokens with the given HMAC key.
func NewSessionAuthenticator(key []byte, resolver *identity.Resolver) *SessionAuthenticator {
	return &SessionAuthenticator{key: key, resolver: resolver}
}

// ClientIP determines the client address for a request. The rightmost
// X-Forwarded-For hop is honoured only when the direct peer is a trusted
// proxy.
func ClientIP(r *http.Request) string {
	remote := r.RemoteAddr
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}

	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" || !config.Get().IsTrustedProxy(remote) {
		return remote
	}

	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// Middleware returns an HTTP middleware that validates session tokens and
// stores the resolved identity in the request context.
func (s *SessionAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := ClientIP(r)

		authHeader := r.Header.Get("Authorization")
		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		principal, err := s.verify(tokenStr)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid session token"))
			return
		}
		principal = strings.ToLower(strings.TrimSpace(principal))

		user, err := s.resolver.Resolve(r.Context(), principal)
		if err != nil {
			audit.Log(audit.LoginEvent{
				Principal:    principal,
				ClientIP:     clientIP,
				Success:      false,
				ErrorMessage: err.Error(),
			})
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Principal is not registered"))
			return
		}

		ctx := identity.Set(r.Context(), &identity.Identity{
			User:      user,
			Principal: principal,
			RemoteIP:  clientIP,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// verify parses and validates the token, returning the email claim.
func (s *SessionAuthenticator) verify(tokenStr string) (string, error) {
	token, err := jwt.Parse(
		tokenStr,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return s.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}

	email, _ := claims["email"].(string)
	if email == "" {
		email, _ = claims["sub"].(string)
	}
	if email == "" {
		return "", jwt.ErrTokenRequiredClaimMissing
	}

	return email, nil
}
