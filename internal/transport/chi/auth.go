package chi

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the caller resolved from the Authorization header. Browsing
// is open, so a missing or invalid token degrades to a guest identity
// instead of rejecting the request.
type Identity struct {
	UserID string
	Roles  []string
	Guest  bool
}

// IsAdmin reports whether the identity carries the admin role.
func (id Identity) IsAdmin() bool {
	for _, r := range id.Roles {
		if r == "admin" {
			return true
		}
	}
	return false
}

type identityKey struct{}

// IdentityFromContext returns the Identity resolved by the middleware.
// Absent means guest.
func IdentityFromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityKey{}).(Identity); ok {
		return id
	}
	return Identity{Guest: true}
}

type identityClaims struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// IdentityMiddleware resolves the caller from a Bearer JWT signed with
// jwtSecret. Every request passes; unauthenticated callers proceed as
// guests.
func IdentityMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	secret := []byte(jwtSecret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := Identity{Guest: true}

			const bearerPrefix = "Bearer "
			auth := r.Header.Get("Authorization")
			if strings.HasPrefix(auth, bearerPrefix) && len(secret) > 0 {
				claims := &identityClaims{}
				token, err := jwt.ParseWithClaims(auth[len(bearerPrefix):], claims,
					func(t *jwt.Token) (any, error) { return secret, nil },
					jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
				if err == nil && token.Valid && claims.UserID != "" {
					identity = Identity{UserID: claims.UserID, Roles: claims.Roles}
				}
			}

			ctx := context.WithValue(r.Context(), identityKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin guards privileged routes: guests get 401, authenticated
// non-admins get 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())
		if identity.Guest {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
			return
		}
		if !identity.IsAdmin() {
			writeError(w, http.StatusForbidden, codeForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
