package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	authproviders "github.com/cbodonnell/seafarer/pkg/auth/providers"
	"github.com/cbodonnell/seafarer/pkg/log"
	"github.com/cbodonnell/seafarer/pkg/repositories"
	"github.com/cbodonnell/seafarer/pkg/repositories/models"
)

type ContextKey int

const (
	// UserContextKey is the key used to store the user in the request context
	UserContextKey ContextKey = iota
)

// UserFromContext returns the user stored by the auth middleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	return user, ok
}

// NewAuthMiddleware verifies the bearer token of each request and stores the
// matching user in the request context, creating the user on first sight.
func NewAuthMiddleware(authProvider authproviders.AuthProvider, repository repositories.Repository) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bearerToken, err := parseBearerToken(r)
			if err != nil {
				log.Debug("failed to parse bearer token: %v", err)
				WriteFailure(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			token, err := authProvider.VerifyToken(r.Context(), bearerToken)
			if err != nil {
				log.Debug("failed to verify token: %v", err)
				WriteFailure(w, http.StatusUnauthorized, "Session expired, please log in again")
				return
			}

			user, err := repository.EnsureUser(r.Context(), token.UID, token.Email)
			if err != nil {
				log.Error("failed to ensure user: %v", err)
				WriteFailure(w, http.StatusInternalServerError, "Failed to load user")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// parseBearerToken parses the bearer token from the Authorization header
func parseBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("authorization header is missing")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", fmt.Errorf("invalid Authorization header format")
	}

	return parts[1], nil
}

// NewCORSMiddleware allows browser clients served from allowOrigin and answers preflight requests.
func NewCORSMiddleware(allowOrigin string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
