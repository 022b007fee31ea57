package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/docpoint/docpoint-go/internal/crypto"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserAuth returns middleware that resolves a user token to a user ID and
// stores it in the request context. Handlers never read the user ID from
// the request body.
func UserAuth(secret string) func(http.Handler) http.Handler {
	return requireToken(secret, crypto.RoleUser)
}

// AdminAuth returns middleware that admits only admin-role tokens.
func AdminAuth(secret string) func(http.Handler) http.Handler {
	return requireToken(secret, crypto.RoleAdmin)
}

func requireToken(secret, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				writeAuthFailure(w, "not authorized, login again")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeAuthFailure(w, "invalid or expired token, login again")
				return
			}

			// Tokens issued before roles existed carry no role claim and
			// are treated as user tokens.
			claimRole := claims.Role
			if claimRole == "" {
				claimRole = crypto.RoleUser
			}
			if claimRole != role {
				writeAuthFailure(w, "not authorized, login again")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken accepts either an Authorization bearer header or the bare
// "token"/"atoken" headers the original web clients send.
func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		if token, found := strings.CutPrefix(authHeader, "Bearer "); found {
			return token
		}
	}
	if token := r.Header.Get("token"); token != "" {
		return token
	}
	return r.Header.Get("atoken")
}

// UserIDFromContext extracts the authenticated user ID from the request context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func writeAuthFailure(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg})
}
