package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/shayari/shayari-go/internal/crypto"
)

type contextKey string

const userIDKey contextKey = "userID"

var (
	errMissingAuthHeader = errors.New("missing authorization header")
	errBadAuthFormat     = errors.New("invalid authorization format")
	errBadToken          = errors.New("invalid or expired token")
)

// IdentityResolver maps a bearer credential to the ID of the user it was
// issued to.
type IdentityResolver func(token string) (userID string, err error)

// JWTIdentity resolves HS256 session tokens signed with secret. The subject
// must be a user UUID.
func JWTIdentity(secret string) IdentityResolver {
	return func(token string) (string, error) {
		claims, err := crypto.ValidateToken(token, secret)
		if err != nil {
			return "", err
		}
		id, err := uuid.Parse(claims.UserID())
		if err != nil {
			return "", err
		}
		return id.String(), nil
	}
}

// JWTAuth guards a route group with session tokens signed by secret.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return RequireUser(JWTIdentity(secret))
}

// RequireUser rejects requests without a resolvable bearer credential and
// stores the caller's user ID in the request context for the rest.
func RequireUser(resolve IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r.Header.Get("Authorization"))
			if err != nil {
				unauthorized(w, err)
				return
			}
			userID, err := resolve(token)
			if err != nil || userID == "" {
				unauthorized(w, errBadToken)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// bearerToken extracts the credential from an Authorization header value.
// The scheme name is case-insensitive.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingAuthHeader
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errBadAuthFormat
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", errBadAuthFormat
	}
	return token, nil
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="shayari"`)
	writeJSONError(w, http.StatusUnauthorized, err.Error())
}

// WithUserID returns a copy of ctx carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the authenticated user ID from the request context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}
