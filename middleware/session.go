// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/suchithgali/playlisthub/auth"
)

// Caller is the authenticated identity behind a request.
type Caller struct {
	UserID   string
	Username string
}

// UserExistsFunc reports whether a user ID still names an account.
type UserExistsFunc func(ctx context.Context, userID string) (bool, error)

// WithSession resolves an "Authorization: Bearer <token>" header into a
// Caller on the request context. Requests without the header pass
// through anonymously. A bad token, or a valid token whose account has
// since been deleted, is rejected with 401.
func WithSession(sessions *auth.SessionManager, userExists UserExistsFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				ErrorResponse(w, http.StatusUnauthorized, "Authorization header must be a Bearer token")
				return
			}

			claims, err := sessions.Parse(token)
			if err != nil {
				ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session")
				return
			}

			exists, err := userExists(r.Context(), claims.UserID())
			if err != nil {
				slog.Error("failed to look up session user", "error", err, "user_id", claims.UserID())
				ErrorResponse(w, http.StatusInternalServerError, "Database error")
				return
			}
			if !exists {
				ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session")
				return
			}

			ctx := WithCaller(r.Context(), Caller{UserID: claims.UserID(), Username: claims.Username})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects anonymous requests with 401
func RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CallerFrom(r.Context()); !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Login required")
			return
		}
		next(w, r)
	}
}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey, c)
}

// CallerFrom returns the caller stored by WithSession.
func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey).(Caller)
	return c, ok && c.UserID != ""
}

// CallerID is the caller's user ID, or "" for anonymous requests.
func CallerID(ctx context.Context) string {
	c, _ := CallerFrom(ctx)
	return c.UserID
}
