// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/suchithgali/playlisthub/auth"
	"github.com/suchithgali/playlisthub/cliparse"
	"github.com/suchithgali/playlisthub/db"
	"github.com/suchithgali/playlisthub/middleware"
	"github.com/suchithgali/playlisthub/models"
	"github.com/suchithgali/playlisthub/votes"
)

type UserHandler struct {
	db        *sql.DB
	sessions  *auth.SessionManager
	playlists *PlaylistHandler
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{
		db:        db,
		sessions:  auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL),
		playlists: NewPlaylistHandler(db),
	}
}

// UserExists reports whether userID still has an account. Session tokens
// outlive account deletion, so the session middleware checks this.
func (h *UserHandler) UserExists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := h.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM app_user WHERE id = $1)`, userID).Scan(&exists)
	return exists, err
}

// Signup handles POST /signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	username := strings.TrimSpace(req.Username)
	if len(username) < models.MinUsernameLen || len(username) > models.MaxUsernameLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username must be 3-80 characters")
		return
	}
	if len(req.Password) < models.MinPasswordLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	userID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate user ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	// UNIQUE(username) decides races between identical signups
	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO app_user (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, userID, username, hash, time.Now().UTC())

	if db.IsUniqueViolation(err) {
		middleware.ErrorResponse(w, http.StatusConflict, "Username already exists")
		return
	}
	if err != nil {
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	slog.Info("user signed up", "user_id", userID, "username", username)

	middleware.JSONResponse(w, http.StatusCreated, models.SignupResponse{UserID: userID})
}

// Login handles POST /login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var user models.User
	err := h.db.QueryRowContext(r.Context(), `
		SELECT id, username, password_hash FROM app_user WHERE username = $1
	`, strings.TrimSpace(req.Username)).Scan(&user.ID, &user.Username, &user.PasswordHash)

	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		slog.Warn("login failed", "username", user.Username)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, expiresAt, err := h.sessions.Issue(user.ID, user.Username)
	if err != nil {
		slog.Error("failed to issue session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("user logged in", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: expiresAt,
	})
}

// GetMe handles GET /me
// Returns the caller's account and their playlists with vote counts
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := middleware.CallerID(ctx)

	var user models.User
	err := h.db.QueryRowContext(ctx, `
		SELECT id, username, created_at FROM app_user WHERE id = $1
	`, callerID).Scan(&user.ID, &user.Username, &user.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		// Token outlived the account
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	playlists, err := listPlaylists(ctx, h.db, callerID, "", "")
	if err != nil {
		slog.Error("failed to query user playlists", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	summaries, err := h.playlists.summarize(ctx, playlists, callerID)
	if err != nil {
		slog.Error("failed to aggregate votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProfileResponse{
		User:      user,
		Playlists: summaries,
	})
}

// DeleteMe handles DELETE /me
// Removes the account along with its votes, comments and playlists
// (including other users' votes and comments on those playlists).
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := middleware.CallerID(ctx)

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	removedVotes, err := votes.DeleteForUser(ctx, tx, callerID)
	if err != nil {
		slog.Error("failed to delete user votes", "error", err, "user_id", callerID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	ownedVotes, err := votes.DeleteForOwner(ctx, tx, callerID)
	if err != nil {
		slog.Error("failed to delete votes on user playlists", "error", err, "user_id", callerID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	statements := []string{
		`DELETE FROM comment WHERE playlist_id IN (SELECT id FROM playlist WHERE user_id = $1)`,
		`DELETE FROM comment WHERE user_id = $1`,
		`DELETE FROM playlist WHERE user_id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, callerID); err != nil {
			slog.Error("failed to delete user data", "error", err, "user_id", callerID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete account")
			return
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM app_user WHERE id = $1`, callerID)
	if err != nil {
		slog.Error("failed to delete user", "error", err, "user_id", callerID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	slog.Info("user deleted", "user_id", callerID, "votes_removed", removedVotes+ownedVotes)
	w.WriteHeader(http.StatusNoContent)
}
