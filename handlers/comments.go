// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/suchithgali/playlisthub/auth"
	"github.com/suchithgali/playlisthub/middleware"
	"github.com/suchithgali/playlisthub/models"
)

type CommentHandler struct {
	db *sql.DB
}

func NewCommentHandler(db *sql.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

func validCommentBody(body string) (string, bool) {
	body = strings.TrimSpace(body)
	return body, body != "" && len(body) <= models.MaxCommentLen
}

// ListComments handles GET /playlists/{id}/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	playlistID := r.PathValue("id")

	var exists bool
	err := h.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM playlist WHERE id = $1)`, playlistID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query playlist", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Playlist not found")
		return
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT id, user_id, username, playlist_id, body, created_at, updated_at
		FROM comment
		WHERE playlist_id = $1
		ORDER BY created_at, id
	`, playlistID)
	if err != nil {
		slog.Error("failed to query comments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.Username, &c.PlaylistID, &c.Body, &c.CreatedAt, &c.UpdatedAt); err != nil {
			slog.Error("failed to scan comment", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		c.CreatedAgo = humanize.Time(c.CreatedAt)
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate comments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, comments)
}

// CreateComment handles POST /playlists/{id}/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, _ := middleware.CallerFrom(ctx)
	playlistID := r.PathValue("id")

	var req models.CommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	body, ok := validCommentBody(req.Body)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "body must be 1-2000 characters")
		return
	}

	commentID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate comment ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}

	// INSERT ... SELECT inserts nothing when the playlist is missing
	now := time.Now().UTC()
	res, err := h.db.ExecContext(ctx, `
		INSERT INTO comment (id, user_id, username, playlist_id, body, created_at, updated_at)
		SELECT $1, $2, $3, id, $4, $5, $5 FROM playlist WHERE id = $6
	`, commentID, caller.UserID, caller.Username, body, now, playlistID)
	if err != nil {
		slog.Error("failed to insert comment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Playlist not found")
		return
	}

	slog.Info("comment added", "comment_id", commentID, "playlist_id", playlistID, "user_id", caller.UserID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateCommentResponse{CommentID: commentID})
}

// authorOf returns the comment's author ID or writes an error response
func (h *CommentHandler) authorOf(w http.ResponseWriter, r *http.Request, commentID string) (string, bool) {
	var authorID string
	err := h.db.QueryRowContext(r.Context(), `SELECT user_id FROM comment WHERE id = $1`, commentID).Scan(&authorID)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Comment not found")
		return "", false
	}
	if err != nil {
		slog.Error("failed to query comment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return "", false
	}
	if authorID != middleware.CallerID(r.Context()) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the author can change this comment")
		return "", false
	}
	return authorID, true
}

// UpdateComment handles PUT /comments/{id}
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	commentID := r.PathValue("id")

	var req models.CommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	body, ok := validCommentBody(req.Body)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "body must be 1-2000 characters")
		return
	}

	authorID, ok := h.authorOf(w, r, commentID)
	if !ok {
		return
	}

	_, err := h.db.ExecContext(r.Context(), `
		UPDATE comment SET body = $1, updated_at = $2 WHERE id = $3 AND user_id = $4
	`, body, time.Now().UTC(), commentID, authorID)
	if err != nil {
		slog.Error("failed to update comment", "error", err, "comment_id", commentID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update comment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteComment handles DELETE /comments/{id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := r.PathValue("id")

	authorID, ok := h.authorOf(w, r, commentID)
	if !ok {
		return
	}

	_, err := h.db.ExecContext(r.Context(), `DELETE FROM comment WHERE id = $1 AND user_id = $2`, commentID, authorID)
	if err != nil {
		slog.Error("failed to delete comment", "error", err, "comment_id", commentID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete comment")
		return
	}

	slog.Info("comment deleted", "comment_id", commentID)
	w.WriteHeader(http.StatusNoContent)
}
