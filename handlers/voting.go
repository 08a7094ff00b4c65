// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/suchithgali/playlisthub/cliparse"
	"github.com/suchithgali/playlisthub/middleware"
	"github.com/suchithgali/playlisthub/models"
	"github.com/suchithgali/playlisthub/votes"
)

type VotingHandler struct {
	votes *votes.Service
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{votes: votes.NewService(votes.NewStore(db), cfg.VotePolicy)}
}

// CastVote handles POST /playlists/{id}/vote with body {"value": 1 | -1}
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	h.cast(w, r, r.PathValue("id"), req.Value)
}

// CastVoteByPath handles POST /vote/{id}/{value}
func (h *VotingHandler) CastVoteByPath(w http.ResponseWriter, r *http.Request) {
	value, err := strconv.Atoi(r.PathValue("value"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid vote")
		return
	}

	h.cast(w, r, r.PathValue("id"), value)
}

func (h *VotingHandler) cast(w http.ResponseWriter, r *http.Request, playlistID string, value int) {
	// Identity is resolved by the session middleware and passed on explicitly
	callerID := middleware.CallerID(r.Context())

	result, err := h.votes.CastVote(r.Context(), callerID, playlistID, value)
	switch {
	case err == nil:
		middleware.JSONResponse(w, http.StatusOK, result)
	case errors.Is(err, votes.ErrUnauthenticated):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not logged in")
	case errors.Is(err, votes.ErrInvalidArgument):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid vote")
	case errors.Is(err, votes.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Playlist not found")
	default:
		slog.Error("failed to cast vote", "error", err, "playlist_id", playlistID, "user_id", callerID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
	}
}
