// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/suchithgali/playlisthub/auth"
	"github.com/suchithgali/playlisthub/cliparse"
	"github.com/suchithgali/playlisthub/handlers"
	"github.com/suchithgali/playlisthub/middleware"
)

// NewRouter builds the API handler. Every request gets a request ID and
// has its bearer token, if any, resolved into a caller whose account
// still exists.
func NewRouter(db *sql.DB, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(db, cfg)
	playlistHandler := handlers.NewPlaylistHandler(db)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	commentHandler := handlers.NewCommentHandler(db)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /signup", middleware.WithLogging(userHandler.Signup))
	mux.HandleFunc("POST /login", middleware.WithLogging(userHandler.Login))
	mux.HandleFunc("GET /me", middleware.WithLogging(middleware.RequireSession(userHandler.GetMe)))
	mux.HandleFunc("DELETE /me", middleware.WithLogging(middleware.RequireSession(userHandler.DeleteMe)))

	// Playlists (reads are public, writes require a session)
	mux.HandleFunc("GET /genres", middleware.WithLogging(playlistHandler.GetGenres))
	mux.HandleFunc("GET /playlists", middleware.WithLogging(playlistHandler.ListPlaylists))
	mux.HandleFunc("POST /playlists", middleware.WithLogging(middleware.RequireSession(playlistHandler.CreatePlaylist)))
	mux.HandleFunc("GET /playlists/{id}", middleware.WithLogging(playlistHandler.GetPlaylist))
	mux.HandleFunc("DELETE /playlists/{id}", middleware.WithLogging(middleware.RequireSession(playlistHandler.DeletePlaylist)))
	mux.HandleFunc("POST /playlists/{id}/songs", middleware.WithLogging(middleware.RequireSession(playlistHandler.AddSong)))
	mux.HandleFunc("DELETE /playlists/{id}/songs/{index}", middleware.WithLogging(middleware.RequireSession(playlistHandler.DeleteSong)))

	// Voting (the vote service reports anonymous callers itself)
	mux.HandleFunc("POST /playlists/{id}/vote", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("POST /vote/{id}/{value}", middleware.WithLogging(votingHandler.CastVoteByPath))

	// Comments
	mux.HandleFunc("GET /playlists/{id}/comments", middleware.WithLogging(commentHandler.ListComments))
	mux.HandleFunc("POST /playlists/{id}/comments", middleware.WithLogging(middleware.RequireSession(commentHandler.CreateComment)))
	mux.HandleFunc("PUT /comments/{id}", middleware.WithLogging(middleware.RequireSession(commentHandler.UpdateComment)))
	mux.HandleFunc("DELETE /comments/{id}", middleware.WithLogging(middleware.RequireSession(commentHandler.DeleteComment)))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("playlisthub API v1"))
	})

	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	return middleware.CORS(middleware.WithRequestID(middleware.WithSession(sessions, userHandler.UserExists)(mux)))
}
