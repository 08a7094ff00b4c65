// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/suchithgali/playlisthub/auth"
	"github.com/suchithgali/playlisthub/middleware"
	"github.com/suchithgali/playlisthub/models"
	"github.com/suchithgali/playlisthub/votes"
)

type PlaylistHandler struct {
	db     *sql.DB
	reader *votes.Reader
}

func NewPlaylistHandler(db *sql.DB) *PlaylistHandler {
	return &PlaylistHandler{db: db, reader: votes.NewReader(votes.NewStore(db))}
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const playlistColumns = `p.id, p.title, p.description, p.songs, p.genre, p.user_id, u.username, p.created_at`

func scanPlaylist(row interface{ Scan(...any) error }) (models.Playlist, error) {
	var p models.Playlist
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Songs, &p.Genre, &p.UserID, &p.Author, &p.CreatedAt)
	return p, err
}

// getPlaylist returns sql.ErrNoRows when the playlist does not exist
func getPlaylist(ctx context.Context, q queryRower, id string) (models.Playlist, error) {
	return scanPlaylist(q.QueryRowContext(ctx, `
		SELECT `+playlistColumns+`
		FROM playlist p
		JOIN app_user u ON u.id = p.user_id
		WHERE p.id = $1
	`, id))
}

// summarize attaches vote aggregates. Must not be called with rows open:
// SQLite runs on a single connection.
func (h *PlaylistHandler) summarize(ctx context.Context, playlists []models.Playlist, callerID string) ([]models.PlaylistSummary, error) {
	summaries := make([]models.PlaylistSummary, 0, len(playlists))
	for _, p := range playlists {
		result, err := h.reader.Aggregate(ctx, p.ID, callerID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, models.PlaylistSummary{
			Playlist:   p,
			VoteResult: result,
			SongCount:  len(models.SplitSongs(p.Songs)),
			CreatedAgo: humanize.Time(p.CreatedAt),
		})
	}
	return summaries, nil
}

// listPlaylists loads playlists newest first, optionally filtered by
// owner, genre (case-insensitive) and title substring.
func listPlaylists(ctx context.Context, db *sql.DB, ownerID, genre, search string) ([]models.Playlist, error) {
	var query strings.Builder
	var args []any
	query.WriteString(`SELECT ` + playlistColumns + ` FROM playlist p JOIN app_user u ON u.id = p.user_id WHERE 1 = 1`)

	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if ownerID != "" {
		query.WriteString(` AND p.user_id = ` + arg(ownerID))
	}
	if genre = strings.TrimSpace(genre); genre != "" {
		query.WriteString(` AND LOWER(p.genre) = LOWER(` + arg(genre) + `)`)
	}
	if search = strings.TrimSpace(search); search != "" {
		query.WriteString(` AND LOWER(p.title) LIKE ` + arg("%"+escapeLike(strings.ToLower(search))+"%") + ` ESCAPE '\'`)
	}
	query.WriteString(` ORDER BY p.created_at DESC, p.id`)

	rows, err := db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	playlists := []models.Playlist{}
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// GetGenres handles GET /genres
func (h *PlaylistHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.GenresResponse{Genres: models.Genres})
}

// ListPlaylists handles GET /playlists?genre=&search=
func (h *PlaylistHandler) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := middleware.CallerID(ctx)

	playlists, err := listPlaylists(ctx, h.db, "", r.URL.Query().Get("genre"), r.URL.Query().Get("search"))
	if err != nil {
		slog.Error("failed to query playlists", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	summaries, err := h.summarize(ctx, playlists, callerID)
	if err != nil {
		slog.Error("failed to aggregate votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, summaries)
}

// CreatePlaylist handles POST /playlists
func (h *PlaylistHandler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.CallerID(r.Context())

	var req models.CreatePlaylistRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	title := strings.TrimSpace(req.Title)
	if title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if len(title) > models.MaxTitleLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title must be at most 100 characters")
		return
	}
	genre, ok := models.CanonicalGenre(req.Genre)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "genre must be one of: "+strings.Join(models.Genres, ", "))
		return
	}

	playlistID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate playlist ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create playlist")
		return
	}

	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO playlist (id, title, description, songs, genre, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, playlistID, title, strings.TrimSpace(req.Description), models.JoinSongs(models.SplitSongs(req.Songs)), genre, callerID, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert playlist", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create playlist")
		return
	}

	slog.Info("playlist created", "playlist_id", playlistID, "user_id", callerID, "genre", genre)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePlaylistResponse{
		PlaylistID: playlistID,
	})
}

// GetPlaylist handles GET /playlists/{id}
func (h *PlaylistHandler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	playlistID := r.PathValue("id")

	p, err := getPlaylist(ctx, h.db, playlistID)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Playlist not found")
		return
	}
	if err != nil {
		slog.Error("failed to query playlist", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	result, err := h.reader.Aggregate(ctx, p.ID, middleware.CallerID(ctx))
	if err != nil {
		slog.Error("failed to aggregate votes", "error", err, "playlist_id", p.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PlaylistDetail{
		Playlist:   p,
		VoteResult: result,
		SongList:   models.SplitSongs(p.Songs),
		CreatedAgo: humanize.Time(p.CreatedAt),
	})
}

// ownedPlaylist loads a playlist and checks the caller owns it. On
// failure it writes the response and returns false.
func ownedPlaylist(ctx context.Context, w http.ResponseWriter, q queryRower, playlistID, callerID string) (models.Playlist, bool) {
	p, err := getPlaylist(ctx, q, playlistID)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Playlist not found")
		return p, false
	}
	if err != nil {
		slog.Error("failed to query playlist", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return p, false
	}
	if p.UserID != callerID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the owner can modify this playlist")
		return p, false
	}
	return p, true
}

// DeletePlaylist handles DELETE /playlists/{id}
// Votes and comments on the playlist are removed in the same transaction.
func (h *PlaylistHandler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := middleware.CallerID(ctx)
	playlistID := r.PathValue("id")

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if _, ok := ownedPlaylist(ctx, w, tx, playlistID, callerID); !ok {
		return
	}

	removedVotes, err := votes.DeleteForPlaylist(ctx, tx, playlistID)
	if err != nil {
		slog.Error("failed to delete playlist votes", "error", err, "playlist_id", playlistID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete playlist")
		return
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM comment WHERE playlist_id = $1`, playlistID); err != nil {
		slog.Error("failed to delete playlist comments", "error", err, "playlist_id", playlistID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete playlist")
		return
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM playlist WHERE id = $1`, playlistID); err != nil {
		slog.Error("failed to delete playlist", "error", err, "playlist_id", playlistID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete playlist")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete playlist")
		return
	}

	slog.Info("playlist deleted", "playlist_id", playlistID, "votes_removed", removedVotes)
	w.WriteHeader(http.StatusNoContent)
}

// AddSong handles POST /playlists/{id}/songs
func (h *PlaylistHandler) AddSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := middleware.CallerID(ctx)
	playlistID := r.PathValue("id")

	var req models.AddSongRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	song, ok := models.FormatSong(req.Artist, req.SongTitle)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "artist and song_title are required")
		return
	}

	if _, ok := ownedPlaylist(ctx, w, h.db, playlistID, callerID); !ok {
		return
	}

	// Append in one statement so concurrent adds don't overwrite each other
	_, err := h.db.ExecContext(ctx, `
		UPDATE playlist
		SET songs = CASE WHEN songs = '' THEN $1 ELSE songs || $2 || $1 END
		WHERE id = $3
	`, song, "\n", playlistID)
	if err != nil {
		slog.Error("failed to add song", "error", err, "playlist_id", playlistID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add song")
		return
	}

	h.respondSongs(w, r, playlistID, http.StatusCreated)
}

// DeleteSong handles DELETE /playlists/{id}/songs/{index}
// An index outside the list leaves the playlist unchanged.
func (h *PlaylistHandler) DeleteSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := middleware.CallerID(ctx)
	playlistID := r.PathValue("id")

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	p, ok := ownedPlaylist(ctx, w, tx, playlistID, callerID)
	if !ok {
		return
	}

	songs := models.SplitSongs(p.Songs)
	if index >= 0 && index < len(songs) {
		songs = append(songs[:index], songs[index+1:]...)
		if _, err := tx.ExecContext(ctx, `UPDATE playlist SET songs = $1 WHERE id = $2`, models.JoinSongs(songs), playlistID); err != nil {
			slog.Error("failed to delete song", "error", err, "playlist_id", playlistID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete song")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete song")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SongListResponse{Songs: songs})
}

func (h *PlaylistHandler) respondSongs(w http.ResponseWriter, r *http.Request, playlistID string, status int) {
	var songs string
	err := h.db.QueryRowContext(r.Context(), `SELECT songs FROM playlist WHERE id = $1`, playlistID).Scan(&songs)
	if err != nil {
		slog.Error("failed to query songs", "error", err, "playlist_id", playlistID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, status, models.SongListResponse{Songs: models.SplitSongs(songs)})
}
