package models

import (
	"strings"
	"time"
)

// Vote values
const (
	Upvote   = 1
	Downvote = -1
)

// Field limits
const (
	MinUsernameLen = 3
	MaxUsernameLen = 80
	MinPasswordLen = 6
	MaxTitleLen    = 100
	MaxCommentLen  = 2000
)

// Genres is the fixed set of playlist genres.
var Genres = []string{"Pop", "Hip-Hop", "Rock", "Electronic", "R&B", "Country", "Jazz", "Classical", "Indie", "K-Pop"}

// CanonicalGenre returns the genre spelled as in Genres, matching
// case-insensitively.
func CanonicalGenre(genre string) (string, bool) {
	genre = strings.TrimSpace(genre)
	for _, g := range Genres {
		if strings.EqualFold(g, genre) {
			return g, true
		}
	}
	return "", false
}

// Request types

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreatePlaylistRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	// Newline-separated "Artist - Title" lines
	Songs string `json:"songs"`
}

type AddSongRequest struct {
	Artist    string `json:"artist"`
	SongTitle string `json:"song_title"`
}

type CastVoteRequest struct {
	Value int `json:"value"`
}

type CommentRequest struct {
	Body string `json:"body"`
}

// Response types

type SignupResponse struct {
	UserID string `json:"user_id"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CreatePlaylistResponse struct {
	PlaylistID string `json:"playlist_id"`
}

type CreateCommentResponse struct {
	CommentID string `json:"comment_id"`
}

// VoteResult is the aggregate score of a playlist together with the
// requesting caller's own vote (0 when the caller has none).
type VoteResult struct {
	VoteCount  int `json:"vote_count"`
	CallerVote int `json:"caller_vote"`
}

type PlaylistSummary struct {
	Playlist
	VoteResult
	SongCount  int    `json:"song_count"`
	CreatedAgo string `json:"created_ago"`
}

type PlaylistDetail struct {
	Playlist
	VoteResult
	SongList   []string `json:"song_list"`
	CreatedAgo string   `json:"created_ago"`
}

type ProfileResponse struct {
	User      User              `json:"user"`
	Playlists []PlaylistSummary `json:"playlists"`
}

type SongListResponse struct {
	Songs []string `json:"songs"`
}

type GenresResponse struct {
	Genres []string `json:"genres"`
}

// Domain types

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type Playlist struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genre       string    `json:"genre"`
	Songs       string    `json:"-"` // Exposed as SongList
	UserID      string    `json:"user_id"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
}

type Vote struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	PlaylistID string    `json:"playlist_id"`
	Value      int       `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Comment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	PlaylistID string    `json:"playlist_id"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	CreatedAgo string    `json:"created_ago"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
