// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/suchithgali/playlisthub/auth"
	"github.com/suchithgali/playlisthub/cliparse"
	"github.com/suchithgali/playlisthub/db"
	"github.com/suchithgali/playlisthub/votes"
)

// TestDBURLEnv names the variable that points tests at PostgreSQL instead
// of an in-memory SQLite database.
const TestDBURLEnv = "TEST_DATABASE_URL"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	dbType, url := db.TypeSQLite, ":memory:"
	if pg := os.Getenv(TestDBURLEnv); pg != "" {
		dbType, url = db.TypePostgres, pg
	}

	conn, err := db.Open(ctx, dbType, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Clean up tables before each test
	if err := db.DropSchema(ctx, conn); err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}
	if err := db.CreateSchema(ctx, conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  db.TypeSQLite,
		SessionSecret: "test-session-secret",
		SessionTTL:    time.Hour,
		VotePolicy:    votes.PolicyToggle,
	}
}

// Sessions returns a session manager matching GetTestConfig
func Sessions(cfg cliparse.Config) *auth.SessionManager {
	return auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
}

// CreateTestUser inserts a user whose password is "password123" and
// returns its ID
func CreateTestUser(t *testing.T, conn *sql.DB, username string) string {
	t.Helper()

	userID, _ := auth.GenerateID(16)
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO app_user (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, userID, username, hash, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// CreateTestPlaylist inserts a playlist owned by ownerID and returns its ID
func CreateTestPlaylist(t *testing.T, conn *sql.DB, ownerID, title, genre, songs string) string {
	t.Helper()
	return CreateTestPlaylistAt(t, conn, ownerID, title, genre, songs, time.Now().UTC())
}

// CreateTestPlaylistAt is CreateTestPlaylist with an explicit created_at
func CreateTestPlaylistAt(t *testing.T, conn *sql.DB, ownerID, title, genre, songs string, createdAt time.Time) string {
	t.Helper()

	playlistID, _ := auth.GenerateID(16)
	_, err := conn.Exec(`
		INSERT INTO playlist (id, title, description, songs, genre, user_id, created_at)
		VALUES ($1, $2, 'A test playlist', $3, $4, $5, $6)
	`, playlistID, title, songs, genre, ownerID, createdAt)
	if err != nil {
		t.Fatalf("Failed to create test playlist: %v", err)
	}

	return playlistID
}

// CreateTestVote inserts a vote row directly
func CreateTestVote(t *testing.T, conn *sql.DB, userID, playlistID string, value int) string {
	t.Helper()

	voteID, _ := auth.GenerateID(16)
	now := time.Now().UTC()
	_, err := conn.Exec(`
		INSERT INTO vote (id, user_id, playlist_id, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`, voteID, userID, playlistID, value, now)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return voteID
}

// CreateTestComment inserts a comment and returns its ID
func CreateTestComment(t *testing.T, conn *sql.DB, userID, username, playlistID, body string) string {
	t.Helper()

	commentID, _ := auth.GenerateID(16)
	now := time.Now().UTC()
	_, err := conn.Exec(`
		INSERT INTO comment (id, user_id, username, playlist_id, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`, commentID, userID, username, playlistID, body, now)
	if err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}

	return commentID
}

// CountRows returns SELECT COUNT(*) FROM table WHERE column = value
func CountRows(t *testing.T, conn *sql.DB, table, column, value string) int {
	t.Helper()

	var n int
	err := conn.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE "+column+" = $1", value).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count %s rows: %v", table, err)
	}
	return n
}

// AuthHeaders returns an Authorization header for userID
func AuthHeaders(t *testing.T, cfg cliparse.Config, userID, username string) map[string]string {
	t.Helper()

	token, _, err := Sessions(cfg).Issue(userID, username)
	if err != nil {
		t.Fatalf("Failed to issue session token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
