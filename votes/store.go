// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/suchithgali/playlisthub/db"
	"github.com/suchithgali/playlisthub/models"
)

// Queries are the vote store operations. They run either directly on
// the connection pool or inside a transaction.
type Queries interface {
	UserExists(ctx context.Context, userID string) (bool, error)
	PlaylistExists(ctx context.Context, playlistID string) (bool, error)
	FindVote(ctx context.Context, userID, playlistID string) (models.Vote, bool, error)
	InsertVote(ctx context.Context, v models.Vote) error
	UpdateVoteValue(ctx context.Context, voteID string, value int, at time.Time) error
	DeleteVote(ctx context.Context, voteID string) error
	SumVotes(ctx context.Context, playlistID string) (int, error)
}

// Repository is Queries plus a transactional boundary.
type Repository interface {
	Queries
	InTx(ctx context.Context, fn func(Queries) error) error
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	q querier
}

// Store is the SQL-backed Repository.
type Store struct {
	queries
	db *sql.DB
}

func NewStore(conn *sql.DB) *Store {
	return &Store{queries: queries{q: conn}, db: conn}
}

// InTx runs fn in a transaction. It commits when fn returns nil and
// rolls back otherwise.
func (s *Store) InTx(ctx context.Context, fn func(Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	if err := fn(queries{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (s queries) UserExists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := s.q.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM app_user WHERE id = $1)
	`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: check user: %w", ErrStoreUnavailable, err)
	}
	return exists, nil
}

func (s queries) PlaylistExists(ctx context.Context, playlistID string) (bool, error) {
	var exists bool
	err := s.q.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM playlist WHERE id = $1)
	`, playlistID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: check playlist: %w", ErrStoreUnavailable, err)
	}
	return exists, nil
}

func (s queries) FindVote(ctx context.Context, userID, playlistID string) (models.Vote, bool, error) {
	var v models.Vote
	err := s.q.QueryRowContext(ctx, `
		SELECT id, user_id, playlist_id, value, created_at, updated_at
		FROM vote
		WHERE user_id = $1 AND playlist_id = $2
	`, userID, playlistID).Scan(&v.ID, &v.UserID, &v.PlaylistID, &v.Value, &v.CreatedAt, &v.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Vote{}, false, nil
	}
	if err != nil {
		return models.Vote{}, false, fmt.Errorf("%w: find vote: %w", ErrStoreUnavailable, err)
	}
	return v, true, nil
}

// InsertVote returns ErrConflictRetryable when a vote for the same
// (user, playlist) already exists.
func (s queries) InsertVote(ctx context.Context, v models.Vote) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO vote (id, user_id, playlist_id, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, v.ID, v.UserID, v.PlaylistID, v.Value, v.CreatedAt, v.UpdatedAt)

	if db.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %w", ErrConflictRetryable, err)
	}
	if err != nil {
		return fmt.Errorf("%w: insert vote: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// UpdateVoteValue returns ErrConflictRetryable if the row disappeared
// since it was read.
func (s queries) UpdateVoteValue(ctx context.Context, voteID string, value int, at time.Time) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE vote SET value = $1, updated_at = $2 WHERE id = $3
	`, value, at, voteID)
	if err != nil {
		return fmt.Errorf("%w: update vote: %w", ErrStoreUnavailable, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: update vote: %w", ErrStoreUnavailable, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: vote %s was removed concurrently", ErrConflictRetryable, voteID)
	}
	return nil
}

func (s queries) DeleteVote(ctx context.Context, voteID string) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM vote WHERE id = $1`, voteID); err != nil {
		return fmt.Errorf("%w: delete vote: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// SumVotes is the aggregate score. A playlist with no votes sums to 0.
func (s queries) SumVotes(ctx context.Context, playlistID string) (int, error) {
	var sum int64
	err := s.q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(value), 0) FROM vote WHERE playlist_id = $1
	`, playlistID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("%w: sum votes: %w", ErrStoreUnavailable, err)
	}
	return int(sum), nil
}

// DeleteForPlaylist removes every vote on a playlist inside tx.
func DeleteForPlaylist(ctx context.Context, tx *sql.Tx, playlistID string) (int64, error) {
	return deleteWhere(ctx, tx, "playlist_id", playlistID)
}

// DeleteForUser removes every vote cast by a user inside tx.
func DeleteForUser(ctx context.Context, tx *sql.Tx, userID string) (int64, error) {
	return deleteWhere(ctx, tx, "user_id", userID)
}

// DeleteForOwner removes every vote on playlists owned by ownerID inside tx.
func DeleteForOwner(ctx context.Context, tx *sql.Tx, ownerID string) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		DELETE FROM vote WHERE playlist_id IN (SELECT id FROM playlist WHERE user_id = $1)
	`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("%w: delete votes by playlist owner: %w", ErrStoreUnavailable, err)
	}
	return res.RowsAffected()
}

func deleteWhere(ctx context.Context, tx *sql.Tx, column, id string) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM vote WHERE `+column+` = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%w: delete votes by %s: %w", ErrStoreUnavailable, column, err)
	}
	return res.RowsAffected()
}
