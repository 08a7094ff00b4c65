// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/suchithgali/playlisthub/auth"
	"github.com/suchithgali/playlisthub/models"
)

// MaxAttempts bounds how many transactions CastVote runs when it keeps
// losing insert races.
const MaxAttempts = 3

// Actions recorded in the "vote cast" log line
const (
	ActionCreated   = "created"
	ActionFlipped   = "flipped"
	ActionRetracted = "retracted"
	ActionUnchanged = "unchanged"
)

// Service applies the vote state machine:
//
//	no vote        -> insert
//	same value     -> delete (PolicyToggle) or nothing (PolicyIdempotent)
//	opposite value -> replace the value (score moves by 2)
type Service struct {
	repo   Repository
	reader *Reader
	policy Policy
	now    func() time.Time
	newID  func() (string, error)
}

func NewService(repo Repository, policy Policy) *Service {
	return &Service{
		repo:   repo,
		reader: NewReader(repo),
		policy: policy,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() (string, error) { return auth.GenerateID(16) },
	}
}

// CastVote records callerID's vote on playlistID and returns the fresh
// aggregate. Errors leave the stored votes unchanged.
func (s *Service) CastVote(ctx context.Context, callerID, playlistID string, value int) (models.VoteResult, error) {
	if callerID == "" {
		return models.VoteResult{}, ErrUnauthenticated
	}
	if value != models.Upvote && value != models.Downvote {
		return models.VoteResult{}, ErrInvalidArgument
	}

	// After a lost insert race the row that beat us is treated as our
	// own earlier write, so the retry only ever sets the value.
	asUpdate := false
	var action string
	var err error
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		action, err = s.apply(ctx, callerID, playlistID, value, asUpdate)
		if !errors.Is(err, ErrConflictRetryable) {
			break
		}
		slog.Warn("vote conflict, retrying as update",
			"playlist_id", playlistID,
			"user_id", callerID,
			"attempt", attempt,
		)
		asUpdate = true
	}
	if errors.Is(err, ErrConflictRetryable) {
		return models.VoteResult{}, fmt.Errorf("%w: gave up after %d attempts: %w", ErrStoreUnavailable, MaxAttempts, err)
	}
	if err != nil {
		return models.VoteResult{}, err
	}

	result, err := s.reader.Aggregate(ctx, playlistID, callerID)
	if err != nil {
		return models.VoteResult{}, err
	}

	slog.Info("vote cast",
		"playlist_id", playlistID,
		"user_id", callerID,
		"value", value,
		"action", action,
		"policy", s.policy,
		"vote_count", result.VoteCount,
	)
	return result, nil
}

func (s *Service) apply(ctx context.Context, callerID, playlistID string, value int, asUpdate bool) (string, error) {
	var action string
	err := s.repo.InTx(ctx, func(q Queries) error {
		// A session token can outlive its account
		known, err := q.UserExists(ctx, callerID)
		if err != nil {
			return err
		}
		if !known {
			return ErrUnauthenticated
		}

		exists, err := q.PlaylistExists(ctx, playlistID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}

		existing, found, err := q.FindVote(ctx, callerID, playlistID)
		if err != nil {
			return err
		}

		now := s.now()
		switch {
		case !found:
			id, err := s.newID()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
			}
			action = ActionCreated
			return q.InsertVote(ctx, models.Vote{
				ID:         id,
				UserID:     callerID,
				PlaylistID: playlistID,
				Value:      value,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		case existing.Value == value:
			if s.policy == PolicyToggle && !asUpdate {
				action = ActionRetracted
				return q.DeleteVote(ctx, existing.ID)
			}
			action = ActionUnchanged
			return nil
		default:
			action = ActionFlipped
			return q.UpdateVoteValue(ctx, existing.ID, value, now)
		}
	})
	return action, err
}
