// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votes

import (
	"context"

	"github.com/suchithgali/playlisthub/models"
)

// Reader is the read-only side: aggregate score plus the caller's vote.
type Reader struct {
	q Queries
}

func NewReader(q Queries) *Reader {
	return &Reader{q: q}
}

// Aggregate returns the playlist's score and callerID's vote on it.
// An empty callerID (anonymous) always has CallerVote 0.
func (r *Reader) Aggregate(ctx context.Context, playlistID, callerID string) (models.VoteResult, error) {
	sum, err := r.q.SumVotes(ctx, playlistID)
	if err != nil {
		return models.VoteResult{}, err
	}

	result := models.VoteResult{VoteCount: sum}
	if callerID == "" {
		return result, nil
	}

	v, found, err := r.q.FindVote(ctx, callerID, playlistID)
	if err != nil {
		return models.VoteResult{}, err
	}
	if found {
		result.CallerVote = v.Value
	}
	return result, nil
}
