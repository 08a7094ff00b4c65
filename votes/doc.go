// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package votes implements playlist voting: at most one +1/-1 vote per user
per playlist, and the aggregate score.

# Casting Votes

	svc := votes.NewService(votes.NewStore(conn), votes.PolicyToggle)
	result, err := svc.CastVote(ctx, callerID, playlistID, 1)
	// result.VoteCount, result.CallerVote

The lookup and the insert/update/delete run in one transaction. The
vote table carries UNIQUE (user_id, playlist_id); if a concurrent request
inserts first, the transaction is rolled back and retried as an update,
so the caller never sees a duplicate-key error.

# Repeat Votes

Repeating the vote you already have depends on Policy:

  - PolicyToggle (default): the vote is retracted, CallerVote becomes 0
  - PolicyIdempotent: nothing changes

Flipping +1 to -1 always replaces the value, moving the score by 2.

# Errors

	ErrUnauthenticated   no caller, or account deleted (401)
	ErrInvalidArgument   value not +1 or -1            (400)
	ErrNotFound          playlist does not exist       (404)
	ErrConflictRetryable lost an insert race           (retried internally)
	ErrStoreUnavailable  storage failure, rolled back  (500)

# Reading

Reader.Aggregate is the read-only path used by listings:

	result, err := votes.NewReader(store).Aggregate(ctx, playlistID, callerID)

The score is always a fresh SUM; nothing is cached.
*/
package votes
