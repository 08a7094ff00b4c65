// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votes

import "errors"

var (
	// ErrUnauthenticated means no caller identity was supplied.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidArgument means the vote value was not +1 or -1.
	ErrInvalidArgument = errors.New("vote value must be 1 or -1")
	// ErrNotFound means the playlist does not exist.
	ErrNotFound = errors.New("playlist not found")
	// ErrConflictRetryable means another request inserted the same
	// (user, playlist) vote first. CastVote resolves it by retrying.
	ErrConflictRetryable = errors.New("vote already exists")
	// ErrStoreUnavailable wraps any storage failure. The transaction
	// has been rolled back when it is returned.
	ErrStoreUnavailable = errors.New("vote store unavailable")
)
