// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the playlisthub API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - UserHandler: Signup, login, profile and account deletion
  - PlaylistHandler: Browse, create and edit playlists
  - VotingHandler: Up/down votes on playlists
  - CommentHandler: Playlist comments

Handlers are created via constructor functions that accept *sql.DB and,
where they need settings, the Config:

	playlistHandler := handlers.NewPlaylistHandler(db)
	votingHandler := handlers.NewVotingHandler(db, cfg)

# Identity

The caller is read from the request context (see middleware.WithSession).
Handlers never take a user ID from the request body. UserHandler.UserExists
backs the session middleware's check that a token's account still exists.

# Voting

VotingHandler delegates to votes.Service and maps its errors:

	votes.ErrUnauthenticated → 401
	votes.ErrInvalidArgument → 400
	votes.ErrNotFound        → 404
	anything else            → 500

A successful vote returns {"vote_count": n, "caller_vote": v}.

# Ownership

Only a playlist's owner may delete it or change its songs, and only a
comment's author may edit or delete it. Others get 403.
*/
package handlers
