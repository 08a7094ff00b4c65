// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SignupRequest, LoginRequest: username, password
  - CreatePlaylistRequest: title, description, genre, songs
  - AddSongRequest: artist, song_title
  - CastVoteRequest: value (+1 or -1)
  - CommentRequest: body

# Response Types

Types for JSON responses:

  - LoginResponse: token, user_id, username, expires_at
  - VoteResult: vote_count, caller_vote
  - PlaylistSummary / PlaylistDetail: playlist plus its VoteResult
  - ProfileResponse: user and their playlists
  - ErrorResponse: error, message

# Domain Types

  - User: account (password hash never serialized)
  - Playlist: title, genre, newline-joined songs, owner
  - Vote: one user's +1/-1 on one playlist
  - Comment: text left on a playlist

# Songs

Songs are stored as newline-joined "Artist - Title" text:

	list := models.SplitSongs(p.Songs)
	line, ok := models.FormatSong("Daft Punk", "One More Time")

# Genres

The fixed genre list is Genres; CanonicalGenre matches case-insensitively:

	genre, ok := models.CanonicalGenre("hip-hop") // "Hip-Hop", true
*/
package models
