// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the playlisthub API server.

playlisthub lets users publish playlists by genre, comment on them and
vote them up or down. Each user holds at most one vote per playlist;
repeating a vote retracts it and voting the other way flips it.

# Starting the Server

With no configuration beyond a session secret the server uses a local
SQLite file:

	SESSION_SECRET=dev go run .

Or against PostgreSQL:

	go run . -t postgres -d "postgres://..." -session-secret dev

A .env file in the working directory is loaded first if present.

# Configuration

Required settings:

  - SESSION_SECRET (-session-secret): HMAC key for session tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: playlisthub.db for sqlite)
  - SESSION_TTL (-session-ttl): Token lifetime (default: 24h)
  - VOTE_POLICY (-vote-policy): toggle or idempotent (default: toggle)
  - LOG_LEVEL (-log-level): debug, info, warn or error

# Architecture

  - handlers: HTTP request handlers (users, playlists, voting, comments)
  - votes: Vote state machine, storage and aggregation
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, request IDs, sessions, JSON helpers
  - models: Request/response and domain types
  - auth: IDs, password hashing and session tokens
  - db: Connection setup and schema creation
  - cliparse: Configuration parsing
*/
package main
