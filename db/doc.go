// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections, schema creation, and driver error
classification.

# Connecting

Open supports PostgreSQL (github.com/lib/pq) and SQLite
(modernc.org/sqlite):

	conn, err := db.Open(ctx, db.TypeSQLite, "playlisthub.db")

SQLite connections get foreign keys enabled and are limited to a single
open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same statements run on both backends.

# Tables

  - app_user: accounts (username unique)
  - playlist: title, genre, newline-joined songs, owner
  - vote: one +1/-1 per (user_id, playlist_id), UNIQUE enforced
  - comment: comments on playlists

# Relationships

	app_user 1──* playlist
	app_user 1──* vote *──1 playlist
	app_user 1──* comment *──1 playlist

All foreign keys use ON DELETE CASCADE.

# Unique Violations

IsUniqueViolation recognises Postgres SQLSTATE 23505 and SQLite's
extended UNIQUE / PRIMARY KEY constraint codes:

	if db.IsUniqueViolation(err) {
		// someone else inserted first
	}
*/
package db
