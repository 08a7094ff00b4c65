// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadEnv optionally reads a .env file, then ParseFlags returns a Config:

	if err := cliparse.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type (sqlite or postgres)
	-session-secret Session signing secret
	-session-ttl    Session token lifetime
	-vote-policy    toggle or idempotent
	-log-level      debug, info, warn or error

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	SESSION_SECRET → -session-secret
	SESSION_TTL    → -session-ttl
	VOTE_POLICY    → -vote-policy
	LOG_LEVEL      → -log-level

CLI flags take precedence over environment variables, and variables
already in the environment take precedence over .env.

# Validation

ParseFlags returns an error if:

  - SESSION_SECRET is missing
  - DATABASE_TYPE is not sqlite or postgres
  - DATABASE_URL is missing for postgres
  - PORT, SESSION_TTL, VOTE_POLICY or LOG_LEVEL cannot be parsed
*/
package cliparse
