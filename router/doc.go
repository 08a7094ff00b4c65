// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the playlisthub API.

# Route Registration

NewRouter returns the mux wrapped in CORS, request ID and session
middleware:

	handler := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Accounts:

	POST   /signup - Create account
	POST   /login  - Issue a session token
	GET    /me     - Account and own playlists (session)
	DELETE /me     - Delete account and everything it owns (session)

Playlists:

	GET    /genres                         - Allowed genres
	GET    /playlists?genre=&search=       - Browse
	POST   /playlists                      - Create (session)
	GET    /playlists/{id}                 - Detail with vote count
	DELETE /playlists/{id}                 - Delete (owner)
	POST   /playlists/{id}/songs           - Append a song (owner)
	DELETE /playlists/{id}/songs/{index}   - Remove a song (owner)

Voting:

	POST /playlists/{id}/vote - Body {"value": 1 | -1}
	POST /vote/{id}/{value}   - Same, value in the path

Comments:

	GET    /playlists/{id}/comments - Oldest first
	POST   /playlists/{id}/comments - Add (session)
	PUT    /comments/{id}           - Edit (author)
	DELETE /comments/{id}           - Delete (author)

Sessions are passed as "Authorization: Bearer <token>".
*/
package router
