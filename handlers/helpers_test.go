// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/suchithgali/playlisthub/middleware"
)

// asCaller attaches an authenticated caller the way WithSession would
func asCaller(req *http.Request, userID, username string) *http.Request {
	if userID == "" {
		return req
	}
	return req.WithContext(middleware.WithCaller(req.Context(), middleware.Caller{UserID: userID, Username: username}))
}
