// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides passwords, session tokens, and ID generation.

# Passwords

Passwords are stored as bcrypt hashes (golang.org/x/crypto/bcrypt):

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password) // ErrInvalidCredentials on mismatch

# Session Tokens

Session tokens are HS256 JWTs (github.com/golang-jwt/jwt/v5) whose subject
is the user ID:

	sessions := auth.NewSessionManager(secret, 24*time.Hour)
	token, expiresAt, err := sessions.Issue(userID, username)
	claims, err := sessions.Parse(token) // ErrInvalidToken if bad or expired

Tokens are stateless; there is no server-side session store.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
