// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votes

import (
	"fmt"
	"strings"
)

// Policy decides what happens when a caller repeats the vote they
// already have on a playlist.
type Policy string

const (
	// PolicyToggle retracts the vote: +1 on top of +1 deletes the row
	// and the caller's vote becomes 0. This is the default.
	PolicyToggle Policy = "toggle"
	// PolicyIdempotent leaves the existing vote untouched.
	PolicyIdempotent Policy = "idempotent"
)

// ParsePolicy accepts "toggle" or "idempotent" in any case. The empty
// string selects PolicyToggle.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyToggle:
		return PolicyToggle, nil
	case PolicyIdempotent:
		return PolicyIdempotent, nil
	}
	return "", fmt.Errorf("unknown vote policy %q (want toggle or idempotent)", s)
}

func (p Policy) String() string {
	return string(p)
}
