// Package repo implements sqlx-backed storage for users, listings, and
// conversation states. Each method is a single statement; callers rely on
// statement-level atomicity instead of explicit transactions.
package repo

import "errors"

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("repo: not found")
