package sentinel

import (
	"errors"
	"fmt"
)

// Sentinel errors for cache and store facts. Stores return them, possibly
// wrapped; the service treats them as misses rather than failures.
//
// Malformed input never maps here; use pkg/domain-errors for that.
var (
	ErrNotFound = errors.New("not found")
	ErrExpired  = errors.New("expired")
)

// ErrExpiredEntry reports an entry that existed but outlived its TTL. It matches
// both ErrNotFound and ErrExpired.
var ErrExpiredEntry = fmt.Errorf("%w: %w", ErrNotFound, ErrExpired)
