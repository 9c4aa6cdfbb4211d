package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("frame not found")
	ErrInvalidLimit = errors.New("invalid ranking limit")
)
