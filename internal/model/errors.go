package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player record not found")

	// Chart computation errors
	ErrInvalidInput    = errors.New("invalid birth date or time")
	ErrInvalidLocation = errors.New("no matching location")
	ErrUpstream        = errors.New("upstream service failure")

	// Session errors
	ErrInvalidSession = errors.New("invalid or expired session")
)
