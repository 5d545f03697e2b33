package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrFeedUnavailable indicates the feed API is unreachable
	ErrFeedUnavailable = errors.New("feed is unreachable")

	// ErrStoryNotFound indicates the requested story does not exist
	ErrStoryNotFound = errors.New("story not found")
)
