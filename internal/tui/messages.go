package tui

import (
	"github.com/drake/feedline/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// RefreshedMsg signals that a refresh completed with the first page
type RefreshedMsg struct {
	Stories []domain.Story
	HasMore bool
}

// RefreshFailedMsg signals that a refresh failed
type RefreshFailedMsg struct {
	Err error
}

// MoreLoadedMsg signals that the next page arrived
type MoreLoadedMsg struct {
	Stories []domain.Story
	HasMore bool
}

// LoadMoreFailedMsg signals that loading the next page failed
type LoadMoreFailedMsg struct {
	Err error
}

// NewStoriesMsg reports how many stories arrived above the current snapshot
type NewStoriesMsg struct {
	Count int
}

// RowActivatedMsg signals that the row at Pos was activated (enter)
type RowActivatedMsg struct {
	Pos int
}

// FilterAcceptedMsg carries the query accepted in the list filter
type FilterAcceptedMsg struct {
	Query string
}

// NearBottomMsg signals that the cursor reached the last few rows
type NearBottomMsg struct{}

// SpinnerTickMsg advances spinner animations
type SpinnerTickMsg struct{}

// PollTickMsg triggers a new-stories check
type PollTickMsg struct{}

// OpenFailedMsg signals that opening a URL in the browser failed
type OpenFailedMsg struct {
	Err error
}
