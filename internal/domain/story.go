package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Story is one Hacker News story as shown in the feed.
type Story struct {
	ID       int64  // HN item id
	Rank     int    // Position in the current top-stories snapshot
	Title    string // Display title
	By       string // Submitter username
	URL      string // External link ("" for self posts)
	Score    int    // Upvote count
	Comments int    // Descendant comment count
	Time     int64  // Unix timestamp of submission
}

// Key returns the stable identity string used for list diffing.
func (s Story) Key() string {
	return fmt.Sprintf("story:%d", s.ID)
}

// Domain returns the link's host without a leading "www.", or "" for self
// posts.
func (s Story) Domain() string {
	if s.URL == "" {
		return ""
	}
	u, err := url.Parse(s.URL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// DiscussionURL returns the HN comments page for the story.
func (s Story) DiscussionURL() string {
	return fmt.Sprintf("https://news.ycombinator.com/item?id=%d", s.ID)
}

// Age returns a compact human-readable age like "3h" or "2d".
func (s Story) Age() string {
	d := time.Since(time.Unix(s.Time, 0))
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours())/24)
	}
}
