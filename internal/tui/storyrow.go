package tui

import (
	"fmt"

	"github.com/drake/feedline/internal/domain"
	"github.com/drake/feedline/internal/list"
	"github.com/drake/feedline/internal/tui/styles"
)

// StoryViewType is the single view type used for content rows.
const StoryViewType list.ViewType = 0

// StoryDelegate renders story rows for the feed's SliceAdapter.
type StoryDelegate struct{}

func (StoryDelegate) ViewType(domain.Story) list.ViewType {
	return StoryViewType
}

func (StoryDelegate) CreateHolder(viewType list.ViewType) list.Holder {
	return &StoryHolder{}
}

func (StoryDelegate) Bind(holder list.Holder, story domain.Story) {
	holder.(*StoryHolder).story = story
}

func (StoryDelegate) SearchText(story domain.Story) string {
	return story.Title
}

// StoryHolder renders one story line: rank, title, and dim metadata.
type StoryHolder struct {
	story domain.Story
}

func (h *StoryHolder) View(width int, selected bool) string {
	s := h.story

	rank := fmt.Sprintf("%3d.", s.Rank)
	meta := fmt.Sprintf("  %d pts · %dc · %s", s.Score, s.Comments, s.Age())
	if d := s.Domain(); d != "" {
		meta += " · " + d
	}

	// Available space: width - rank - meta - margins(2) - space(1)
	availableForTitle := width - len(rank) - len(meta) - 3
	if availableForTitle < 10 {
		availableForTitle = 10
		meta = ""
	}
	title := styles.Truncate(s.Title, availableForTitle)

	orange := styles.HNOrange
	dim := styles.DimGray
	parts := []styles.RowPart{
		{Text: rank, Foreground: &orange},
		{Text: " " + title, Foreground: nil},
		{Text: meta, Foreground: &dim},
	}

	return styles.RenderListRow(parts, selected, width)
}
