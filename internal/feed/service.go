package feed

import (
	"context"
	"log/slog"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/drake/feedline/internal/domain"
)

// StoryCache is the persistence surface the service reads through. All
// methods are best-effort: a cache miss or write failure never fails a
// feed operation.
type StoryCache interface {
	GetStory(id int64) (domain.Story, bool)
	PutStories(stories []domain.Story)
	GetTopIDs() ([]int64, bool)
	PutTopIDs(ids []int64)
}

// Service paginates the top-stories feed: it holds one id snapshot, hands
// out pages of hydrated stories, and detects ids that arrived above the
// snapshot since the last refresh.
type Service struct {
	client   *Client
	cache    StoryCache // may be nil
	logger   *slog.Logger
	pageSize int

	ids    []int64 // current snapshot, best first
	cursor int     // ids consumed into pages so far
	loaded []domain.Story
}

// NewService creates a feed service over client. cache may be nil for a
// memory-only session.
func NewService(client *Client, cache StoryCache, pageSize int, logger *slog.Logger) *Service {
	if pageSize <= 0 {
		pageSize = 30
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:   client,
		cache:    cache,
		logger:   logger,
		pageSize: pageSize,
	}
}

// Refresh takes a fresh id snapshot and returns the first page. When the
// feed is unreachable it falls back to the cached snapshot, if any.
func (s *Service) Refresh(ctx context.Context) ([]domain.Story, error) {
	ids, err := s.client.TopIDs(ctx)
	if err != nil {
		cached, ok := s.cachedIDs()
		if !ok {
			return nil, err
		}
		s.logger.Warn("refresh failed, using cached snapshot", "error", err)
		ids = cached
	} else if s.cache != nil {
		s.cache.PutTopIDs(ids)
	}

	s.ids = ids
	s.cursor = 0
	s.loaded = nil

	return s.LoadMore(ctx)
}

// LoadMore hydrates the next page of the current snapshot. It returns nil
// when the snapshot is exhausted.
func (s *Service) LoadMore(ctx context.Context) ([]domain.Story, error) {
	if !s.HasMore() {
		return nil, nil
	}

	end := s.cursor + s.pageSize
	if end > len(s.ids) {
		end = len(s.ids)
	}
	pageIDs := s.ids[s.cursor:end]

	page, err := s.hydrate(ctx, pageIDs)
	if err != nil {
		return nil, err
	}

	for i := range page {
		page[i].Rank = len(s.loaded) + i + 1
	}
	s.cursor = end
	s.loaded = append(s.loaded, page...)

	s.logger.Debug("page loaded", "count", len(page), "cursor", s.cursor, "total", len(s.ids))
	return page, nil
}

// HasMore reports whether the current snapshot has unloaded ids.
func (s *Service) HasMore() bool {
	return s.cursor < len(s.ids)
}

// Stories returns everything loaded from the current snapshot.
func (s *Service) Stories() []domain.Story {
	return s.loaded
}

// CheckNew counts ids present in a fresh snapshot but not in the current
// one. A later Refresh adopts them.
func (s *Service) CheckNew(ctx context.Context) (int, error) {
	fresh, err := s.client.TopIDs(ctx)
	if err != nil {
		return 0, err
	}

	known := make(map[int64]struct{}, len(s.ids))
	for _, id := range s.ids {
		known[id] = struct{}{}
	}

	count := 0
	for _, id := range fresh {
		if _, ok := known[id]; !ok {
			count++
		}
	}
	return count, nil
}

// Search ranks loaded stories against query by title.
func (s *Service) Search(query string) []domain.Story {
	if query == "" {
		return nil
	}

	titles := make([]string, len(s.loaded))
	for i, story := range s.loaded {
		titles[i] = story.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Sort(ranks)

	results := make([]domain.Story, 0, len(ranks))
	for _, rank := range ranks {
		results = append(results, s.loaded[rank.OriginalIndex])
	}
	return results
}

// hydrate resolves ids through the cache and fetches the misses.
func (s *Service) hydrate(ctx context.Context, ids []int64) ([]domain.Story, error) {
	byID := make(map[int64]domain.Story, len(ids))

	var missing []int64
	for _, id := range ids {
		if s.cache != nil {
			if story, ok := s.cache.GetStory(id); ok {
				byID[id] = story
				continue
			}
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		fetched, err := s.client.Stories(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, story := range fetched {
			byID[story.ID] = story
		}
		if s.cache != nil {
			s.cache.PutStories(fetched)
		}
	}

	stories := make([]domain.Story, 0, len(ids))
	for _, id := range ids {
		if story, ok := byID[id]; ok {
			stories = append(stories, story)
		}
	}
	return stories, nil
}

func (s *Service) cachedIDs() ([]int64, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.GetTopIDs()
}
