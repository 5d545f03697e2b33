package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/feedline/internal/domain"
	"github.com/drake/feedline/internal/log"
)

// memCache is an in-memory StoryCache for tests.
type memCache struct {
	stories map[int64]domain.Story
	topIDs  []int64
	hasIDs  bool
}

func newMemCache() *memCache {
	return &memCache{stories: make(map[int64]domain.Story)}
}

func (c *memCache) GetStory(id int64) (domain.Story, bool) {
	s, ok := c.stories[id]
	return s, ok
}

func (c *memCache) PutStories(stories []domain.Story) {
	for _, s := range stories {
		c.stories[s.ID] = s
	}
}

func (c *memCache) GetTopIDs() ([]int64, bool) { return c.topIDs, c.hasIDs }

func (c *memCache) PutTopIDs(ids []int64) {
	c.topIDs = ids
	c.hasIDs = true
}

func serveIDs(t *testing.T, n int) *Client {
	t.Helper()
	ids := make([]int64, n)
	items := make(map[int64]string, n)
	for i := range ids {
		id := int64(i + 1)
		ids[i] = id
		items[id] = storyJSON(id, titleFor(id), int(id)*10)
	}
	srv := fakeFeed(t, ids, items)
	return NewClient(srv.URL, log.NullLogger())
}

func titleFor(id int64) string {
	titles := []string{
		"Rewriting the kernel scheduler",
		"Ask HN: favorite terminal tools",
		"Postgres at scale",
		"The history of Unix pipes",
		"Show HN: my static site generator",
	}
	return titles[int(id-1)%len(titles)]
}

func TestRefreshLoadsFirstPage(t *testing.T) {
	client := serveIDs(t, 7)
	svc := NewService(client, newMemCache(), 3, log.NullLogger())

	page, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, page, 3)

	assert.Equal(t, int64(1), page[0].ID)
	assert.Equal(t, 1, page[0].Rank)
	assert.Equal(t, 3, page[2].Rank)
	assert.True(t, svc.HasMore())
}

func TestLoadMorePaginates(t *testing.T) {
	client := serveIDs(t, 7)
	svc := NewService(client, newMemCache(), 3, log.NullLogger())

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	page2, err := svc.LoadMore(context.Background())
	require.NoError(t, err)
	require.Len(t, page2, 3)
	assert.Equal(t, int64(4), page2[0].ID)
	assert.Equal(t, 4, page2[0].Rank)

	page3, err := svc.LoadMore(context.Background())
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, 7, page3[0].Rank)
	assert.False(t, svc.HasMore())

	// Exhausted snapshot yields nothing
	page4, err := svc.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Empty(t, page4)

	assert.Len(t, svc.Stories(), 7)
}

func TestRefreshFallsBackToCachedSnapshot(t *testing.T) {
	cache := newMemCache()
	cache.PutTopIDs([]int64{1, 2})
	cache.PutStories([]domain.Story{
		{ID: 1, Title: "cached one"},
		{ID: 2, Title: "cached two"},
	})

	// Nothing listens here
	client := NewClient("http://127.0.0.1:1", log.NullLogger())
	svc := NewService(client, cache, 30, log.NullLogger())

	page, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "cached one", page[0].Title)
}

func TestRefreshFailsWithoutCache(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", log.NullLogger())
	svc := NewService(client, nil, 30, log.NullLogger())

	_, err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, domain.ErrFeedUnavailable)
}

func TestHydrateReadsThroughCache(t *testing.T) {
	client := serveIDs(t, 3)
	cache := newMemCache()
	cache.PutStories([]domain.Story{{ID: 2, Title: "from cache", By: "cached"}})
	svc := NewService(client, cache, 3, log.NullLogger())

	page, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, page, 3)

	assert.Equal(t, "from cache", page[1].Title)

	// The misses were written back
	_, ok := cache.GetStory(1)
	assert.True(t, ok)
	_, ok = cache.GetStory(3)
	assert.True(t, ok)
}

func TestCheckNewCountsUnknownIDs(t *testing.T) {
	client := serveIDs(t, 5)
	svc := NewService(client, nil, 30, log.NullLogger())

	// Before any refresh the whole feed is new
	count, err := svc.CheckNew(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	_, err = svc.Refresh(context.Background())
	require.NoError(t, err)

	count, err = svc.CheckNew(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSearchRanksByTitle(t *testing.T) {
	client := serveIDs(t, 5)
	svc := NewService(client, nil, 30, log.NullLogger())

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	results := svc.Search("postgres")
	require.NotEmpty(t, results)
	assert.Equal(t, "Postgres at scale", results[0].Title)

	assert.Nil(t, svc.Search(""))
	assert.Empty(t, svc.Search("zzzzzzzz"))
}
