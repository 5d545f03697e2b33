package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/feedline/internal/domain"
	"github.com/drake/feedline/internal/log"
)

func testStories() []domain.Story {
	return []domain.Story{
		{ID: 101, Title: "Go 1.25 released", By: "pg", Score: 512, Comments: 230},
		{ID: 102, Title: "Show HN: a terminal feed reader", By: "dang", Score: 87, Comments: 34},
	}
}

func TestStoryRoundTrip(t *testing.T) {
	s, err := NewStoryStore(t.TempDir(), log.NullLogger())
	require.NoError(t, err)
	defer s.Close()

	s.PutStories(testStories())

	got, ok := s.GetStory(101)
	require.True(t, ok)
	assert.Equal(t, "Go 1.25 released", got.Title)
	assert.Equal(t, 512, got.Score)

	_, ok = s.GetStory(999)
	assert.False(t, ok)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStoryStore(dir, log.NullLogger())
	require.NoError(t, err)
	s.PutStories(testStories())
	s.PutTopIDs([]int64{101, 102})
	require.NoError(t, s.Close())

	s, err = NewStoryStore(dir, log.NullLogger())
	require.NoError(t, err)
	defer s.Close()

	got, ok := s.GetStory(102)
	require.True(t, ok)
	assert.Equal(t, "dang", got.By)

	ids, ok := s.GetTopIDs()
	require.True(t, ok)
	assert.Equal(t, []int64{101, 102}, ids)
}

func TestMemoryOnlyMode(t *testing.T) {
	s, err := NewStoryStore("", log.NullLogger())
	require.NoError(t, err)
	defer s.Close()

	s.PutStories(testStories())
	got, ok := s.GetStory(101)
	require.True(t, ok)
	assert.Equal(t, "Go 1.25 released", got.Title)
}

func TestTopIDsExpire(t *testing.T) {
	s, err := NewStoryStore("", log.NullLogger())
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.GetTopIDs()
	assert.False(t, ok, "empty store should miss")

	// Write an already-expired record directly
	s.put(bucketMeta, keyTopIDs, topIDsRecord{
		IDs:     []int64{1, 2, 3},
		SavedAt: time.Now().Add(-2 * topIDsTTL).Unix(),
	})
	_, ok = s.GetTopIDs()
	assert.False(t, ok, "expired snapshot should miss")

	s.PutTopIDs([]int64{1, 2, 3})
	ids, ok := s.GetTopIDs()
	require.True(t, ok)
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestClear(t *testing.T) {
	s, err := NewStoryStore(t.TempDir(), log.NullLogger())
	require.NoError(t, err)
	defer s.Close()

	s.PutStories(testStories())
	s.PutTopIDs([]int64{101, 102})

	require.NoError(t, s.Clear())

	_, ok := s.GetStory(101)
	assert.False(t, ok)
	_, ok = s.GetTopIDs()
	assert.False(t, ok)
}

func TestEncodeDecode(t *testing.T) {
	story := domain.Story{ID: 7, Title: "round trip", Score: 42}

	data, err := encode(story)
	require.NoError(t, err)

	var got domain.Story
	require.NoError(t, decode(data, &got))
	assert.Equal(t, story, got)
}
