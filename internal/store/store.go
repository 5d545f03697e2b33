// Package store persists fetched stories between sessions so the feed can
// come up instantly when the API is slow or unreachable. Values are JSON
// compressed with s2; story payloads are redundant enough that this
// roughly quarters the database size.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/klauspost/compress/s2"
	bolt "go.etcd.io/bbolt"

	"github.com/drake/feedline/internal/domain"
)

// Bucket names
var (
	bucketStories = []byte("stories")
	bucketMeta    = []byte("meta")
)

const (
	keyTopIDs = "top_ids"

	// Cached id snapshots older than this report a miss.
	topIDsTTL = 24 * time.Hour
)

// topIDsRecord wraps the id snapshot with its save time for TTL checks.
type topIDsRecord struct {
	IDs     []int64 `json:"ids"`
	SavedAt int64   `json:"saved_at"`
}

// StoryStore implements feed.StoryCache using BoltDB, with an in-memory
// hot cache in front. A missing cache dir degrades to memory-only mode.
type StoryStore struct {
	db     *bolt.DB
	logger *slog.Logger

	mu    sync.RWMutex // Protects memory cache
	cache map[string][]byte
}

// NewStoryStore opens (or creates) the story database under cacheDir. An
// empty cacheDir selects memory-only mode.
func NewStoryStore(cacheDir string, logger *slog.Logger) (*StoryStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cacheDir == "" {
		return &StoryStore{cache: make(map[string][]byte), logger: logger}, nil
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(cacheDir, "feedline.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketStories, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &StoryStore{db: db, cache: make(map[string][]byte), logger: logger}, nil
}

func (s *StoryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetStory returns the cached story for id, if present.
func (s *StoryStore) GetStory(id int64) (domain.Story, bool) {
	var story domain.Story
	if !s.get(bucketStories, strconv.FormatInt(id, 10), &story) {
		return domain.Story{}, false
	}
	return story, true
}

// PutStories caches the given stories. Failures are logged, not returned:
// the cache is best-effort by contract.
func (s *StoryStore) PutStories(stories []domain.Story) {
	for _, story := range stories {
		s.put(bucketStories, strconv.FormatInt(story.ID, 10), story)
	}
}

// GetTopIDs returns the cached id snapshot. Snapshots past their TTL
// report a miss.
func (s *StoryStore) GetTopIDs() ([]int64, bool) {
	var rec topIDsRecord
	if !s.get(bucketMeta, keyTopIDs, &rec) {
		return nil, false
	}
	if time.Since(time.Unix(rec.SavedAt, 0)) > topIDsTTL {
		return nil, false
	}
	return rec.IDs, true
}

// PutTopIDs caches a fresh id snapshot.
func (s *StoryStore) PutTopIDs(ids []int64) {
	s.put(bucketMeta, keyTopIDs, topIDsRecord{IDs: ids, SavedAt: time.Now().Unix()})
}

// Clear drops everything: the memory cache and both buckets.
func (s *StoryStore) Clear() error {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketStories, bucketMeta} {
			if err := tx.DeleteBucket(bucket); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Generic helpers ===

func (s *StoryStore) get(bucket []byte, key string, dest any) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return decode(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if data == nil {
		return false
	}

	if err := decode(data, dest); err != nil {
		s.logger.Warn("dropping undecodable cache entry", "key", cacheKey, "error", err)
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()
	return true
}

func (s *StoryStore) put(bucket []byte, key string, value any) {
	data, err := encode(value)
	if err != nil {
		s.logger.Warn("failed to encode cache entry", "key", key, "error", err)
		return
	}

	cacheKey := string(bucket) + ":" + key

	// Update memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return // Memory-only mode
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
	if err != nil {
		s.logger.Warn("failed to persist cache entry", "key", cacheKey, "error", err)
	}
}

func encode(value any) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return s2.Encode(nil, raw), nil
}

func decode(data []byte, dest any) error {
	raw, err := s2.Decode(nil, data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
