package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/drake/feedline/internal/domain"
)

const (
	// DefaultBaseURL is the public Hacker News Firebase API.
	DefaultBaseURL = "https://hacker-news.firebaseio.com"

	defaultTimeout = 30 * time.Second
	userAgent      = "feedline/1.0"

	// Parallel item fetches per page request.
	fetchConcurrency = 8
)

// Client fetches stories from the Hacker News API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a feed client. An empty baseURL selects the public API.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// TopIDs returns the current top-stories id list, best first.
func (c *Client) TopIDs(ctx context.Context) ([]int64, error) {
	body, err := c.doRequest(ctx, "/v0/topstories.json")
	if err != nil {
		return nil, err
	}

	var ids []int64
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse top stories: %w", err)
	}
	return ids, nil
}

// storyDTO is the wire shape of /v0/item/{id}.json.
type storyDTO struct {
	ID          int64  `json:"id"`
	By          string `json:"by"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Time        int64  `json:"time"`
	Type        string `json:"type"`
	Deleted     bool   `json:"deleted"`
	Dead        bool   `json:"dead"`
}

// Story fetches a single story by id.
func (c *Client) Story(ctx context.Context, id int64) (domain.Story, error) {
	body, err := c.doRequest(ctx, fmt.Sprintf("/v0/item/%d.json", id))
	if err != nil {
		return domain.Story{}, err
	}

	// The API answers "null" for unknown ids.
	if len(body) == 0 || string(body) == "null" {
		return domain.Story{}, domain.ErrStoryNotFound
	}

	var dto storyDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return domain.Story{}, fmt.Errorf("failed to parse story %d: %w", id, err)
	}
	if dto.Deleted || dto.Dead {
		return domain.Story{}, domain.ErrStoryNotFound
	}

	return domain.Story{
		ID:       dto.ID,
		Title:    dto.Title,
		By:       dto.By,
		URL:      dto.URL,
		Score:    dto.Score,
		Comments: dto.Descendants,
		Time:     dto.Time,
	}, nil
}

// Stories fetches the given ids with bounded concurrency, preserving order.
// Missing or dead items are skipped rather than failing the page.
func (c *Client) Stories(ctx context.Context, ids []int64) ([]domain.Story, error) {
	type result struct {
		idx   int
		story domain.Story
		err   error
	}

	sem := make(chan struct{}, fetchConcurrency)
	results := make(chan result, len(ids))

	for i, id := range ids {
		go func(idx int, id int64) {
			sem <- struct{}{}
			defer func() { <-sem }()

			story, err := c.Story(ctx, id)
			results <- result{idx: idx, story: story, err: err}
		}(i, id)
	}

	fetched := make([]*domain.Story, len(ids))
	for range ids {
		res := <-results
		switch {
		case res.err == nil:
			story := res.story
			fetched[res.idx] = &story
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			c.logger.Warn("skipping story", "id", ids[res.idx], "error", res.err)
		}
	}

	stories := make([]domain.Story, 0, len(ids))
	for _, s := range fetched {
		if s != nil {
			stories = append(stories, *s)
		}
	}
	return stories, nil
}

// doRequest performs a GET against the API and returns the body.
func (c *Client) doRequest(ctx context.Context, path string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("feed request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("feed request failed", "error", err)
		return nil, domain.ErrFeedUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("feed request error", "status", resp.StatusCode)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}
