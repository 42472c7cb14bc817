package spiget

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"plugseek.dev/cli/internal/infrastructure/cache"
)

// DefaultBaseURL is the public Spiget API endpoint
const DefaultBaseURL = "https://api.spiget.org/v2"

// searchFields trims search responses to the fields the adapter consumes
const searchFields = "id,name,tag,downloads,testedVersions,author,category,version"

// Config holds the client's connection settings
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration // 0 = 30s
}

// Client talks to the Spiget REST API. Every response is memoized in the
// shared TTL cache under a spiget-prefixed key, so repeated identical
// requests within the TTL never reach the network.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	store     *cache.Cache[[]byte]
	logger    *slog.Logger
}

// NewClient creates a Spiget API client backed by the shared response cache
func NewClient(config Config, store *cache.Cache[[]byte], logger *slog.Logger) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:   baseURL,
		userAgent: config.UserAgent,
		client:    &http.Client{Timeout: timeout},
		store:     store,
		logger:    logger,
	}
}

// SearchResources runs a free-text resource search. A search with no hits
// is an empty list, not an error (Spiget answers those with 404).
func (c *Client) SearchResources(ctx context.Context, query string, limit int) ([]Resource, error) {
	path := fmt.Sprintf("/search/resources/%s?size=%d&fields=%s",
		url.PathEscape(query), limit, url.QueryEscape(searchFields))

	body, err := c.get(ctx, path, "[]")
	if err != nil {
		return nil, err
	}

	var resources []Resource
	if err := json.Unmarshal(body, &resources); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return resources, nil
}

// GetResource fetches one resource by id; unknown ids yield (nil, nil)
func (c *Client) GetResource(ctx context.Context, id string) (*Resource, error) {
	body, err := c.get(ctx, "/resources/"+url.PathEscape(id), "null")
	if err != nil {
		return nil, err
	}

	var resource *Resource
	if err := json.Unmarshal(body, &resource); err != nil {
		return nil, fmt.Errorf("failed to decode resource response: %w", err)
	}
	return resource, nil
}

// GetLatestVersion fetches a resource's newest version entry; resources
// without versions yield (nil, nil)
func (c *Client) GetLatestVersion(ctx context.Context, id string) (*Version, error) {
	body, err := c.get(ctx, "/resources/"+url.PathEscape(id)+"/versions/latest", "null")
	if err != nil {
		return nil, err
	}

	var version *Version
	if err := json.Unmarshal(body, &version); err != nil {
		return nil, fmt.Errorf("failed to decode version response: %w", err)
	}
	return version, nil
}

// GetAuthor resolves an author reference to its profile; unknown ids yield
// (nil, nil)
func (c *Client) GetAuthor(ctx context.Context, id int) (*Author, error) {
	body, err := c.get(ctx, fmt.Sprintf("/authors/%d", id), "null")
	if err != nil {
		return nil, err
	}

	var author *Author
	if err := json.Unmarshal(body, &author); err != nil {
		return nil, fmt.Errorf("failed to decode author response: %w", err)
	}
	return author, nil
}

// GetCategory resolves a category reference; unknown ids yield (nil, nil)
func (c *Client) GetCategory(ctx context.Context, id int) (*Category, error) {
	body, err := c.get(ctx, fmt.Sprintf("/categories/%d", id), "null")
	if err != nil {
		return nil, err
	}

	var category *Category
	if err := json.Unmarshal(body, &category); err != nil {
		return nil, fmt.Errorf("failed to decode category response: %w", err)
	}
	return category, nil
}

// get issues a cached GET. notFoundBody is the JSON substituted for a 404,
// which Spiget uses both for unknown ids and for searches with no hits.
func (c *Client) get(ctx context.Context, path string, notFoundBody string) ([]byte, error) {
	return c.store.GetOrCompute(ctx, "spiget:"+path, func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		c.logger.Debug("spiget request", "path", path)

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return []byte(notFoundBody), nil
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return nil, fmt.Errorf("spiget API error %d: %s", resp.StatusCode, string(body))
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		return body, nil
	})
}
