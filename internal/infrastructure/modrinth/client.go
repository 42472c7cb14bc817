package modrinth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"plugseek.dev/cli/internal/infrastructure/cache"
)

// DefaultBaseURL is the public Modrinth API endpoint
const DefaultBaseURL = "https://api.modrinth.com/v2"

// pluginFacets narrows searches to server plugins
const pluginFacets = `[["project_type:plugin"]]`

// Config holds the client's connection settings
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration // 0 = 30s
}

// Client talks to the Modrinth REST API. Every response is memoized in the
// shared TTL cache under a modrinth-prefixed key, so repeated identical
// requests within the TTL never reach the network.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	store     *cache.Cache[[]byte]
	logger    *slog.Logger
}

// NewClient creates a Modrinth API client backed by the shared response cache
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

// Search runs a free-text project search limited to server plugins
func (c *Client) Search(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	params := url.Values{
		"query":  {query},
		"limit":  {strconv.Itoa(limit)},
		"facets": {pluginFacets},
	}

	body, err := c.get(ctx, "/search?"+params.Encode(), `{"hits":[]}`)
	if err != nil {
		return nil, err
	}

	var response SearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return &response, nil
}

// GetProject fetches one project by id or slug; unknown ids yield (nil, nil)
func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	body, err := c.get(ctx, "/project/"+url.PathEscape(id), "null")
	if err != nil {
		return nil, err
	}

	var project *Project
	if err := json.Unmarshal(body, &project); err != nil {
		return nil, fmt.Errorf("failed to decode project response: %w", err)
	}
	return project, nil
}

// GetVersions lists a project's release entries, newest first; unknown
// projects yield an empty list
func (c *Client) GetVersions(ctx context.Context, id string) ([]ProjectVersion, error) {
	body, err := c.get(ctx, "/project/"+url.PathEscape(id)+"/version", "[]")
	if err != nil {
		return nil, err
	}

	var versions []ProjectVersion
	if err := json.Unmarshal(body, &versions); err != nil {
		return nil, fmt.Errorf("failed to decode version response: %w", err)
	}
	return versions, nil
}

// get issues a cached GET. notFoundBody is the JSON substituted for a 404.
func (c *Client) get(ctx context.Context, path string, notFoundBody string) ([]byte, error) {
	return c.store.GetOrCompute(ctx, "modrinth:"+path, func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		c.logger.Debug("modrinth request", "path", path)

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
			return nil, fmt.Errorf("modrinth API error %d: %s", resp.StatusCode, string(body))
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		return body, nil
	})
}
