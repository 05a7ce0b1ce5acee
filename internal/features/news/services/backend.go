package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"globe-news/internal/core"
	"globe-news/internal/features/news/models"
)

// BackendClient talks to the news backend API. Every operation recovers
// transport failures, timeouts and non-2xx responses into a typed empty
// default so callers only ever branch on "did I get usable data".
type BackendClient struct {
	baseURL        string
	apiVersion     string
	client         *http.Client
	logger         *core.Logger
	readTimeout    time.Duration
	previewTimeout time.Duration
	healthTimeout  time.Duration
}

// NewBackendClient creates a new backend API client
func NewBackendClient(logger *core.Logger, config core.BackendConfig) *BackendClient {
	return &BackendClient{
		baseURL:        config.URL,
		apiVersion:     config.APIVersion,
		client:         &http.Client{},
		logger:         logger,
		readTimeout:    config.ReadTimeout,
		previewTimeout: config.PreviewTimeout,
		healthTimeout:  config.HealthTimeout,
	}
}

// ListParams filters an article listing. Zero values are omitted from the
// query string; a language of "all" means no language filter.
type ListParams struct {
	Limit    int
	Skip     int
	Language string
	Category string
	Search   string
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Skip > 0 {
		q.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Language != "" && p.Language != "all" {
		q.Set("language", p.Language)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q
}

// ListArticles fetches a filtered article listing
func (c *BackendClient) ListArticles(ctx context.Context, params ListParams) models.ArticleList {
	var list models.ArticleList
	if err := c.do(ctx, http.MethodGet, "/articles", params.values(), c.readTimeout, &list); err != nil {
		c.logger.Error("Failed to fetch articles", "error", err)
		return models.ArticleList{}
	}
	return list
}

// GetArticle fetches a single article by id, nil when unavailable
func (c *BackendClient) GetArticle(ctx context.Context, id int) *models.Article {
	var article models.Article
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/articles/%d", id), nil, c.readTimeout, &article); err != nil {
		c.logger.Error("Failed to fetch article", "article_id", id, "error", err)
		return nil
	}
	return &article
}

// ListCategories fetches the category list
func (c *BackendClient) ListCategories(ctx context.Context) []models.Category {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, c.readTimeout, &categories); err != nil {
		c.logger.Error("Failed to fetch categories", "error", err)
		return []models.Category{}
	}
	return categories
}

// ListBreaking fetches the breaking news listing
func (c *BackendClient) ListBreaking(ctx context.Context, limit int) []models.Article {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var list models.ArticleList
	if err := c.do(ctx, http.MethodGet, "/articles/breaking/", q, c.readTimeout, &list); err != nil {
		c.logger.Error("Failed to fetch breaking articles", "error", err)
		return []models.Article{}
	}
	return list.Articles
}

// GetPreview fetches the content preview for an article, nil when unavailable
func (c *BackendClient) GetPreview(ctx context.Context, articleID int) *models.Preview {
	var preview models.Preview
	path := fmt.Sprintf("/preview/articles/%d", articleID)
	if err := c.do(ctx, http.MethodGet, path, nil, c.previewTimeout, &preview); err != nil {
		c.logger.Error("Failed to fetch preview", "article_id", articleID, "error", err)
		return nil
	}
	return &preview
}

// GeneratePreview asks the backend to generate a new preview for an article
func (c *BackendClient) GeneratePreview(ctx context.Context, articleID int) *models.GenerateResult {
	var result models.GenerateResult
	path := fmt.Sprintf("/preview/articles/%d/generate", articleID)
	if err := c.do(ctx, http.MethodPost, path, nil, c.previewTimeout, &result); err != nil {
		c.logger.Error("Failed to generate preview", "article_id", articleID, "error", err)
		return nil
	}
	return &result
}

// TriggerFetch asks the backend to run a fetch cycle now
func (c *BackendClient) TriggerFetch(ctx context.Context) map[string]any {
	result := map[string]any{}
	if err := c.do(ctx, http.MethodPost, "/fetcher/fetch-now", nil, c.readTimeout, &result); err != nil {
		c.logger.Error("Failed to trigger fetch", "error", err)
		return map[string]any{"message": "Error triggering fetch"}
	}
	return result
}

// GetStats fetches aggregate fetcher statistics
func (c *BackendClient) GetStats(ctx context.Context) map[string]any {
	stats := map[string]any{}
	if err := c.do(ctx, http.MethodGet, "/fetcher/stats", nil, c.readTimeout, &stats); err != nil {
		c.logger.Error("Failed to fetch stats", "error", err)
		return map[string]any{}
	}
	return stats
}

// GetHealth fetches the backend health status
func (c *BackendClient) GetHealth(ctx context.Context) map[string]any {
	status := map[string]any{}
	if err := c.do(ctx, http.MethodGet, "/health/status", nil, c.healthTimeout, &status); err != nil {
		c.logger.Error("Failed to fetch backend health", "error", err)
		return map[string]any{"status": "unreachable"}
	}
	return status
}

// do performs a single backend request and decodes the JSON response.
// The timeout is applied per call on top of the caller's context.
func (c *BackendClient) do(ctx context.Context, method, path string, query url.Values, timeout time.Duration, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/api/%s%s", c.baseURL, c.apiVersion, path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
