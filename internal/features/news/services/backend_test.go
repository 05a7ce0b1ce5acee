package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"globe-news/internal/core"
)

func testBackendConfig(url string) core.BackendConfig {
	return core.BackendConfig{
		URL:            url,
		APIVersion:     "v1",
		ReadTimeout:    5 * time.Second,
		PreviewTimeout: 5 * time.Second,
		HealthTimeout:  2 * time.Second,
	}
}

func TestListArticlesQueryParams(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"articles": []map[string]any{{"id": 1, "title": "Hello"}},
			"total":    1,
		})
	}))
	defer ts.Close()

	client := NewBackendClient(core.NewLogger(), testBackendConfig(ts.URL))
	list := client.ListArticles(context.Background(), ListParams{
		Limit:    20,
		Skip:     40,
		Language: "en",
		Category: "World",
		Search:   "election",
	})

	if gotPath != "/api/v1/articles" {
		t.Errorf("Expected path /api/v1/articles, got %s", gotPath)
	}
	want := map[string]string{"limit": "20", "skip": "40", "language": "en", "category": "World", "search": "election"}
	for key, value := range want {
		if gotQuery[key] != value {
			t.Errorf("Expected query %s=%s, got %s", key, value, gotQuery[key])
		}
	}

	if len(list.Articles) != 1 || list.Total != 1 {
		t.Errorf("Expected one article with total 1, got %+v", list)
	}
}

func TestListArticlesOmitsAllLanguage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("language") {
			t.Errorf("Expected no language param for 'all', got %s", r.URL.Query().Get("language"))
		}
		json.NewEncoder(w).Encode(map[string]any{"articles": []any{}, "total": 0})
	}))
	defer ts.Close()

	client := NewBackendClient(core.NewLogger(), testBackendConfig(ts.URL))
	client.ListArticles(context.Background(), ListParams{Limit: 1, Language: "all"})
}

func TestListArticlesFallbackOnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewBackendClient(core.NewLogger(), testBackendConfig(ts.URL))
	list := client.ListArticles(context.Background(), ListParams{Limit: 24})

	if len(list.Articles) != 0 || list.Total != 0 {
		t.Errorf("Expected empty fallback on backend error, got %+v", list)
	}
}

func TestGetArticleNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	client := NewBackendClient(core.NewLogger(), testBackendConfig(ts.URL))
	if article := client.GetArticle(context.Background(), 42); article != nil {
		t.Errorf("Expected nil article on 404, got %+v", article)
	}
}

func TestListBreakingEndpoint(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/articles/breaking/" {
			t.Errorf("Expected breaking path, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "10" {
			t.Errorf("Expected limit 10, got %s", r.URL.Query().Get("limit"))
		}
		json.NewEncoder(w).Encode(map[string]any{
			"articles": []map[string]any{{"id": 7, "title": "Urgent"}},
		})
	}))
	defer ts.Close()

	client := NewBackendClient(core.NewLogger(), testBackendConfig(ts.URL))
	articles := client.ListBreaking(context.Background(), 10)

	if len(articles) != 1 || articles[0].Title != "Urgent" {
		t.Errorf("Expected one breaking article, got %+v", articles)
	}
}

func TestGeneratePreviewUsesPost(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/preview/articles/9/generate" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer ts.Close()

	client := NewBackendClient(core.NewLogger(), testBackendConfig(ts.URL))
	result := client.GeneratePreview(context.Background(), 9)

	if result == nil || !result.Success {
		t.Errorf("Expected successful generate result, got %+v", result)
	}
}

func TestGetPreview(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"article_id":  9,
			"has_preview": true,
			"preview":     "<p>generated</p>",
		})
	}))
	defer ts.Close()

	client := NewBackendClient(core.NewLogger(), testBackendConfig(ts.URL))
	preview := client.GetPreview(context.Background(), 9)

	if preview == nil || !preview.HasPreview || preview.Preview != "<p>generated</p>" {
		t.Errorf("Expected preview with content, got %+v", preview)
	}
}

func TestGetHealthUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused from here on

	client := NewBackendClient(core.NewLogger(), testBackendConfig(ts.URL))
	status := client.GetHealth(context.Background())

	if status["status"] != "unreachable" {
		t.Errorf("Expected unreachable status, got %+v", status)
	}
}
