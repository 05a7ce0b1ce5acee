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

func newTestComposer(t *testing.T, handler http.Handler) *Composer {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	logger := core.NewLogger()
	backend := NewBackendClient(logger, core.BackendConfig{
		URL:            ts.URL,
		APIVersion:     "v1",
		ReadTimeout:    5 * time.Second,
		PreviewTimeout: 5 * time.Second,
		HealthTimeout:  2 * time.Second,
	})

	config := core.NewsConfig{
		PageSize:      20,
		HomePageSize:  24,
		BreakingLimit: 10,
		CountWorkers:  4,
		SiteURL:       "http://localhost:5000",
	}

	return NewComposer(logger, backend, config)
}

func writeJSON(w http.ResponseWriter, v any) {
	json.NewEncoder(w).Encode(v)
}

func TestHomeWithZeroCategories(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/articles", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"articles": []any{}, "total": 0})
	})
	mux.HandleFunc("/api/v1/articles/breaking/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"articles": []any{}})
	})
	mux.HandleFunc("/api/v1/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []any{})
	})

	composer := newTestComposer(t, mux)
	page := composer.Home(context.Background(), "all")

	if len(page.Categories) != 0 {
		t.Errorf("Expected no categories, got %d", len(page.Categories))
	}
	if page.TotalArticles != 0 {
		t.Errorf("Expected zero total articles, got %d", page.TotalArticles)
	}
}

func TestHomeCategoryCounts(t *testing.T) {
	totals := map[string]int{"World": 12, "Technology": 7}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/articles", func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		writeJSON(w, map[string]any{"articles": []any{}, "total": totals[category]})
	})
	mux.HandleFunc("/api/v1/articles/breaking/", func(w http.ResponseWriter, r *http.Request) {
		articles := make([]map[string]any, 8)
		for i := range articles {
			articles[i] = map[string]any{"id": i + 1, "title": "Breaking"}
		}
		writeJSON(w, map[string]any{"articles": articles})
	})
	mux.HandleFunc("/api/v1/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{"name": "World"}, {"name": "Technology"}})
	})

	composer := newTestComposer(t, mux)
	page := composer.Home(context.Background(), "all")

	if len(page.Categories) != 2 {
		t.Fatalf("Expected two categories, got %d", len(page.Categories))
	}
	for _, category := range page.Categories {
		if category.ArticleCount != totals[category.Name] {
			t.Errorf("Expected %s count %d, got %d", category.Name, totals[category.Name], category.ArticleCount)
		}
	}

	// The homepage shows at most five breaking articles
	if len(page.BreakingArticles) != 5 {
		t.Errorf("Expected breaking strip truncated to 5, got %d", len(page.BreakingArticles))
	}
}

func TestArticleNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/articles/99", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/api/v1/preview/articles/99", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	composer := newTestComposer(t, mux)
	if _, found := composer.Article(context.Background(), 99); found {
		t.Error("Expected article 99 to be reported as not found")
	}
}

func TestArticlePreviewResolution(t *testing.T) {
	tests := []struct {
		name             string
		article          map[string]any
		preview          map[string]any // nil means the preview endpoint fails
		wantPreviewHTML  string
		wantRegeneration bool
	}{
		{
			name:             "backend preview wins",
			article:          map[string]any{"id": 1, "title": "A", "preview_content": "<p>own</p>"},
			preview:          map[string]any{"has_preview": true, "preview": "<p>generated</p>"},
			wantPreviewHTML:  "<p>generated</p>",
			wantRegeneration: false,
		},
		{
			name:             "empty preview object still needs regeneration",
			article:          map[string]any{"id": 1, "title": "A"},
			preview:          map[string]any{"has_preview": false},
			wantPreviewHTML:  "",
			wantRegeneration: true,
		},
		{
			name:             "fallback to article preview content",
			article:          map[string]any{"id": 1, "title": "A", "preview_content": "<p>own</p>"},
			preview:          nil,
			wantPreviewHTML:  "<p>own</p>",
			wantRegeneration: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/api/v1/articles/1", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.article)
			})
			mux.HandleFunc("/api/v1/preview/articles/1", func(w http.ResponseWriter, r *http.Request) {
				if tt.preview == nil {
					http.Error(w, "unavailable", http.StatusServiceUnavailable)
					return
				}
				writeJSON(w, tt.preview)
			})

			composer := newTestComposer(t, mux)
			page, found := composer.Article(context.Background(), 1)
			if !found {
				t.Fatal("Expected article to be found")
			}

			if page.PreviewHTML != tt.wantPreviewHTML {
				t.Errorf("PreviewHTML = %q, want %q", page.PreviewHTML, tt.wantPreviewHTML)
			}
			if page.NeedsRegeneration != tt.wantRegeneration {
				t.Errorf("NeedsRegeneration = %v, want %v", page.NeedsRegeneration, tt.wantRegeneration)
			}
		})
	}
}

func TestArticleContentWarning(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/articles/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"id":               1,
			"title":            "A",
			"has_full_content": false,
			"content_length":   200,
		})
	})
	mux.HandleFunc("/api/v1/articles/2", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"id":               2,
			"title":            "B",
			"has_full_content": false,
			"content_length":   800,
		})
	})
	mux.HandleFunc("/api/v1/preview/articles/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"has_preview": false})
	})

	composer := newTestComposer(t, mux)

	page, _ := composer.Article(context.Background(), 1)
	if page.ContentWarning == "" {
		t.Error("Expected content warning for short summary-only article")
	}

	page, _ = composer.Article(context.Background(), 2)
	if page.ContentWarning != "" {
		t.Errorf("Expected no warning for long content, got %q", page.ContentWarning)
	}
}

func TestCategoryMatchIsCaseSensitive(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{"name": "World"}})
	})
	mux.HandleFunc("/api/v1/articles", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"articles": []any{}, "total": 30})
	})

	composer := newTestComposer(t, mux)

	if _, found := composer.Category(context.Background(), "world", "all", 1); found {
		t.Error("Expected lowercase name to miss the case-sensitive match")
	}

	page, found := composer.Category(context.Background(), "World", "all", 1)
	if !found {
		t.Fatal("Expected World category to be found")
	}
	if page.Pagination.Total != 30 || page.Pagination.TotalPages != 2 {
		t.Errorf("Expected total 30 across 2 pages, got %+v", page.Pagination)
	}
}

func TestSearchPagination(t *testing.T) {
	var gotSkip string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/articles", func(w http.ResponseWriter, r *http.Request) {
		gotSkip = r.URL.Query().Get("skip")
		writeJSON(w, map[string]any{"articles": []any{}, "total": 41})
	})

	composer := newTestComposer(t, mux)
	page := composer.Search(context.Background(), "election", "all", 3)

	if gotSkip != "40" {
		t.Errorf("Expected skip 40 for page 3, got %q", gotSkip)
	}
	if page.Pagination.TotalPages != 3 {
		t.Errorf("Expected 3 pages for total 41, got %d", page.Pagination.TotalPages)
	}
}

func TestBreakingSources(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/articles/breaking/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"articles": []map[string]any{
			{"id": 1, "source": "Reuters"},
			{"id": 2, "source": "Reuters"},
			{"id": 3, "source": ""},
			{"id": 4, "source": "BBC"},
		}})
	})

	composer := newTestComposer(t, mux)
	page := composer.Breaking(context.Background())

	if page.ArticleCount != 4 {
		t.Errorf("Expected 4 articles, got %d", page.ArticleCount)
	}
	if page.SourceCount != 3 {
		t.Errorf("Expected 3 distinct sources, got %d (%v)", page.SourceCount, page.Sources)
	}

	hasUnknown := false
	for _, source := range page.Sources {
		if source == "Unknown" {
			hasUnknown = true
		}
	}
	if !hasUnknown {
		t.Errorf("Expected missing source to default to Unknown, got %v", page.Sources)
	}
}

func TestStatsLanguageCounts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/articles", func(w http.ResponseWriter, r *http.Request) {
		total := 100
		switch r.URL.Query().Get("language") {
		case "en":
			total = 60
		case "bn":
			total = 40
		}
		writeJSON(w, map[string]any{"articles": []any{}, "total": total})
	})
	mux.HandleFunc("/api/v1/fetcher/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"extraction_rate": 0.85})
	})

	composer := newTestComposer(t, mux)
	page := composer.Stats(context.Background())

	if page.TotalArticles != 100 || page.EnglishArticles != 60 || page.BengaliArticles != 40 {
		t.Errorf("Unexpected counts: total=%d en=%d bn=%d",
			page.TotalArticles, page.EnglishArticles, page.BengaliArticles)
	}
	if page.Stats["extraction_rate"] != 0.85 {
		t.Errorf("Expected extraction rate passthrough, got %v", page.Stats)
	}
}

func TestHealthReport(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/health/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"status": "ok"})
	})

	composer := newTestComposer(t, mux)
	report := composer.Health(context.Background())

	if report.Frontend != "healthy" {
		t.Errorf("Expected healthy frontend, got %q", report.Frontend)
	}
	if report.Backend["status"] != "ok" {
		t.Errorf("Expected backend status ok, got %v", report.Backend)
	}
	if _, err := time.Parse(time.RFC3339, report.Timestamp); err != nil {
		t.Errorf("Expected RFC3339 timestamp, got %q", report.Timestamp)
	}
}

func TestSitemapDegradesOnFailure(t *testing.T) {
	composer := newTestComposer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))

	data := composer.Sitemap(context.Background())
	if len(data.CategoryNames) != 0 || len(data.ArticleIDs) != 0 {
		t.Errorf("Expected empty sitemap data on backend failure, got %+v", data)
	}
}
