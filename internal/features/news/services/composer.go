package services

import (
	"context"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"globe-news/internal/core"
	"globe-news/internal/features/news/models"
)

const (
	// contentWarningThreshold is the content length below which a
	// summary-only article gets a quality warning
	contentWarningThreshold = 500

	// Articles shown in the breaking strip on the homepage
	homeBreakingCount = 5

	// Articles shown on the stats page
	statsLatestCount = 10

	unknownSource = "Unknown"
)

// Composer assembles the view model for each page from one or more backend
// calls. No call is skipped because an earlier one failed; backend
// unavailability produces sparse but valid pages.
type Composer struct {
	logger  *core.Logger
	backend *BackendClient
	config  core.NewsConfig
}

// NewComposer creates a new page composer
func NewComposer(logger *core.Logger, backend *BackendClient, config core.NewsConfig) *Composer {
	return &Composer{
		logger:  logger,
		backend: backend,
		config:  config,
	}
}

// Home composes the homepage: latest articles, breaking strip, and the
// category sidebar with per-category counts
func (s *Composer) Home(ctx context.Context, language string) models.HomePage {
	latest := s.backend.ListArticles(ctx, ListParams{
		Limit:    s.config.HomePageSize,
		Language: language,
	})

	breaking := s.backend.ListBreaking(ctx, s.config.BreakingLimit)
	if len(breaking) > homeBreakingCount {
		breaking = breaking[:homeBreakingCount]
	}

	categories := s.backend.ListCategories(ctx)
	s.fillCategoryCounts(ctx, categories)

	return models.HomePage{
		Articles:         latest.Articles,
		BreakingArticles: breaking,
		Categories:       categories,
		Language:         language,
		TotalArticles:    latest.Total,
	}
}

// Article composes the article detail page. The second return value is
// false when the backend reports no such article.
func (s *Composer) Article(ctx context.Context, id int) (models.ArticlePage, bool) {
	article := s.backend.GetArticle(ctx, id)
	if article == nil {
		return models.ArticlePage{}, false
	}

	preview := s.backend.GetPreview(ctx, id)

	// A failed preview call and a preview that reports has_preview false
	// both mean the preview needs regenerating.
	needsRegeneration := preview == nil || !preview.HasPreview

	var previewHTML string
	switch {
	case preview != nil && preview.HasPreview:
		previewHTML = preview.Preview
	case article.PreviewContent != "":
		previewHTML = article.PreviewContent
	}

	var warning string
	if !article.HasFullContent && article.ContentLength < contentWarningThreshold {
		warning = "Limited content available - only RSS summary was fetched"
	}

	return models.ArticlePage{
		Article:           article,
		PreviewHTML:       previewHTML,
		NeedsRegeneration: needsRegeneration,
		HasFullContent:    article.HasFullContent,
		ContentLength:     article.ContentLength,
		ContentWarning:    warning,
	}, true
}

// RegeneratePreview asks the backend to generate a fresh preview and
// reports whether it succeeded
func (s *Composer) RegeneratePreview(ctx context.Context, id int) bool {
	result := s.backend.GeneratePreview(ctx, id)
	return result != nil && result.Success
}

// Categories composes the categories listing page with per-category counts
// and a running grand total
func (s *Composer) Categories(ctx context.Context) models.CategoriesPage {
	categories := s.backend.ListCategories(ctx)
	s.fillCategoryCounts(ctx, categories)

	total := 0
	for _, category := range categories {
		total += category.ArticleCount
	}

	return models.CategoriesPage{
		Categories:    categories,
		TotalArticles: total,
	}
}

// Category composes a single category page. The second return value is
// false when the name is not in the backend's category list; the match is
// case-sensitive and exact.
func (s *Composer) Category(ctx context.Context, name, language string, page int) (models.CategoryPage, bool) {
	categories := s.backend.ListCategories(ctx)
	current, found := lo.Find(categories, func(c models.Category) bool {
		return c.Name == name
	})
	if !found {
		return models.CategoryPage{}, false
	}

	pagination := models.NewPagination(page, s.config.PageSize)
	list := s.backend.ListArticles(ctx, ListParams{
		Category: name,
		Language: language,
		Limit:    pagination.Limit,
		Skip:     pagination.Skip,
	})
	pagination.SetTotal(list.Total)

	return models.CategoryPage{
		Category:   current,
		Articles:   list.Articles,
		Language:   language,
		Pagination: pagination,
	}, true
}

// Breaking composes the breaking news page with the distinct set of sources
func (s *Composer) Breaking(ctx context.Context) models.BreakingPage {
	articles := s.backend.ListBreaking(ctx, s.config.BreakingLimit)

	sources := lo.Uniq(lo.Map(articles, func(a models.Article, _ int) string {
		if a.Source == "" {
			return unknownSource
		}
		return a.Source
	}))

	return models.BreakingPage{
		Articles:     articles,
		Sources:      sources,
		ArticleCount: len(articles),
		SourceCount:  len(sources),
	}
}

// Search composes a search results page for a non-empty query
func (s *Composer) Search(ctx context.Context, query, language string, page int) models.SearchPage {
	pagination := models.NewPagination(page, s.config.PageSize)
	list := s.backend.ListArticles(ctx, ListParams{
		Search:   query,
		Language: language,
		Limit:    pagination.Limit,
		Skip:     pagination.Skip,
	})
	pagination.SetTotal(list.Total)

	return models.SearchPage{
		Query:      query,
		Articles:   list.Articles,
		Language:   language,
		Pagination: pagination,
	}
}

// Stats composes the statistics page from the fetcher stats plus count-only
// listing queries
func (s *Composer) Stats(ctx context.Context) models.StatsPage {
	stats := s.backend.GetStats(ctx)
	total := s.backend.ListArticles(ctx, ListParams{Limit: 1})
	english := s.backend.ListArticles(ctx, ListParams{Limit: 1, Language: "en"})
	bengali := s.backend.ListArticles(ctx, ListParams{Limit: 1, Language: "bn"})
	latest := s.backend.ListArticles(ctx, ListParams{Limit: statsLatestCount})

	return models.StatsPage{
		Stats:           stats,
		TotalArticles:   total.Total,
		EnglishArticles: english.Total,
		BengaliArticles: bengali.Total,
		LatestArticles:  latest.Articles,
	}
}

// FetchNow triggers a manual backend fetch cycle; the result payload is
// logged and otherwise ignored
func (s *Composer) FetchNow(ctx context.Context) {
	result := s.backend.TriggerFetch(ctx)
	s.logger.Info("Triggered manual fetch", "result", result)
}

// Health reports frontend health together with the backend's own status
func (s *Composer) Health(ctx context.Context) models.HealthReport {
	return models.HealthReport{
		Frontend:  "healthy",
		Backend:   s.backend.GetHealth(ctx),
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// Sitemap collects the dynamic sitemap entries: all category names and the
// ids of the latest hundred articles
func (s *Composer) Sitemap(ctx context.Context) models.SitemapData {
	categories := s.backend.ListCategories(ctx)
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		if category.Name != "" {
			names = append(names, category.Name)
		}
	}

	list := s.backend.ListArticles(ctx, ListParams{Limit: 100})
	ids := make([]int, 0, len(list.Articles))
	for _, article := range list.Articles {
		if article.ID != 0 {
			ids = append(ids, article.ID)
		}
	}

	return models.SitemapData{
		CategoryNames: names,
		ArticleIDs:    ids,
	}
}

// fillCategoryCounts runs one count-only listing query per category with a
// bounded number of workers and writes the totals in place
func (s *Composer) fillCategoryCounts(ctx context.Context, categories []models.Category) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.CountWorkers)

	for i := range categories {
		g.Go(func() error {
			list := s.backend.ListArticles(ctx, ListParams{
				Category: categories[i].Name,
				Limit:    1,
			})
			categories[i].ArticleCount = list.Total
			return nil
		})
	}

	// Workers never return errors; the backend client degrades to empty
	// results on failure.
	_ = g.Wait()
}
