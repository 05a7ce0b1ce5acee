package handlers

import (
	"context"

	"globe-news/internal/features/news/models"
)

// ComposerInterface defines what handlers need from the page composer
type ComposerInterface interface {
	Home(ctx context.Context, language string) models.HomePage
	Article(ctx context.Context, id int) (models.ArticlePage, bool)
	RegeneratePreview(ctx context.Context, id int) bool
	Categories(ctx context.Context) models.CategoriesPage
	Category(ctx context.Context, name, language string, page int) (models.CategoryPage, bool)
	Breaking(ctx context.Context) models.BreakingPage
	Search(ctx context.Context, query, language string, page int) models.SearchPage
	Stats(ctx context.Context) models.StatsPage
	FetchNow(ctx context.Context)
	Health(ctx context.Context) models.HealthReport
	Sitemap(ctx context.Context) models.SitemapData
}
