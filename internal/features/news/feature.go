package news

import (
	"context"

	"globe-news/internal/core"
	"globe-news/internal/features/news/handlers"
	"globe-news/internal/features/news/services"
	"globe-news/internal/features/news/views"
)

// Feature is the news browsing feature: every user-facing page of the
// Globe News frontend plus the health API.
type Feature struct {
	*core.BaseFeature
	composer *services.Composer
	web      *handlers.WebHandler
	api      *handlers.APIHandler
}

// NewFeature creates the news feature
func NewFeature(logger *core.Logger, config *core.Config, renderer *views.Renderer) *Feature {
	featureLogger := logger.ForFeature("news")

	backend := services.NewBackendClient(featureLogger, config.Backend)
	composer := services.NewComposer(featureLogger, backend, config.News)
	web := handlers.NewWebHandler(featureLogger, composer, renderer, config.News.SiteURL)
	api := handlers.NewAPIHandler(featureLogger, composer)

	baseFeature := core.NewBaseFeature(
		"news",
		"News browsing pages backed by the Globe News API",
		true,
		logger,
		config.News,
	)

	return &Feature{
		BaseFeature: baseFeature,
		composer:    composer,
		web:         web,
		api:         api,
	}
}

// Init initializes the news feature
func (f *Feature) Init(ctx context.Context) error {
	if err := f.BaseFeature.Init(ctx); err != nil {
		return err
	}

	f.Logger().Info("News feature initialized")
	return nil
}

// Routes returns the HTTP routes for the news feature
func (f *Feature) Routes() []core.Route {
	return []core.Route{
		// Web routes
		{Method: "GET", Path: "/", Handler: f.web.Home},
		{Method: "GET", Path: "/article/{id}", Handler: f.web.ArticleDetail},
		{Method: "GET", Path: "/article/{id}/regenerate-preview", Handler: f.web.RegeneratePreview},
		{Method: "GET", Path: "/categories", Handler: f.web.Categories},
		{Method: "GET", Path: "/category/{name}", Handler: f.web.CategoryDetail},
		{Method: "GET", Path: "/breaking", Handler: f.web.Breaking},
		{Method: "GET", Path: "/search", Handler: f.web.Search},
		{Method: "GET", Path: "/stats", Handler: f.web.Stats},
		{Method: "POST", Path: "/fetch-now", Handler: f.web.FetchNow},
		{Method: "GET", Path: "/sitemap.xml", Handler: f.web.Sitemap},
		{Method: "GET", Path: "/robots.txt", Handler: f.web.Robots},

		// API routes
		{Method: "GET", Path: "/api/health", Handler: f.api.Health},
	}
}

// Shutdown gracefully shuts down the news feature
func (f *Feature) Shutdown(ctx context.Context) error {
	return f.BaseFeature.Shutdown(ctx)
}
