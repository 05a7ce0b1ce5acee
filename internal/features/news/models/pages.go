package models

// View models assembled by the composer, one per rendered page. Each is
// built fresh per request and handed to the template renderer.

// HomePage is the composed data for the homepage
type HomePage struct {
	Articles         []Article
	BreakingArticles []Article
	Categories       []Category
	Language         string
	TotalArticles    int
}

// ArticlePage is the composed data for the article detail page
type ArticlePage struct {
	Article           *Article
	PreviewHTML       string
	NeedsRegeneration bool
	HasFullContent    bool
	ContentLength     int
	ContentWarning    string
	ErrorMessage      string
}

// CategoriesPage is the composed data for the categories listing page
type CategoriesPage struct {
	Categories    []Category
	TotalArticles int
}

// CategoryPage is the composed data for a single category page
type CategoryPage struct {
	Category   Category
	Articles   []Article
	Language   string
	Pagination Pagination
}

// BreakingPage is the composed data for the breaking news page
type BreakingPage struct {
	Articles     []Article
	Sources      []string
	ArticleCount int
	SourceCount  int
}

// SearchPage is the composed data for the search results page
type SearchPage struct {
	Query      string
	Articles   []Article
	Language   string
	Pagination Pagination
}

// StatsPage is the composed data for the statistics page
type StatsPage struct {
	Stats           map[string]any
	TotalArticles   int
	EnglishArticles int
	BengaliArticles int
	LatestArticles  []Article
}

// ErrorPage is the data for the generic error page
type ErrorPage struct {
	Message string
	Code    int
}

// HealthReport is the frontend health payload, always served with HTTP 200
type HealthReport struct {
	Frontend  string         `json:"frontend"`
	Backend   map[string]any `json:"backend"`
	Timestamp string         `json:"timestamp"`
}

// SitemapData holds the dynamic entries of the sitemap. Both slices degrade
// to empty on backend failure.
type SitemapData struct {
	CategoryNames []string
	ArticleIDs    []int
}
