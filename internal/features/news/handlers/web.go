package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"globe-news/internal/core"
	"globe-news/internal/features/news/views"
)

// WebHandler serves the user-facing HTML pages
type WebHandler struct {
	logger   *core.Logger
	composer ComposerInterface
	views    *views.Renderer
	siteURL  string
}

// NewWebHandler creates a new web handler
func NewWebHandler(logger *core.Logger, composer ComposerInterface, renderer *views.Renderer, siteURL string) *WebHandler {
	return &WebHandler{
		logger:   logger,
		composer: composer,
		views:    renderer,
		siteURL:  siteURL,
	}
}

// Home serves the homepage with the latest and breaking articles
func (h *WebHandler) Home(w http.ResponseWriter, r *http.Request) {
	language := queryDefault(r, "language", "all")
	page := h.composer.Home(r.Context(), language)
	h.views.Render(w, http.StatusOK, "index.html", page)
}

// ArticleDetail serves the article detail page
func (h *WebHandler) ArticleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.views.RenderError(w, http.StatusNotFound, "Page not found")
		return
	}

	page, found := h.composer.Article(r.Context(), id)
	if !found {
		h.views.RenderError(w, http.StatusNotFound, "Article not found")
		return
	}

	h.views.Render(w, http.StatusOK, "article_detail.html", page)
}

// RegeneratePreview triggers preview regeneration and redirects back to the
// article on success. On failure the article page is re-rendered inline
// with an error message.
func (h *WebHandler) RegeneratePreview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.views.RenderError(w, http.StatusNotFound, "Page not found")
		return
	}

	if h.composer.RegeneratePreview(r.Context(), id) {
		http.Redirect(w, r, fmt.Sprintf("/article/%d", id), http.StatusFound)
		return
	}

	page, found := h.composer.Article(r.Context(), id)
	if !found {
		h.views.RenderError(w, http.StatusNotFound, "Article not found")
		return
	}

	page.ErrorMessage = "Failed to regenerate preview. Please try again."
	page.NeedsRegeneration = true
	h.views.Render(w, http.StatusOK, "article_detail.html", page)
}

// Categories serves the categories listing page
func (h *WebHandler) Categories(w http.ResponseWriter, r *http.Request) {
	page := h.composer.Categories(r.Context())
	h.views.Render(w, http.StatusOK, "category.html", page)
}

// CategoryDetail serves a single category page
func (h *WebHandler) CategoryDetail(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	language := queryDefault(r, "language", "all")

	page, found := h.composer.Category(r.Context(), name, language, queryPage(r))
	if !found {
		h.views.RenderError(w, http.StatusNotFound, "Category not found")
		return
	}

	h.views.Render(w, http.StatusOK, "category_detail.html", page)
}

// Breaking serves the breaking news page
func (h *WebHandler) Breaking(w http.ResponseWriter, r *http.Request) {
	page := h.composer.Breaking(r.Context())
	h.views.Render(w, http.StatusOK, "breaking.html", page)
}

// Search serves the search results page; an empty query redirects home
func (h *WebHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	language := queryDefault(r, "language", "all")
	page := h.composer.Search(r.Context(), query, language, queryPage(r))
	h.views.Render(w, http.StatusOK, "search.html", page)
}

// Stats serves the statistics page
func (h *WebHandler) Stats(w http.ResponseWriter, r *http.Request) {
	page := h.composer.Stats(r.Context())
	h.views.Render(w, http.StatusOK, "stats.html", page)
}

// FetchNow triggers a manual backend fetch cycle and redirects home
func (h *WebHandler) FetchNow(w http.ResponseWriter, r *http.Request) {
	h.composer.FetchNow(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Sitemap XML structures
type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap serves sitemap.xml with the static pages plus per-category and
// per-article URLs. Both dynamic sections degrade to nothing when the
// backend is unavailable.
func (h *WebHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	urls := []sitemapURL{
		{Loc: h.siteURL + "/", ChangeFreq: "hourly", Priority: "1.0"},
		{Loc: h.siteURL + "/breaking", ChangeFreq: "hourly", Priority: "0.9"},
		{Loc: h.siteURL + "/categories", ChangeFreq: "daily", Priority: "0.8"},
		{Loc: h.siteURL + "/search", ChangeFreq: "monthly", Priority: "0.5"},
	}

	data := h.composer.Sitemap(r.Context())
	for _, name := range data.CategoryNames {
		urls = append(urls, sitemapURL{
			Loc:        h.siteURL + "/category/" + url.PathEscape(name),
			ChangeFreq: "daily",
			Priority:   "0.7",
		})
	}
	for _, id := range data.ArticleIDs {
		urls = append(urls, sitemapURL{
			Loc:        fmt.Sprintf("%s/article/%d", h.siteURL, id),
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}

	set := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return
	}
	if err := xml.NewEncoder(w).Encode(set); err != nil {
		h.logger.Error("Failed to encode sitemap", "error", err)
	}
}

// Robots serves robots.txt with an allow-all policy and the sitemap pointer
func (h *WebHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nSitemap: %s/sitemap.xml\n", h.siteURL)
}

func queryDefault(r *http.Request, key, fallback string) string {
	if value := r.URL.Query().Get(key); value != "" {
		return value
	}
	return fallback
}

// queryPage reads the 1-based page parameter, defaulting to 1 for missing
// or non-numeric values. The lower bound is clamped by the pagination model.
func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}
