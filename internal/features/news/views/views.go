package views

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"globe-news/internal/core"
	"globe-news/internal/features/news/models"
)

//go:embed templates
var templateFS embed.FS

// Renderer executes the embedded page templates
type Renderer struct {
	templates *template.Template
	logger    *core.Logger
}

// New parses the embedded templates and creates a renderer
func New(logger *core.Logger) (*Renderer, error) {
	templates, err := template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, core.NewConfigurationError("failed to parse templates", err)
	}

	return &Renderer{
		templates: templates,
		logger:    logger,
	}, nil
}

// FuncMap exposes the presentation filters to the templates
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"formatDateTime": FormatDateTime,
		"timeAgo":        TimeAgo,
		"truncate":       Truncate,
		"categoryColor":  CategoryColor,
		"categoryIcon":   CategoryIcon,
		"safeHTML":       SafeHTML,
	}
}

// Render executes the named template into the response. The template runs
// against a buffer first so an execution failure can still become a 500
// instead of a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		r.logger.Error("Failed to render template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Error("Failed to write response", "template", name, "error", err)
	}
}

// RenderError renders the generic error page
func (r *Renderer) RenderError(w http.ResponseWriter, status int, message string) {
	r.Render(w, status, "error.html", models.ErrorPage{
		Message: message,
		Code:    status,
	})
}
