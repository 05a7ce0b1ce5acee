package models

// Article mirrors a backend article for the duration of one request.
// The backend contract is not schema-validated, so every field is optional
// and decodes to its zero value when absent.
type Article struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Source         string `json:"source"`
	Category       string `json:"category"`
	Language       string `json:"language"`
	PublishedAt    string `json:"published_at"`
	Summary        string `json:"summary"`
	Content        string `json:"content"`
	URL            string `json:"url"`
	ImageURL       string `json:"image_url"`
	IsBreaking     bool   `json:"is_breaking"`
	HasFullContent bool   `json:"has_full_content"`
	ContentLength  int    `json:"content_length"`
	PreviewContent string `json:"preview_content"`
}

// ArticleList is the backend's paginated article listing response
type ArticleList struct {
	Articles []Article `json:"articles"`
	Total    int       `json:"total"`
	Limit    int       `json:"limit"`
	Skip     int       `json:"skip"`
}

// Preview is the backend's generated content preview for an article.
// A preview object with HasPreview false means generation has not produced
// usable content yet, which is distinct from the preview endpoint failing.
type Preview struct {
	ArticleID   int    `json:"article_id"`
	HasPreview  bool   `json:"has_preview"`
	Preview     string `json:"preview"`
	GeneratedAt string `json:"generated_at"`
}

// GenerateResult is the backend's response to a preview generation request
type GenerateResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
