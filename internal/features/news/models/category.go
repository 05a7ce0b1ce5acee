package models

// Category mirrors a backend category. ArticleCount is not stored by the
// backend; it is filled locally from a count-only article query.
type Category struct {
	Name         string `json:"name"`
	ArticleCount int    `json:"article_count"`
}
