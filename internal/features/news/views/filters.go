package views

import (
	"fmt"
	"html/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// Presentation filters: pure string-formatting helpers exposed to the
// templates through the renderer's FuncMap.

const (
	defaultCategoryColor = "#6366f1"
	defaultCategoryIcon  = "📄"
)

var categoryColors = map[string]string{
	"World":         "#3b82f6",
	"Technology":    "#8b5cf6",
	"Business":      "#10b981",
	"Science":       "#06b6d4",
	"Health":        "#ec4899",
	"Sports":        "#f97316",
	"Entertainment": "#ef4444",
	"Politics":      "#6b7280",
	"General":       "#6366f1",
}

var categoryIcons = map[string]string{
	"World":         "🌍",
	"Technology":    "💻",
	"Business":      "📈",
	"Science":       "🔬",
	"Health":        "🏥",
	"Sports":        "⚽",
	"Entertainment": "🎬",
	"Politics":      "🏛️",
	"General":       "📰",
}

// previewPolicy enforces the tag allow-list for backend preview fragments.
// Script and style blocks are removed together with their content.
var previewPolicy = newPreviewPolicy()

func newPreviewPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"div", "span", "p", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "strong", "em", "b", "i", "u", "a",
		"img", "br", "hr", "table", "tr", "td", "th",
	)
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	return p
}

// CategoryColor returns the display color for a category name
func CategoryColor(name string) string {
	if color, ok := categoryColors[name]; ok {
		return color
	}
	return defaultCategoryColor
}

// CategoryIcon returns the display icon for a category name
func CategoryIcon(name string) string {
	if icon, ok := categoryIcons[name]; ok {
		return icon
	}
	return defaultCategoryIcon
}

// FormatDateTime formats a backend timestamp as "Jan 02, 2006 15:04".
// Unparseable values pass through unchanged.
func FormatDateTime(value string) string {
	if value == "" {
		return ""
	}
	t, ok := parseTimestamp(value)
	if !ok {
		return value
	}
	return t.Format("Jan 02, 2006 15:04")
}

// TimeAgo renders a backend timestamp as a relative time string.
// Unparseable values pass through unchanged.
func TimeAgo(value string) string {
	if value == "" {
		return ""
	}
	t, ok := parseTimestamp(value)
	if !ok {
		return value
	}

	diff := time.Since(t)
	days := int(diff.Hours() / 24)
	seconds := int(diff.Seconds())

	switch {
	case days > 365:
		return pluralize(days/365, "year")
	case days > 30:
		return pluralize(days/30, "month")
	case days > 0:
		return pluralize(days, "day")
	case seconds > 3600:
		return pluralize(seconds/3600, "hour")
	case seconds > 60:
		return pluralize(seconds/60, "minute")
	default:
		return "just now"
	}
}

// Truncate cuts text to at most length characters, appending an ellipsis
// marker only when something was cut
func Truncate(text string, length int) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	return string(runes[:length]) + "..."
}

// SafeHTML sanitizes a backend HTML fragment through the preview allow-list
func SafeHTML(fragment string) template.HTML {
	if fragment == "" {
		return ""
	}
	return template.HTML(previewPolicy.Sanitize(fragment))
}

func pluralize(count int, unit string) string {
	if count == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", count, unit)
}

// parseTimestamp accepts RFC 3339 timestamps with or without a zone
func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
