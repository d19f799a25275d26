// Package htmlsanitize cleans the rich text admins submit for services,
// sub-services and blog posts before it is stored.
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richOnce sync.Once
	rich     *bluemonday.Policy

	textOnce sync.Once
	text     *bluemonday.Policy
)

// richPolicy accepts what the dashboard editor produces: UGC markup plus
// tables, inline alignment and colour, and base64 images.
func richPolicy() *bluemonday.Policy {
	richOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td")
		p.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
		p.AllowAttrs("class").OnElements("table", "th", "td", "tr")
		p.AllowElements("u", "s", "sub", "sup", "mark")
		p.AllowDataAttributes()
		p.AllowStyles("text-align", "color", "background-color", "font-weight",
			"font-style", "text-decoration", "margin", "padding").Globally()
		p.AllowAttrs("style").OnElements("table", "th", "td", "p", "span", "div",
			"h1", "h2", "h3", "h4", "h5", "h6", "li")
		p.AllowDataURIImages()
		rich = p
	})
	return rich
}

func textPolicy() *bluemonday.Policy {
	textOnce.Do(func() { text = bluemonday.StrictPolicy() })
	return text
}

// Sanitize strips scripts, event handlers and unknown markup from html.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return richPolicy().Sanitize(html)
}

// Clean sanitizes html and returns "" when nothing visible is left.
// Editors submit markup such as "<p><br></p>" for an empty document; Clean
// lets required-field checks see that as missing.
func Clean(html string) string {
	out := strings.TrimSpace(Sanitize(html))
	if IsBlank(out) {
		return ""
	}
	return out
}

// IsBlank reports whether html has no text and no image once tags are
// removed. Non-breaking spaces count as blank.
func IsBlank(html string) bool {
	if strings.Contains(html, "<img") {
		return false
	}
	visible := textPolicy().Sanitize(html)
	return strings.TrimSpace(visible) == ""
}
