package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// PageTitle recovers a human-readable title from any HTML page, falling back
// through readability, <title>, <h1> and og:title. Returns "" when nothing is found.
func PageTitle(htmlContent string) string {
	article, err := readability.FromReader(strings.NewReader(htmlContent), nil)
	if err == nil {
		if title := strings.TrimSpace(article.Title); title != "" {
			return title
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title
	}
	if title, exists := doc.Find("meta[property='og:title']").Attr("content"); exists {
		return strings.TrimSpace(title)
	}
	return ""
}
