package urls

import (
	"context"
	"net/url"
	"strings"
)

// URL represents a link found on a listing page or feed
type URL struct {
	Location string // talk page URL, relative to the site root
	Title    string // anchor or item title (optional)
}

// URLsFetcher defines the interface for link sources (listing pages, feeds)
type URLsFetcher interface {
	Fetch(ctx context.Context, sourceURL string) ([]URL, error)
}

// RelativeLink strips scheme and host from absolute links so every link in
// the list is relative to the site root. Relative links are returned as is.
func RelativeLink(href string) string {
	href = strings.TrimSpace(href)
	parsed, err := url.Parse(href)
	if err != nil || !parsed.IsAbs() {
		return href
	}
	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}
	return path
}

// Locations extracts the non-empty locations, in order
func Locations(found []URL) []string {
	result := make([]string, 0, len(found))
	for _, u := range found {
		if u.Location != "" {
			result = append(result, u.Location)
		}
	}
	return result
}
