package urls

import (
	"context"
	"fmt"
	"strings"
)

// UrlFilter defines the interface for URL filtering
type UrlFilter interface {
	ShouldKeep(ctx context.Context, url string) (bool, error)
}

// AlreadyFetchedFilter filters out URLs that already exist in the provided set
type AlreadyFetchedFilter struct {
	fetchedURLs map[string]bool
}

// NewAlreadyFetchedFilter creates a new already-fetched filter
func NewAlreadyFetchedFilter(fetchedURLs map[string]bool) *AlreadyFetchedFilter {
	return &AlreadyFetchedFilter{
		fetchedURLs: fetchedURLs,
	}
}

// ShouldKeep returns false if URL is already in the fetched set
func (f *AlreadyFetchedFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	return !f.fetchedURLs[urlStr], nil
}

// ContainsPathFilter keeps only URLs that contain a specific path segment
type ContainsPathFilter struct {
	pathSegment string // e.g. "/talks/"
}

// NewContainsPathFilter creates a new path filter that keeps URLs containing the specified path segment
func NewContainsPathFilter(pathSegment string) *ContainsPathFilter {
	return &ContainsPathFilter{
		pathSegment: pathSegment,
	}
}

// ShouldKeep returns true if URL contains the specified path segment
func (f *ContainsPathFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	return strings.Contains(urlStr, f.pathSegment), nil
}

// ApplyFilters keeps the URLs every filter agrees on, preserving order
func ApplyFilters(ctx context.Context, links []string, filters ...UrlFilter) ([]string, error) {
	if len(filters) == 0 {
		return links, nil
	}

	filtered := make([]string, 0, len(links))
	for _, link := range links {
		keep := true
		for _, f := range filters {
			ok, err := f.ShouldKeep(ctx, link)
			if err != nil {
				return nil, fmt.Errorf("filter error for URL %s: %w", link, err)
			}
			if !ok {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, link)
		}
	}
	return filtered, nil
}
