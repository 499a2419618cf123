package urls

import (
	"context"
	"fmt"

	"talk-corpus/pkg/httpclient"
)

// URLExtractor is a function type that extracts URLs from HTML content
type URLExtractor func(html string) ([]URL, error)

// HTMLFetcher handles fetching HTML pages and extracting URLs using a provided extractor
type HTMLFetcher struct {
	client    *httpclient.HTTPClient
	extractor URLExtractor
}

// NewHTMLFetcher creates a new HTML fetcher with the given client and extractor function
func NewHTMLFetcher(client *httpclient.HTTPClient, extractor URLExtractor) *HTMLFetcher {
	return &HTMLFetcher{
		client:    client,
		extractor: extractor,
	}
}

// Fetch implements URLsFetcher - fetches HTML from the given URL and extracts URLs
func (f *HTMLFetcher) Fetch(ctx context.Context, pageURL string) ([]URL, error) {
	return f.FetchWithQuery(ctx, pageURL, nil)
}

// FetchWithQuery is Fetch with query parameters appended to pageURL.
// An empty result is not an error: a listing page may legitimately be empty.
func (f *HTMLFetcher) FetchWithQuery(ctx context.Context, pageURL string, query map[string]string) ([]URL, error) {
	if f.extractor == nil {
		return nil, fmt.Errorf("extractor function is not set")
	}

	body, err := f.client.Get(ctx, pageURL, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch HTML: %w", err)
	}

	found, err := f.extractor(string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to extract URLs: %w", err)
	}

	return found, nil
}
