package urls

import (
	"context"
	"fmt"

	"talk-corpus/pkg/httpclient"

	"github.com/mmcdole/gofeed"
)

// FeedFetcher reads talk links from an RSS/Atom feed
type FeedFetcher struct {
	client *httpclient.HTTPClient
	parser *gofeed.Parser
}

// NewFeedFetcher creates a feed fetcher that downloads through client
func NewFeedFetcher(client *httpclient.HTTPClient) *FeedFetcher {
	return &FeedFetcher{
		client: client,
		parser: gofeed.NewParser(),
	}
}

// Fetch implements URLsFetcher. Item links are made relative to the site root.
func (f *FeedFetcher) Fetch(ctx context.Context, feedURL string) ([]URL, error) {
	body, err := f.client.Get(ctx, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	return f.parse(string(body))
}

func (f *FeedFetcher) parse(content string) ([]URL, error) {
	feed, err := f.parser.ParseString(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	result := make([]URL, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || item.Link == "" {
			continue
		}
		result = append(result, URL{
			Location: RelativeLink(item.Link),
			Title:    item.Title,
		})
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("no items with links found in feed")
	}
	return result, nil
}
