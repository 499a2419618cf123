package urls

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talk-corpus/pkg/httpclient"
)

const talksFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>TED Talks Daily</title>
		<link>https://www.ted.com/talks</link>
		<item>
			<title>How to stay calm when you know you'll be stressed</title>
			<link>https://www.ted.com/talks/daniel_levitin_how_to_stay_calm_when_you_know_you_ll_be_stressed</link>
		</item>
		<item>
			<title>Inside the mind of a master procrastinator</title>
			<link>https://www.ted.com/talks/tim_urban_inside_the_mind_of_a_master_procrastinator</link>
		</item>
		<item>
			<title>No link</title>
		</item>
	</channel>
</rss>`

func TestFeedFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(talksFeed))
	}))
	defer server.Close()

	client := httpclient.NewClient(httpclient.BrowserClient, httpclient.Options{Timeout: time.Second})
	fetcher := NewFeedFetcher(client)

	found, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if len(found) != 2 {
		t.Fatalf("Expected 2 URLs, got %d", len(found))
	}
	if found[0].Location != "/talks/daniel_levitin_how_to_stay_calm_when_you_know_you_ll_be_stressed" {
		t.Errorf("Unexpected first location '%s'", found[0].Location)
	}
	if found[1].Title != "Inside the mind of a master procrastinator" {
		t.Errorf("Unexpected second title '%s'", found[1].Title)
	}
}

func TestFeedFetcher_InvalidFeed(t *testing.T) {
	fetcher := NewFeedFetcher(nil)
	if _, err := fetcher.parse("not a feed"); err == nil {
		t.Error("Expected error for invalid feed, got nil")
	}
}
