package sites

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// listingHTML renders a listing page the way the site does: each result has
// an image link followed by a title link to the same talk.
func listingHTML(slugs ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><nav><a class="ga-link" href="/about">About</a></nav><div id="browse-results"><div class="row">`)
	for _, slug := range slugs {
		fmt.Fprintf(&b, `<div class="col">
  <div class="media">
    <a class="ga-link" href="/talks/%[1]s"><span class="thumb"><img src="/img/%[1]s.jpg"></span></a>
    <h4 class="h9 m5"><a class="ga-link" href="/talks/%[1]s">Title of %[1]s</a></h4>
  </div>
</div>`, slug)
	}
	b.WriteString(`</div></div></body></html>`)
	return b.String()
}

func TestExtractTalkLinks_PicksTitleAnchors(t *testing.T) {
	html := listingHTML("ken_robinson_says_schools_kill_creativity", "amy_cuddy_your_body_language", "simon_sinek_how_great_leaders")

	links, err := ExtractTalkLinks(html)
	if err != nil {
		t.Fatalf("ExtractTalkLinks returned error: %v", err)
	}

	if len(links) != 3 {
		t.Fatalf("Expected 3 links, got %d", len(links))
	}

	expected := []string{
		"/talks/ken_robinson_says_schools_kill_creativity",
		"/talks/amy_cuddy_your_body_language",
		"/talks/simon_sinek_how_great_leaders",
	}
	for i, want := range expected {
		if links[i].Location != want {
			t.Errorf("Expected link %d to be '%s', got '%s'", i, want, links[i].Location)
		}
		// The title anchor carries text, the thumbnail anchor does not.
		if !strings.HasPrefix(links[i].Title, "Title of ") {
			t.Errorf("Expected link %d to come from the title anchor, got title '%s'", i, links[i].Title)
		}
	}
}

func TestExtractTalkLinks_DuplicateTitlesKeptByPosition(t *testing.T) {
	html := listingHTML("first", "second")
	html = strings.ReplaceAll(html, "Title of first", "Same title")
	html = strings.ReplaceAll(html, "Title of second", "Same title")

	links, err := ExtractTalkLinks(html)
	if err != nil {
		t.Fatalf("ExtractTalkLinks returned error: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("Expected 2 links, got %d", len(links))
	}
	if links[0].Location != "/talks/first" || links[1].Location != "/talks/second" {
		t.Errorf("Expected listing order preserved, got %v", links)
	}
}

func TestExtractTalkLinks_EmptyListing(t *testing.T) {
	links, err := ExtractTalkLinks(listingHTML())
	if err != nil {
		t.Fatalf("ExtractTalkLinks returned error: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("Expected no links, got %d", len(links))
	}
}

func TestExtractTalkLinks_MissingContainer(t *testing.T) {
	_, err := ExtractTalkLinks(`<html><body><h1>429 Rate Limited too many requests.</h1></body></html>`)
	if err == nil {
		t.Fatal("Expected error for missing container, got nil")
	}

	var structErr *ListingStructureError
	if !errors.As(err, &structErr) {
		t.Fatalf("Expected ListingStructureError, got %T: %v", err, err)
	}
	if !errors.Is(err, ErrListingContainerNotFound) {
		t.Errorf("Expected error to wrap ErrListingContainerNotFound")
	}
}
