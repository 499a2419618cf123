package sites

import (
	"errors"
	"fmt"
	"strings"

	"talk-corpus/pkg/urls"

	"github.com/PuerkitoBio/goquery"
)

const (
	// listingContainer wraps every result on a listing page.
	listingContainer = "#browse-results"
	// listingAnchor matches both links of a result: the thumbnail and the title.
	listingAnchor = "a.ga-link"
)

// ErrListingContainerNotFound is wrapped by ListingStructureError.
var ErrListingContainerNotFound = errors.New("listing results container not found")

// ListingStructureError means the listing markup no longer has the shape the
// extractor expects. It is fatal for link collection.
type ListingStructureError struct {
	Selector string
}

func (e *ListingStructureError) Error() string {
	return fmt.Sprintf("%v (selector %q)", ErrListingContainerNotFound, e.Selector)
}

func (e *ListingStructureError) Unwrap() error {
	return ErrListingContainerNotFound
}

// ExtractTalkLinks extracts the talk links from one listing page.
//
// Every result carries two anchors with the same href: one wrapping the
// thumbnail image and one wrapping the title. Anchor text is not unique, so
// the title link is chosen by position: the second anchor of each pair.
func ExtractTalkLinks(html string) ([]urls.URL, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	container := doc.Find(listingContainer).First()
	if container.Length() == 0 {
		return nil, &ListingStructureError{Selector: listingContainer}
	}

	result := []urls.URL{}
	container.Find(listingAnchor).Each(func(i int, link *goquery.Selection) {
		if i%2 == 0 {
			return
		}

		href, exists := link.Attr("href")
		href = strings.TrimSpace(href)
		if !exists || href == "" {
			return
		}

		result = append(result, urls.URL{
			Location: href,
			Title:    strings.TrimSpace(link.Text()),
		})
	})

	return result, nil
}
