package urls

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"talk-corpus/pkg/logger"
	"talk-corpus/pkg/pacing"
)

// ListingConfig describes the paginated listing endpoint.
type ListingConfig struct {
	BaseURL     string // e.g. "https://www.ted.com"
	ListingPath string // e.g. "/talks"
	PageKey     string
	SortKey     string
	SortValue   string
}

// PageError reports which listing page broke link collection.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("listing page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// Collector walks listing pages 1..N and gathers talk links in page order,
// and within a page in listing order.
type Collector struct {
	cfg     ListingConfig
	fetcher *HTMLFetcher
	pacer   *pacing.Pacer
	filters []UrlFilter
	log     *logger.Logger
}

// NewCollector creates a link collector. pacer may be nil to disable pauses.
func NewCollector(cfg ListingConfig, fetcher *HTMLFetcher, pacer *pacing.Pacer, log *logger.Logger, filters ...UrlFilter) *Collector {
	if log == nil {
		log = logger.Nop()
	}
	return &Collector{
		cfg:     cfg,
		fetcher: fetcher,
		pacer:   pacer,
		filters: filters,
		log:     log.Component("collector"),
	}
}

// ListingURL returns the listing endpoint without query parameters
func (c *Collector) ListingURL() string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + c.cfg.ListingPath
}

func (c *Collector) pageQuery(page int) map[string]string {
	query := map[string]string{c.cfg.PageKey: strconv.Itoa(page)}
	if c.cfg.SortKey != "" {
		query[c.cfg.SortKey] = c.cfg.SortValue
	}
	return query
}

// Collect fetches pages 1..numPages. A page that fails to fetch or parse
// aborts the whole collection with a *PageError; no partial results are
// returned for a failed run.
func (c *Collector) Collect(ctx context.Context, numPages int) ([]string, error) {
	if numPages <= 0 {
		return nil, fmt.Errorf("number of pages must be positive, got %d", numPages)
	}

	var links []string
	for page := 1; page <= numPages; page++ {
		pageLinks, err := c.collectPage(ctx, page)
		if err != nil {
			return nil, &PageError{Page: page, Err: err}
		}
		links = append(links, pageLinks...)
		c.log.Debug("collected listing page", "page", page, "links", len(pageLinks), "total", len(links))

		if page == numPages || !c.pacer.Due(page) {
			continue
		}
		c.log.Info("taking a break", "pages", page, "links", len(links), "pause", c.pacer.Interval())
		if _, err := c.pacer.After(ctx, page); err != nil {
			return nil, err
		}
	}

	c.log.Info("link collection finished", "pages", numPages, "links", len(links))
	return links, nil
}

func (c *Collector) collectPage(ctx context.Context, page int) ([]string, error) {
	found, err := c.fetcher.FetchWithQuery(ctx, c.ListingURL(), c.pageQuery(page))
	if err != nil {
		return nil, err
	}

	for i := range found {
		found[i].Location = RelativeLink(found[i].Location)
	}

	return ApplyFilters(ctx, Locations(found), c.filters...)
}
