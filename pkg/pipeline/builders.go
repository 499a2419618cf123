package pipeline

import (
	"fmt"

	"talk-corpus/pkg/config"
	"talk-corpus/pkg/httpclient"
	"talk-corpus/pkg/logger"
	"talk-corpus/pkg/pacing"
	"talk-corpus/pkg/sites"
	"talk-corpus/pkg/store"
	"talk-corpus/pkg/urls"
)

// NewHTTPClient builds the shared HTTP client from the timeout, retry and
// request budget settings.
func NewHTTPClient(cfg config.Config, log *logger.Logger) (*httpclient.HTTPClient, error) {
	d, err := cfg.Durations()
	if err != nil {
		return nil, err
	}

	opts := httpclient.Options{
		Timeout:           d.RequestTimeout,
		RetryCount:        cfg.RetryCount,
		RetryWait:         d.RetryWait,
		RetryMaxWait:      d.RetryMaxWait,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.RequestBurst,
		Logger:            log,
	}
	return httpclient.NewClient(httpclient.ClientType(cfg.ClientType), opts), nil
}

// ListingCollectorBuilder builds the link collector for the paginated listing
// Pipeline: [listing page 1..N] → [title anchors] → [/talks/ filter]
func ListingCollectorBuilder(cfg config.Config, client *httpclient.HTTPClient, log *logger.Logger, filters ...urls.UrlFilter) (*urls.Collector, error) {
	d, err := cfg.Durations()
	if err != nil {
		return nil, err
	}

	listing := urls.ListingConfig{
		BaseURL:     cfg.BaseURL,
		ListingPath: cfg.ListingPath,
		PageKey:     cfg.PageKey,
		SortKey:     cfg.SortKey,
		SortValue:   cfg.SortValue,
	}
	filters = append([]urls.UrlFilter{urls.NewContainsPathFilter(cfg.ListingPath + "/")}, filters...)
	fetcher := urls.NewHTMLFetcher(client, sites.ExtractTalkLinks)

	return urls.NewCollector(listing, fetcher, pacing.New(cfg.PagesPerPause, d.Pause), log, filters...), nil
}

// ExtractorBuilder builds the talk extractor
// Pipeline: links → [talk page] → [initial data] → [policy] → [transcript] → saver
func ExtractorBuilder(cfg config.Config, client Getter, saver store.Saver, log *logger.Logger) (*Extractor, error) {
	if saver == nil {
		return nil, fmt.Errorf("saver is required")
	}
	d, err := cfg.Durations()
	if err != nil {
		return nil, err
	}

	processor := NewHTTPTalkProcessor(client, ProcessorConfig{
		BaseURL:              cfg.BaseURL,
		TranscriptPathFormat: cfg.TranscriptPathFormat,
		TranscriptLanguage:   cfg.TranscriptLanguage,
		InitialDataMarker:    cfg.InitialDataMarker,
	})

	return NewExtractor(processor, saver, pacing.New(cfg.TalksPerPause, d.Pause), log), nil
}
