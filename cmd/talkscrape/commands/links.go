package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"talk-corpus/pkg/httpclient"
	"talk-corpus/pkg/pipeline"
	"talk-corpus/pkg/urls"
)

const (
	sourceListing = "listing"
	sourceFeed    = "feed"
)

type linksOptions struct {
	pages  int
	out    string
	source string
	append bool
}

var linksOpts linksOptions

func init() {
	addLinksFlags(linksCmd, &linksOpts)
	linksCmd.Flags().StringVar(&linksOpts.out, "out", "links.txt", "Link list file to write.")
	linksCmd.Flags().BoolVar(&linksOpts.append, "append", false, "Keep the links already in --out and add only new ones after them.")
	rootCmd.AddCommand(linksCmd)
}

func addLinksFlags(cmd *cobra.Command, opts *linksOptions) {
	cmd.Flags().IntVar(&opts.pages, "pages", 81, "Number of listing pages to walk.")
	cmd.Flags().StringVar(&opts.source, "source", sourceListing, "Where to read talk links from: listing or feed.")
}

func (o *linksOptions) apply(cmd *cobra.Command) {
	overrideInt(cmd, "pages", &cfg.NumPages, o.pages)
}

var linksCmd = &cobra.Command{
	Use:   "links [--pages N] [--out links.txt] [--source listing|feed]",
	Short: "Collects talk links from the paginated listing (or the RSS feed) into a link list file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		linksOpts.apply(cmd)
		overrideString(cmd, "out", &cfg.LinksFile, linksOpts.out)
		if err := validated(); err != nil {
			return err
		}

		client, err := pipeline.NewHTTPClient(cfg, log)
		if err != nil {
			return err
		}

		var previous []string
		if linksOpts.append {
			previous, err = readExistingLinks(cfg.LinksFile)
			if err != nil {
				return err
			}
		}

		links, err := collectLinks(cmd.Context(), client, linksOpts.source, previous)
		if err != nil {
			return err
		}

		all := append(previous, links...)
		if err := urls.WriteLinksFile(cfg.LinksFile, all); err != nil {
			return err
		}
		log.Info("link list written", "path", cfg.LinksFile, "new", len(links), "total", len(all))
		return nil
	},
}

// collectLinks gathers links from source, dropping any already in previous.
func collectLinks(ctx context.Context, client *httpclient.HTTPClient, source string, previous []string) ([]string, error) {
	var filters []urls.UrlFilter
	if len(previous) > 0 {
		seen := make(map[string]bool, len(previous))
		for _, link := range previous {
			seen[link] = true
		}
		filters = append(filters, urls.NewAlreadyFetchedFilter(seen))
	}

	switch source {
	case sourceListing:
		collector, err := pipeline.ListingCollectorBuilder(cfg, client, log, filters...)
		if err != nil {
			return nil, err
		}
		log.Info("collecting links", "listing", collector.ListingURL(), "pages", cfg.NumPages)
		return collector.Collect(ctx, cfg.NumPages)

	case sourceFeed:
		log.Info("collecting links", "feed", cfg.FeedURL)
		found, err := urls.NewFeedFetcher(client).Fetch(ctx, cfg.FeedURL)
		if err != nil {
			return nil, err
		}
		filters = append([]urls.UrlFilter{urls.NewContainsPathFilter(cfg.ListingPath + "/")}, filters...)
		return urls.ApplyFilters(ctx, urls.Locations(found), filters...)

	default:
		return nil, fmt.Errorf("unknown link source %q (want %s or %s)", source, sourceListing, sourceFeed)
	}
}

func readExistingLinks(path string) ([]string, error) {
	links, err := urls.ReadLinksFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return links, err
}
