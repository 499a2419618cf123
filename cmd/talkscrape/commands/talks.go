package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"talk-corpus/pkg/pipeline"
	"talk-corpus/pkg/store"
	"talk-corpus/pkg/urls"
)

type talksOptions struct {
	links    string
	out      string
	skipped  string
	startAt  int
	pause    string
	mongoURI string
}

var talksOpts talksOptions

func init() {
	addTalksFlags(talksCmd, &talksOpts)
	talksCmd.Flags().StringVar(&talksOpts.links, "links", "links.txt", "Link list file written by the links command.")
	rootCmd.AddCommand(talksCmd)
}

func addTalksFlags(cmd *cobra.Command, opts *talksOptions) {
	cmd.Flags().StringVar(&opts.out, "out", "talks.jsonl", "Accepted talks output (JSON lines, appended).")
	cmd.Flags().StringVar(&opts.skipped, "skipped", "skipped.jsonl", "Skip log (JSON lines, appended).")
	cmd.Flags().IntVar(&opts.startAt, "start-at", 0, "Index in the link list to start from, to resume an interrupted run.")
	cmd.Flags().StringVar(&opts.pause, "pause", "60s", "Pause between batches of talks.")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "Also mirror every outcome into MongoDB at this URI.")
}

func (o *talksOptions) apply(cmd *cobra.Command) {
	overrideString(cmd, "out", &cfg.OutputFile, o.out)
	overrideString(cmd, "skipped", &cfg.SkippedFile, o.skipped)
	overrideInt(cmd, "start-at", &cfg.StartAt, o.startAt)
	overrideString(cmd, "pause", &cfg.PauseInterval, o.pause)
	overrideString(cmd, "mongo-uri", &cfg.Mongo.URI, o.mongoURI)
}

var talksCmd = &cobra.Command{
	Use:   "talks [--links links.txt] [--out talks.jsonl] [--skipped skipped.jsonl] [--start-at J]",
	Short: "Extracts metadata and transcripts for every talk in a link list.",
	RunE: func(cmd *cobra.Command, args []string) error {
		talksOpts.apply(cmd)
		overrideString(cmd, "links", &cfg.LinksFile, talksOpts.links)
		if err := validated(); err != nil {
			return err
		}

		links, err := urls.ReadLinksFile(cfg.LinksFile)
		if err != nil {
			return err
		}
		resumeLinks = cfg.LinksFile
		client, err := pipeline.NewHTTPClient(cfg, log)
		if err != nil {
			return err
		}
		return extractTalks(cmd.Context(), client, links)
	},
}

// extractTalks runs the extractor over links with the savers the config asks for.
func extractTalks(ctx context.Context, client pipeline.Getter, links []string) error {
	saver, closeSaver, err := openSaver(ctx)
	if err != nil {
		return err
	}
	defer closeSaver()

	extractor, err := pipeline.ExtractorBuilder(cfg, client, saver, log)
	if err != nil {
		return err
	}

	summary, err := extractor.Run(ctx, links, cfg.StartAt)
	log.Info("run summary",
		"processed", summary.Processed,
		"accepted", summary.Accepted,
		"skipped", summary.Skipped,
		"next_index", summary.Next,
	)
	return err
}

// openSaver returns the file store, plus the Mongo mirror when a URI is set.
func openSaver(ctx context.Context) (store.Saver, func(), error) {
	files := store.NewFileStore(cfg.OutputFile, cfg.SkippedFile)
	if cfg.Mongo.URI == "" {
		return files, func() {}, nil
	}

	mongoStore, err := store.NewMongoStore(ctx, store.MongoConfig{
		URI:               cfg.Mongo.URI,
		Database:          cfg.Mongo.Database,
		TalksCollection:   cfg.Mongo.TalksCollection,
		SkippedCollection: cfg.Mongo.SkippedCollection,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open mongo mirror: %w", err)
	}

	log.Info("mongo mirror connected", "database", cfg.Mongo.Database)

	closeFn := func() {
		if err := mongoStore.Close(context.Background()); err != nil {
			log.Warn("closing mongo mirror", "err", err)
		}
	}
	return store.NewMirroredSaver(files, log, mongoStore), closeFn, nil
}
