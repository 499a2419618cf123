package commands

import (
	"github.com/spf13/cobra"

	"talk-corpus/pkg/pipeline"
	"talk-corpus/pkg/urls"
)

var (
	runLinksOpts linksOptions
	runTalksOpts talksOptions
	runSkipLinks bool
	runLinkFile  string
)

func init() {
	addLinksFlags(runCmd, &runLinksOpts)
	addTalksFlags(runCmd, &runTalksOpts)
	runCmd.Flags().StringVar(&runLinkFile, "links", "links.txt", "Where to keep the collected link list.")
	runCmd.Flags().BoolVar(&runSkipLinks, "no-links-file", false, "Do not write the collected link list to disk.")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--pages N] [--out talks.jsonl] [--skipped skipped.jsonl]",
	Short: "Collects links and then extracts every talk, in one go.",
	RunE: func(cmd *cobra.Command, args []string) error {
		runLinksOpts.apply(cmd)
		runTalksOpts.apply(cmd)
		overrideString(cmd, "links", &cfg.LinksFile, runLinkFile)
		if err := validated(); err != nil {
			return err
		}

		client, err := pipeline.NewHTTPClient(cfg, log)
		if err != nil {
			return err
		}
		links, err := collectLinks(cmd.Context(), client, runLinksOpts.source, nil)
		if err != nil {
			return err
		}
		log.Info("links collected", "count", len(links))

		if !runSkipLinks {
			if err := urls.WriteLinksFile(cfg.LinksFile, links); err != nil {
				return err
			}
			log.Info("link list written", "path", cfg.LinksFile)
			resumeLinks = cfg.LinksFile
		}

		return extractTalks(cmd.Context(), client, links)
	},
}
