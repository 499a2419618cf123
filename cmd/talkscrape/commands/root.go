package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"talk-corpus/pkg/config"
	"talk-corpus/pkg/logger"
	"talk-corpus/pkg/pipeline"
)

var (
	configPath string
	logMode    string

	// loaded by the root PersistentPreRunE
	cfg config.Config
	log *logger.Logger

	// resumeLinks is the link list on disk that a failed extraction can be
	// resumed from; empty when the links only lived in memory.
	resumeLinks string
)

var rootCmd = &cobra.Command{
	Use:           "talkscrape",
	Short:         "talkscrape collects talk links and extracts talk metadata and transcripts into JSONL files.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if cmd.Flags().Changed("log-mode") {
			cfg.LogMode = logMode
		}

		log, err = logger.New(cfg.LogMode)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "talkscrape.json5", "json5 config file; <name>.local.json5 next to it overrides it. A missing file is fine.")
	rootCmd.PersistentFlags().StringVar(&logMode, "log-mode", "dev", "Log output: dev (console) or prod (JSON).")
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, err)
	if hint := resumeHint(err, resumeLinks); hint != "" {
		fmt.Fprintln(os.Stderr, hint)
	}
	os.Exit(1)
}

// resumeHint tells the operator how to continue after an extraction error.
func resumeHint(err error, linksFile string) string {
	var indexErr *pipeline.IndexError
	if linksFile == "" || !errors.As(err, &indexErr) {
		return ""
	}
	return fmt.Sprintf("resume with: talkscrape talks --links %s --start-at %d", linksFile, indexErr.Index)
}

// validated checks the merged config once all flag overrides are applied.
func validated() error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func overrideString(cmd *cobra.Command, name string, target *string, value string) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}

func overrideInt(cmd *cobra.Command, name string, target *int, value int) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}
