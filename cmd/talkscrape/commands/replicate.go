package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"talk-corpus/pkg/replication"
	"talk-corpus/pkg/store"
)

var (
	replicateIn       string
	replicateDSN      string
	replicateSupaURL  string
	replicateSupaKey  string
	replicateSupaPass string
)

func init() {
	replicateCmd.Flags().StringVar(&replicateIn, "in", "talks.jsonl", "Accepted talks file to load.")
	replicateCmd.Flags().StringVar(&replicateDSN, "postgres-dsn", "", "Postgres connection string.")
	replicateCmd.Flags().StringVar(&replicateSupaURL, "supabase-url", "", "Supabase project URL, used when no DSN is given.")
	replicateCmd.Flags().StringVar(&replicateSupaKey, "supabase-key", "", "Supabase API key.")
	replicateCmd.Flags().StringVar(&replicateSupaPass, "supabase-password", "", "Supabase database password.")
	rootCmd.AddCommand(replicateCmd)
}

var replicateCmd = &cobra.Command{
	Use:   "replicate [--in talks.jsonl] (--postgres-dsn DSN | --supabase-url URL --supabase-password PASS)",
	Short: "Loads the accepted talks file into a Postgres table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		overrideString(cmd, "in", &cfg.OutputFile, replicateIn)
		overrideString(cmd, "postgres-dsn", &cfg.Postgres.DSN, replicateDSN)
		overrideString(cmd, "supabase-url", &cfg.Postgres.SupabaseURL, replicateSupaURL)
		overrideString(cmd, "supabase-key", &cfg.Postgres.SupabaseKey, replicateSupaKey)
		overrideString(cmd, "supabase-password", &cfg.Postgres.SupabasePassword, replicateSupaPass)

		ctx := cmd.Context()
		pg, err := connectPostgres(ctx)
		if err != nil {
			return err
		}
		defer pg.Close()

		replicator, err := replication.NewReplicator(pg, log)
		if err != nil {
			return err
		}
		_, err = replicator.ReplicateTalksFileToPostgres(ctx, cfg.OutputFile)
		return err
	},
}

// connectPostgres prefers a plain DSN and falls back to the Supabase settings.
func connectPostgres(ctx context.Context) (store.DBProvider, error) {
	switch {
	case cfg.Postgres.DSN != "":
		client := store.NewPostgresClient(store.PostgresConfig{DSN: cfg.Postgres.DSN})
		if err := client.Connect(ctx); err != nil {
			return nil, err
		}
		log.Info("connected to postgres")
		return client, nil

	case cfg.Postgres.SupabaseURL != "":
		client := store.NewSupabaseClient(store.SupabaseConfig{
			ProjectURL: cfg.Postgres.SupabaseURL,
			APIKey:     cfg.Postgres.SupabaseKey,
			Password:   cfg.Postgres.SupabasePassword,
		})
		if err := client.Connect(ctx); err != nil {
			return nil, err
		}
		log.Info("connected to supabase", "url", cfg.Postgres.SupabaseURL, "sdk", client.SDK() != nil)
		return client, nil

	default:
		return nil, errors.New("no replication target: set --postgres-dsn or --supabase-url")
	}
}
