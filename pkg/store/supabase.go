package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	supabase "github.com/supabase-community/supabase-go"
)

// SupabaseConfig selects a Supabase project. Either ConnectionString, or
// ProjectURL plus Password, must be set.
type SupabaseConfig struct {
	ConnectionString string
	// ProjectURL looks like "https://<project-ref>.supabase.co".
	ProjectURL string
	// APIKey is optional; with it the SDK client is created as well.
	APIKey string
	// Password is the database password, not the API key.
	Password string
	Pool     PoolConfig
}

// SupabaseClient writes to the project's Postgres database directly.
type SupabaseClient struct {
	sqlHandle
	sdk *supabase.Client
	cfg SupabaseConfig
}

func NewSupabaseClient(cfg SupabaseConfig) *SupabaseClient {
	return &SupabaseClient{cfg: cfg}
}

// pgxSupabaseParams are needed behind the Supabase pooler, which cannot keep
// prepared statements across transactions.
var pgxSupabaseParams = [][2]string{
	{"statement_cache_capacity", "0"},
	{"default_query_exec_mode", "simple_protocol"},
}

func (c *SupabaseClient) Connect(ctx context.Context) error {
	if c.cfg.ProjectURL != "" && c.cfg.APIKey != "" {
		sdk, err := supabase.NewClient(c.cfg.ProjectURL, c.cfg.APIKey, nil)
		if err != nil {
			return fmt.Errorf("initialize supabase SDK: %w", err)
		}
		c.sdk = sdk
	}

	dsn := c.cfg.ConnectionString
	if dsn == "" {
		var err error
		if dsn, err = supabaseDSN(c.cfg.ProjectURL, c.cfg.Password); err != nil {
			return err
		}
	}
	for _, kv := range pgxSupabaseParams {
		dsn = withParam(dsn, kv[0], kv[1])
	}

	db, err := openPGX(ctx, "supabase postgres", dsn, c.cfg.Pool)
	if err != nil {
		return err
	}
	c.db = db
	return nil
}

// SDK returns the Supabase SDK client, or nil if no API key was configured.
func (c *SupabaseClient) SDK() *supabase.Client {
	return c.sdk
}

// supabaseDSN derives the direct database address of a project:
// db.<project-ref>.supabase.co:5432, user postgres, database postgres.
func supabaseDSN(projectURL, password string) (string, error) {
	switch {
	case projectURL == "":
		return "", fmt.Errorf("supabase project URL is required without a connection string")
	case password == "":
		return "", fmt.Errorf("supabase database password is required without a connection string")
	}

	u, err := url.Parse(projectURL)
	if err != nil {
		return "", fmt.Errorf("parse supabase URL: %w", err)
	}
	ref, rest, ok := strings.Cut(u.Hostname(), ".")
	if !ok || ref == "" || rest == "" {
		return "", fmt.Errorf("supabase URL %q is not of the form https://<project-ref>.supabase.co", projectURL)
	}

	dsn := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword("postgres", password),
		Host:     "db." + ref + ".supabase.co:5432",
		Path:     "/postgres",
		RawQuery: "sslmode=require",
	}
	return dsn.String(), nil
}

// withParam adds key=value to a URL or keyword/value DSN unless key is already set.
func withParam(dsn, key, value string) string {
	if strings.Contains(dsn, key+"=") {
		return dsn
	}
	if !strings.Contains(dsn, "://") {
		return strings.TrimSpace(dsn) + " " + key + "=" + value
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + key + "=" + value
	}
	return dsn + "?" + key + "=" + value
}
