package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// Config holds every knob both stages need. Keys missing from a config file
// keep the defaults from Default().
type Config struct {
	// BaseURL is the site root; all talk links are relative to it.
	BaseURL string `json:"base_url"`
	// ListingPath is the paginated listing endpoint, e.g. "/talks".
	ListingPath string `json:"listing_path"`
	PageKey     string `json:"page_key"`
	SortKey     string `json:"sort_key"`
	SortValue   string `json:"sort_value"`
	// NumPages is how many listing pages exist on the site (81 at time of writing).
	NumPages int `json:"num_pages"`
	// FeedURL is an RSS feed of recent talks, used by the feed link source.
	FeedURL string `json:"feed_url"`

	// TranscriptPathFormat is formatted with the talk id.
	TranscriptPathFormat string `json:"transcript_path_format"`
	TranscriptLanguage   string `json:"transcript_language"`
	InitialDataMarker    string `json:"initial_data_marker"`

	LinksFile   string `json:"links_file"`
	OutputFile  string `json:"output_file"`
	SkippedFile string `json:"skipped_file"`
	StartAt     int    `json:"start_at"`

	// Courtesy pacing: pause PauseInterval after every Nth page/talk.
	PagesPerPause int    `json:"pages_per_pause"`
	TalksPerPause int    `json:"talks_per_pause"`
	PauseInterval string `json:"pause_interval"`

	RequestTimeout    string  `json:"request_timeout"`
	RetryCount        int     `json:"retry_count"`
	RetryWait         string  `json:"retry_wait"`
	RetryMaxWait      string  `json:"retry_max_wait"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	RequestBurst      int     `json:"request_burst"`
	ClientType        string  `json:"client_type"`

	LogMode string `json:"log_mode"`

	Mongo    MongoConfig    `json:"mongo"`
	Postgres PostgresConfig `json:"postgres"`
}

// MongoConfig configures the optional Mongo mirror of scraped talks.
type MongoConfig struct {
	URI               string `json:"uri"`
	Database          string `json:"database"`
	TalksCollection   string `json:"talks_collection"`
	SkippedCollection string `json:"skipped_collection"`
}

// PostgresConfig configures the replication target. Either DSN or the
// Supabase fields are used.
type PostgresConfig struct {
	DSN              string `json:"dsn"`
	SupabaseURL      string `json:"supabase_url"`
	SupabaseKey      string `json:"supabase_key"`
	SupabasePassword string `json:"supabase_password"`
}

// Default returns the configuration matching the site as observed when the
// scraper was written.
func Default() Config {
	return Config{
		BaseURL:              "https://www.ted.com",
		ListingPath:          "/talks",
		PageKey:              "page",
		SortKey:              "sort",
		SortValue:            "popular",
		NumPages:             81,
		FeedURL:              "https://www.ted.com/talks/rss",
		TranscriptPathFormat: "/talks/%s/transcript.json",
		TranscriptLanguage:   "en",
		InitialDataMarker:    `"__INITIAL_DATA__":`,
		LinksFile:            "links.txt",
		OutputFile:           "talks.jsonl",
		SkippedFile:          "skipped.jsonl",
		PagesPerPause:        10,
		TalksPerPause:        5,
		PauseInterval:        "60s",
		RequestTimeout:       "30s",
		RetryCount:           3,
		RetryWait:            "5s",
		RetryMaxWait:         "2m",
		RequestsPerSecond:    0.5,
		RequestBurst:         1,
		ClientType:           "browser",
		LogMode:              "dev",
		Mongo: MongoConfig{
			Database:          "talkcorpus",
			TalksCollection:   "talks",
			SkippedCollection: "skipped_talks",
		},
	}
}

// Durations is the parsed form of the duration strings in Config.
type Durations struct {
	Pause          time.Duration
	RequestTimeout time.Duration
	RetryWait      time.Duration
	RetryMaxWait   time.Duration
}

// Durations parses the duration fields.
func (c Config) Durations() (Durations, error) {
	var (
		d   Durations
		err error
	)
	if d.Pause, err = parseDuration("pause_interval", c.PauseInterval); err != nil {
		return d, err
	}
	if d.RequestTimeout, err = parseDuration("request_timeout", c.RequestTimeout); err != nil {
		return d, err
	}
	if d.RetryWait, err = parseDuration("retry_wait", c.RetryWait); err != nil {
		return d, err
	}
	if d.RetryMaxWait, err = parseDuration("retry_max_wait", c.RetryMaxWait); err != nil {
		return d, err
	}
	return d, nil
}

func parseDuration(name, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", name)
	}
	return d, nil
}

// Validate checks the values both stages rely on.
func (c Config) Validate() error {
	var errs []error
	if c.BaseURL == "" {
		errs = append(errs, errors.New("base_url is required"))
	}
	if c.NumPages <= 0 {
		errs = append(errs, errors.New("num_pages must be positive"))
	}
	if c.StartAt < 0 {
		errs = append(errs, errors.New("start_at must not be negative"))
	}
	if c.PagesPerPause < 0 || c.TalksPerPause < 0 {
		errs = append(errs, errors.New("pause counts must not be negative"))
	}
	if c.RetryCount < 0 {
		errs = append(errs, errors.New("retry_count must not be negative"))
	}
	if c.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("requests_per_second must not be negative"))
	}
	if !strings.Contains(c.TranscriptPathFormat, "%s") {
		errs = append(errs, errors.New("transcript_path_format must contain %s"))
	}
	if c.InitialDataMarker == "" {
		errs = append(errs, errors.New("initial_data_marker is required"))
	}
	if _, err := c.Durations(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func splitExt(f string) (string, string) {
	ext := filepath.Ext(f)
	return strings.TrimSuffix(f, ext), strings.TrimPrefix(ext, ".")
}

// Load reads a json5 config file on top of Default(), then merges
// <name>.local.<ext> on top of that. Missing files are not an error. Keys a
// file sets win even when their value is zero, so `talks_per_pause: 0` turns
// pausing off; keys it leaves out keep the previous value.
func Load(name string) (Config, error) {
	out := Default()
	if name == "" {
		return out, nil
	}

	prefix, ext := splitExt(name)
	files := []string{name, fmt.Sprintf("%s.local.%s", prefix, ext)}

	for _, path := range files {
		layer, found, err := readFile(path, out)
		if err != nil {
			return out, fmt.Errorf("read config %s: %w", path, err)
		}
		if !found {
			continue
		}
		if err := mergo.Merge(&out, layer, mergo.WithOverride, mergo.WithOverwriteWithEmptyValue); err != nil {
			return out, fmt.Errorf("merge config %s: %w", path, err)
		}
	}

	return out, nil
}

// readFile decodes path onto a copy of base, so the returned layer holds
// base's values for every key the file does not mention.
func readFile(path string, base Config) (Config, bool, error) {
	layer := base
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return layer, false, nil
	}
	if err != nil {
		return layer, false, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return layer, false, nil
	}
	if err := json5.Unmarshal(data, &layer); err != nil {
		return layer, false, err
	}
	return layer, true, nil
}
