package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "talkscrape.json5"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.NumPages != 81 {
		t.Errorf("Expected default NumPages 81, got %d", cfg.NumPages)
	}
	if cfg.SortValue != "popular" {
		t.Errorf("Expected default sort 'popular', got '%s'", cfg.SortValue)
	}
}

func TestLoad_LocalFileOverridesBase(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "talkscrape.json5")
	local := filepath.Join(dir, "talkscrape.local.json5")

	baseContent := `{
  // comments are fine in json5
  num_pages: 3,
  output_file: "base.jsonl",
  pause_interval: "1s",
}`
	localContent := `{ output_file: "local.jsonl", mongo: { uri: "mongodb://localhost:27017" } }`

	if err := os.WriteFile(base, []byte(baseContent), 0o600); err != nil {
		t.Fatalf("Failed to write base config: %v", err)
	}
	if err := os.WriteFile(local, []byte(localContent), 0o600); err != nil {
		t.Fatalf("Failed to write local config: %v", err)
	}

	cfg, err := Load(base)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.NumPages != 3 {
		t.Errorf("Expected NumPages 3, got %d", cfg.NumPages)
	}
	if cfg.OutputFile != "local.jsonl" {
		t.Errorf("Expected local override 'local.jsonl', got '%s'", cfg.OutputFile)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("Expected mongo uri from local file, got '%s'", cfg.Mongo.URI)
	}
	// untouched fields keep their defaults
	if cfg.Mongo.TalksCollection != "talks" {
		t.Errorf("Expected default talks collection, got '%s'", cfg.Mongo.TalksCollection)
	}
	if cfg.TalksPerPause != 5 {
		t.Errorf("Expected default TalksPerPause 5, got %d", cfg.TalksPerPause)
	}

	d, err := cfg.Durations()
	if err != nil {
		t.Fatalf("Durations returned error: %v", err)
	}
	if d.Pause != time.Second {
		t.Errorf("Expected pause 1s, got %s", d.Pause)
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default config should validate, got: %v", err)
	}

	cfg := Default()
	cfg.NumPages = 0
	cfg.PauseInterval = "soon"
	cfg.TranscriptPathFormat = "/talks/transcript.json"
	if err := cfg.Validate(); err == nil {
		t.Fatal("Expected validation error, got nil")
	}
}

func TestLoad_ExplicitZeroDisablesFeature(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "talkscrape.json5")
	local := filepath.Join(dir, "talkscrape.local.json5")

	baseContent := `{ talks_per_pause: 0, retry_count: 0, requests_per_second: 0, mongo: { uri: "" } }`
	// the local file re-enables one knob and mentions nothing else
	localContent := `{ retry_count: 2 }`
	if err := os.WriteFile(base, []byte(baseContent), 0o600); err != nil {
		t.Fatalf("Failed to write base config: %v", err)
	}
	if err := os.WriteFile(local, []byte(localContent), 0o600); err != nil {
		t.Fatalf("Failed to write local config: %v", err)
	}

	cfg, err := Load(base)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.TalksPerPause != 0 {
		t.Errorf("Expected TalksPerPause 0 from file, got %d", cfg.TalksPerPause)
	}
	if cfg.RequestsPerSecond != 0 {
		t.Errorf("Expected RequestsPerSecond 0 from file, got %v", cfg.RequestsPerSecond)
	}
	if cfg.RetryCount != 2 {
		t.Errorf("Expected RetryCount 2 from local file, got %d", cfg.RetryCount)
	}
	// keys neither file sets keep their defaults
	if cfg.PagesPerPause != 10 {
		t.Errorf("Expected default PagesPerPause 10, got %d", cfg.PagesPerPause)
	}
	if cfg.Mongo.Database != "talkcorpus" {
		t.Errorf("Expected default mongo database, got '%s'", cfg.Mongo.Database)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected zeroed knobs to validate, got: %v", err)
	}
}
