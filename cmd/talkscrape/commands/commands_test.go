package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"talk-corpus/pkg/config"
	"talk-corpus/pkg/logger"
	"talk-corpus/pkg/pipeline"
	"talk-corpus/pkg/urls"
)

func TestCollectLinks_UnknownSource(t *testing.T) {
	cfg = config.Default()
	log = logger.Nop()

	_, err := collectLinks(context.Background(), nil, "sitemap", nil)
	require.Error(t, err)
}

func TestReadExistingLinks(t *testing.T) {
	dir := t.TempDir()

	links, err := readExistingLinks(filepath.Join(dir, "missing.txt"))
	require.NoError(t, err)
	require.Empty(t, links)

	path := filepath.Join(dir, "links.txt")
	require.NoError(t, urls.WriteLinksFile(path, []string{"/talks/a", "/talks/b"}))
	links, err = readExistingLinks(path)
	require.NoError(t, err)
	require.Equal(t, []string{"/talks/a", "/talks/b"}, links)
}

func TestConnectPostgres_NoTarget(t *testing.T) {
	cfg = config.Default()
	log = logger.Nop()

	_, err := connectPostgres(context.Background())
	require.Error(t, err)
}

func TestResumeHint(t *testing.T) {
	indexErr := fmt.Errorf("run: %w", &pipeline.IndexError{Index: 7, Link: "/talks/x", Err: errors.New("boom")})

	require.Equal(t, "resume with: talkscrape talks --links links.txt --start-at 7", resumeHint(indexErr, "links.txt"))
	// links only held in memory: nothing to resume from
	require.Empty(t, resumeHint(indexErr, ""))
	require.Empty(t, resumeHint(errors.New("config broken"), "links.txt"))
}
