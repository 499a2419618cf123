package urls

import (
	"context"
	"testing"
)

func TestApplyFilters(t *testing.T) {
	links := []string{"/talks/a", "/about", "/talks/b", "/talks/c"}
	filters := []UrlFilter{
		NewContainsPathFilter("/talks/"),
		NewAlreadyFetchedFilter(map[string]bool{"/talks/b": true}),
	}

	got, err := ApplyFilters(context.Background(), links, filters...)
	if err != nil {
		t.Fatalf("ApplyFilters returned error: %v", err)
	}

	expected := []string{"/talks/a", "/talks/c"}
	if len(got) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Expected %s at %d, got %s", expected[i], i, got[i])
		}
	}
}
