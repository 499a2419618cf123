package urls

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadLinksFile_TrailingSeparator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.txt")
	content := "/talks/a, /talks/b, /talks/c, "
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write links file: %v", err)
	}

	links, err := ReadLinksFile(path)
	if err != nil {
		t.Fatalf("ReadLinksFile returned error: %v", err)
	}

	expected := []string{"/talks/a", "/talks/b", "/talks/c"}
	if len(links) != len(expected) {
		t.Fatalf("Expected %d links, got %d: %v", len(expected), len(links), links)
	}
	for i, want := range expected {
		if links[i] != want {
			t.Errorf("Expected link %d to be '%s', got '%s'", i, want, links[i])
		}
	}
}

func TestWriteThenReadLinksFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.txt")
	links := []string{"/talks/ken_robinson_says_schools_kill_creativity", "/talks/brene_brown_the_power_of_vulnerability"}

	if err := WriteLinksFile(path, links); err != nil {
		t.Fatalf("WriteLinksFile returned error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read links file: %v", err)
	}
	want := "/talks/ken_robinson_says_schools_kill_creativity, /talks/brene_brown_the_power_of_vulnerability, "
	if string(raw) != want {
		t.Errorf("Expected file content %q, got %q", want, string(raw))
	}

	got, err := ReadLinksFile(path)
	if err != nil {
		t.Fatalf("ReadLinksFile returned error: %v", err)
	}
	if len(got) != 2 || got[0] != links[0] || got[1] != links[1] {
		t.Errorf("Expected %v, got %v", links, got)
	}
}

func TestReadLinksFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.txt")
	if err := WriteLinksFile(path, nil); err != nil {
		t.Fatalf("WriteLinksFile returned error: %v", err)
	}

	links, err := ReadLinksFile(path)
	if err != nil {
		t.Fatalf("ReadLinksFile returned error: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("Expected no links, got %v", links)
	}
}

func TestReadLinksFile_NonexistentFile(t *testing.T) {
	if _, err := ReadLinksFile("/nonexistent/file/path.txt"); err == nil {
		t.Error("Expected error for nonexistent file, got nil")
	}
}

func TestRelativeLink(t *testing.T) {
	cases := map[string]string{
		"/talks/a":                          "/talks/a",
		"https://www.ted.com/talks/a":       "/talks/a",
		"https://www.ted.com/talks/a?lang=": "/talks/a",
		" /talks/b ":                        "/talks/b",
	}
	for in, want := range cases {
		if got := RelativeLink(in); got != want {
			t.Errorf("RelativeLink(%q) = %q, want %q", in, got, want)
		}
	}
}
