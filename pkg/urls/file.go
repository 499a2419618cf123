package urls

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LinkSeparator separates entries in a link list file. Every entry,
// including the last, is followed by it.
const LinkSeparator = ", "

// WriteLinksFile serializes links to path, replacing any existing file
func WriteLinksFile(path string, links []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create links file: %w", err)
	}

	w := bufio.NewWriter(file)
	for _, link := range links {
		if _, err := w.WriteString(link + LinkSeparator); err != nil {
			file.Close()
			return fmt.Errorf("failed to write links file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write links file: %w", err)
	}
	return file.Close()
}

// ReadLinksFile reads a link list written by WriteLinksFile. The empty entry
// after the terminal separator is dropped, as are blank entries.
func ReadLinksFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read links file: %w", err)
	}

	return ParseLinks(string(data)), nil
}

// ParseLinks splits link list content on LinkSeparator
func ParseLinks(content string) []string {
	parts := strings.Split(content, LinkSeparator)

	links := make([]string, 0, len(parts))
	for _, part := range parts {
		link := strings.TrimSpace(part)
		if link == "" {
			continue
		}
		links = append(links, link)
	}
	return links
}
