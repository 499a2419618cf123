package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrEmptyHTML           = errors.New("empty HTML content")
	ErrInitialDataNotFound = errors.New("initial data script not found")
	ErrNoJSONAfterMarker   = errors.New("no JSON object after marker")
	ErrUnbalancedJSON      = errors.New("unbalanced JSON object after marker")
)

// StructureError means a talk page no longer has the markup shape the
// extractor depends on. Title is whatever page title could be recovered, to
// help tell a redesign from an error page.
type StructureError struct {
	Title string
	Err   error
}

func (e *StructureError) Error() string {
	if e.Title == "" {
		return fmt.Sprintf("talk page structure: %v", e.Err)
	}
	return fmt.Sprintf("talk page structure (page title %q): %v", e.Title, e.Err)
}

func (e *StructureError) Unwrap() error {
	return e.Err
}

// FindInitialData locates the <script> carrying the page's initial state and
// returns the JSON object that follows marker inside it.
func FindInitialData(html, marker string) (string, error) {
	html = strings.TrimSpace(html)
	if html == "" {
		return "", &StructureError{Err: ErrEmptyHTML}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &StructureError{Err: fmt.Errorf("failed to parse HTML: %w", err)}
	}

	var script string
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		if strings.Contains(text, marker) {
			script = text
			return false
		}
		return true
	})

	if script == "" {
		return "", &StructureError{Title: PageTitle(html), Err: ErrInitialDataNotFound}
	}

	obj, err := ExtractJSONObject(script, marker)
	if err != nil {
		return "", &StructureError{Title: PageTitle(html), Err: err}
	}
	return obj, nil
}

// ExtractJSONObject returns the JSON object or array that starts right after
// the first occurrence of marker in text. The end is found by counting
// bracket depth outside of string literals, so whatever trails the object
// (closing calls, semicolons, whitespace) does not matter.
func ExtractJSONObject(text, marker string) (string, error) {
	idx := strings.Index(text, marker)
	if idx < 0 {
		return "", ErrInitialDataNotFound
	}

	start := idx + len(marker)
	for start < len(text) && isSpace(text[start]) {
		start++
	}
	if start >= len(text) || (text[start] != '{' && text[start] != '[') {
		return "", ErrNoJSONAfterMarker
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", ErrUnbalancedJSON
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
