package content

import (
	"encoding/json"
	"errors"
	"testing"
)

const marker = `"__INITIAL_DATA__":`

func TestFindInitialData(t *testing.T) {
	got, err := FindInitialData(talkPageHTML, marker)
	if err != nil {
		t.Fatalf("FindInitialData returned error: %v", err)
	}
	if got != initialDataJSON {
		t.Fatalf("Extracted JSON does not match.\nwant: %s\ngot:  %s", initialDataJSON, got)
	}
	if !json.Valid([]byte(got)) {
		t.Error("Extracted JSON is not valid")
	}
}

func TestExtractJSONObject_TrailingFormatting(t *testing.T) {
	// the fixed-width trim of older scrapers breaks on any of these tails
	tails := []string{"})", "})\n", "}) ;\n\n  ", "}\n)\n"}
	for _, tail := range tails {
		text := `q("x", {"a":1,` + marker + ` {"b":[1,{"c":"]"}]}` + tail
		got, err := ExtractJSONObject(text, marker)
		if err != nil {
			t.Fatalf("tail %q: ExtractJSONObject returned error: %v", tail, err)
		}
		if got != `{"b":[1,{"c":"]"}]}` {
			t.Errorf("tail %q: unexpected object %s", tail, got)
		}
	}
}

func TestExtractJSONObject_EscapedQuotes(t *testing.T) {
	text := marker + `{"s":"a \"quoted\" } brace \\","n":2}})`
	got, err := ExtractJSONObject(text, marker)
	if err != nil {
		t.Fatalf("ExtractJSONObject returned error: %v", err)
	}
	if got != `{"s":"a \"quoted\" } brace \\","n":2}` {
		t.Errorf("Unexpected object %s", got)
	}
}

func TestExtractJSONObject_Errors(t *testing.T) {
	cases := map[string]error{
		`no marker here`:           ErrInitialDataNotFound,
		marker + ` "string value"`: ErrNoJSONAfterMarker,
		marker + `{"a":{"b":1}`:    ErrUnbalancedJSON,
		marker:                     ErrNoJSONAfterMarker,
	}
	for text, want := range cases {
		_, err := ExtractJSONObject(text, marker)
		if !errors.Is(err, want) {
			t.Errorf("ExtractJSONObject(%q) error = %v, want %v", text, err, want)
		}
	}
}

func TestFindInitialData_MissingScript(t *testing.T) {
	html := `<html><head><title>Too Many Requests</title></head><body><script>var x = 1;</script></body></html>`

	_, err := FindInitialData(html, marker)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var structErr *StructureError
	if !errors.As(err, &structErr) {
		t.Fatalf("Expected StructureError, got %T: %v", err, err)
	}
	if !errors.Is(err, ErrInitialDataNotFound) {
		t.Errorf("Expected ErrInitialDataNotFound, got %v", err)
	}
	if structErr.Title == "" {
		t.Error("Expected page title to be recovered for the error")
	}
}

func TestFindInitialData_EmptyHTML(t *testing.T) {
	if _, err := FindInitialData("   ", marker); !errors.Is(err, ErrEmptyHTML) {
		t.Errorf("Expected ErrEmptyHTML, got %v", err)
	}
}
