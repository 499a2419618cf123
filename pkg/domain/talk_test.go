package domain

import (
	"encoding/json"
	"testing"
)

func TestFlexString_StringOrNumber(t *testing.T) {
	var v struct {
		A FlexString `json:"a"`
		B FlexString `json:"b"`
		C FlexString `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"1569","b":1569,"c":null}`), &v); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if v.A != "1569" || v.B != "1569" || v.C != "" {
		t.Errorf("Expected 1569/1569/empty, got %q/%q/%q", v.A, v.B, v.C)
	}

	if err := json.Unmarshal([]byte(`{"a":{"x":1}}`), &v); err == nil {
		t.Error("Expected error for object id, got nil")
	}
}

func TestFlexInt(t *testing.T) {
	var v struct {
		A FlexInt `json:"a"`
		B FlexInt `json:"b"`
		C FlexInt `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":1200,"b":"34","c":812.6}`), &v); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if v.A != 1200 || v.B != 34 || v.C != 812 {
		t.Errorf("Expected 1200/34/812, got %d/%d/%d", v.A, v.B, v.C)
	}
}

func TestSkipReason_String(t *testing.T) {
	if got := PolicySkip(DetailPerformance).String(); got != "policy:performance" {
		t.Errorf("Expected 'policy:performance', got '%s'", got)
	}
	if got := TranscriptSkip(DetailTranscriptShape).String(); got != "transcript:transcript_shape" {
		t.Errorf("Expected 'transcript:transcript_shape', got '%s'", got)
	}
}
