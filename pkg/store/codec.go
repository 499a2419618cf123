package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"talk-corpus/pkg/domain"
)

// encodeLine renders v as one JSON line, newline included. HTML characters
// are kept literal since the output is a text corpus, not a web page.
func encodeLine(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalTalk renders a TalkRecord as one line of the accepted output
func MarshalTalk(talk *domain.TalkRecord) ([]byte, error) {
	if talk == nil {
		return nil, fmt.Errorf("talk record is nil")
	}
	return encodeLine(talk)
}

// ParseTalkLine parses one line of the accepted output
func ParseTalkLine(line []byte) (*domain.TalkRecord, error) {
	var talk domain.TalkRecord
	if err := json.Unmarshal(line, &talk); err != nil {
		return nil, fmt.Errorf("parse talk line: %w", err)
	}
	if talk.TalkID == "" {
		return nil, fmt.Errorf("parse talk line: talk_id missing")
	}
	return &talk, nil
}

// MarshalSkipped renders a SkippedTalk as one line of the skip log
func MarshalSkipped(skipped *domain.SkippedTalk) ([]byte, error) {
	if skipped == nil {
		return nil, fmt.Errorf("skipped talk is nil")
	}
	return encodeLine(skipped)
}

// ParseSkippedLine parses one line of the skip log
func ParseSkippedLine(line []byte) (*domain.SkippedTalk, error) {
	var skipped domain.SkippedTalk
	if err := json.Unmarshal(line, &skipped); err != nil {
		return nil, fmt.Errorf("parse skipped line: %w", err)
	}
	return &skipped, nil
}
