package content

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrTranscriptShape means the transcript document is not
// {paragraphs: [{cues: [{text}]}]}. It is recoverable: the talk is skipped.
var ErrTranscriptShape = errors.New("unexpected transcript shape")

type transcriptDoc struct {
	Paragraphs *[]struct {
		Cues *[]struct {
			Text *string `json:"text"`
		} `json:"cues"`
	} `json:"paragraphs"`
}

// ParseTranscript flattens a transcript document into cue texts, paragraphs
// in order and cues in order within each paragraph.
func ParseTranscript(data []byte) ([]string, error) {
	var doc transcriptDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscriptShape, err)
	}
	if doc.Paragraphs == nil {
		return nil, fmt.Errorf("%w: paragraphs missing", ErrTranscriptShape)
	}

	tokens := []string{}
	for i, paragraph := range *doc.Paragraphs {
		if paragraph.Cues == nil {
			return nil, fmt.Errorf("%w: paragraph %d: cues missing", ErrTranscriptShape, i)
		}
		for j, cue := range *paragraph.Cues {
			if cue.Text == nil {
				return nil, fmt.Errorf("%w: paragraph %d cue %d: text missing", ErrTranscriptShape, i, j)
			}
			tokens = append(tokens, *cue.Text)
		}
	}

	return tokens, nil
}
