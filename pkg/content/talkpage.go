package content

import (
	"encoding/json"
	"errors"
	"fmt"

	"talk-corpus/pkg/domain"
)

// ErrUnexpectedShape is wrapped by every ShapeError.
var ErrUnexpectedShape = errors.New("unexpected initial data shape")

// ShapeError names the field of the initial data that is missing or has the wrong type.
type ShapeError struct {
	Field string
	Err   error
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", ErrUnexpectedShape, e.Field, e.Err)
	}
	return fmt.Sprintf("%v: %s missing", ErrUnexpectedShape, e.Field)
}

func (e *ShapeError) Unwrap() error {
	return ErrUnexpectedShape
}

// TalkPage is the metadata of the primary talk on a talk page.
type TalkPage struct {
	TalkID      string
	Title       string
	Speaker     string
	SpeakerIDs  []string
	Tags        []string
	VideoTypeID string
	Views       int64
	Comments    int64
	Date        string
	Categories  []domain.Category
	Language    string
	Duration    int64
	Event       string
}

type initialData struct {
	Comments *struct {
		Count domain.FlexInt `json:"count"`
	} `json:"comments"`
	Language string          `json:"language"`
	Event    json.RawMessage `json:"event"`
	Talks    []talkEntry     `json:"talks"`
}

type talkEntry struct {
	ID          *domain.FlexString `json:"id"`
	Title       *string            `json:"title"`
	SpeakerName string             `json:"speaker_name"`
	Speakers    []struct {
		ID domain.FlexString `json:"id"`
	} `json:"speakers"`
	Tags      []string `json:"tags"`
	VideoType *struct {
		ID domain.FlexString `json:"id"`
	} `json:"video_type"`
	ViewedCount domain.FlexInt    `json:"viewed_count"`
	RecordedAt  string            `json:"recorded_at"`
	Duration    domain.FlexInt    `json:"duration"`
	Ratings     []domain.Category `json:"ratings"`
}

// ParseTalkPage decodes and validates the initial data object of a talk page.
// Missing comments default to zero; a missing talk, id or title is a ShapeError.
func ParseTalkPage(raw string) (*TalkPage, error) {
	var data initialData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, &ShapeError{Field: "initial data", Err: err}
	}

	if len(data.Talks) == 0 {
		return nil, &ShapeError{Field: "talks[0]"}
	}
	talk := data.Talks[0]
	if talk.ID == nil || *talk.ID == "" {
		return nil, &ShapeError{Field: "talks[0].id"}
	}
	if talk.Title == nil {
		return nil, &ShapeError{Field: "talks[0].title"}
	}

	event, err := decodeEvent(data.Event)
	if err != nil {
		return nil, &ShapeError{Field: "event", Err: err}
	}

	page := &TalkPage{
		TalkID:     string(*talk.ID),
		Title:      *talk.Title,
		Speaker:    talk.SpeakerName,
		SpeakerIDs: make([]string, 0, len(talk.Speakers)),
		Tags:       talk.Tags,
		Views:      int64(talk.ViewedCount),
		Date:       talk.RecordedAt,
		Categories: talk.Ratings,
		Language:   data.Language,
		Duration:   int64(talk.Duration),
		Event:      event,
	}
	for _, s := range talk.Speakers {
		page.SpeakerIDs = append(page.SpeakerIDs, string(s.ID))
	}
	if talk.VideoType != nil {
		page.VideoTypeID = string(talk.VideoType.ID)
	}
	if data.Comments != nil {
		page.Comments = int64(data.Comments.Count)
	}
	if page.Tags == nil {
		page.Tags = []string{}
	}
	if page.Categories == nil {
		page.Categories = []domain.Category{}
	}

	return page, nil
}

// decodeEvent accepts either an event name or an event object with a name.
func decodeEvent(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name, nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", err
	}
	return obj.Name, nil
}

// Record assembles the accepted record from the page metadata and the
// flattened transcript. The caller must have checked there is at least one speaker.
func (p *TalkPage) Record(tokens []string) *domain.TalkRecord {
	speakerID := ""
	if len(p.SpeakerIDs) > 0 {
		speakerID = p.SpeakerIDs[0]
	}
	if tokens == nil {
		tokens = []string{}
	}
	return &domain.TalkRecord{
		Title:       p.Title,
		TalkID:      p.TalkID,
		Speaker:     p.Speaker,
		SpeakerID:   speakerID,
		NumViews:    p.Views,
		NumComments: p.Comments,
		Date:        p.Date,
		Tags:        p.Tags,
		Categories:  p.Categories,
		Language:    p.Language,
		Duration:    p.Duration,
		Event:       p.Event,
		Tokens:      tokens,
	}
}

// Skipped builds the skip log entry for this talk.
func (p *TalkPage) Skipped(link string, reason domain.SkipReason) *domain.SkippedTalk {
	return &domain.SkippedTalk{
		Title:   p.Title,
		TalkID:  p.TalkID,
		Speaker: p.Speaker,
		Link:    link,
		Reason:  reason.Kind,
		Detail:  reason.Detail,
	}
}
