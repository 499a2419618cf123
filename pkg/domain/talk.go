package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TalkRecord is one accepted talk. Field names are the keys of the accepted
// output file; bson tags mirror them for the Mongo store.
type TalkRecord struct {
	Title       string     `json:"title" bson:"title"`
	TalkID      string     `json:"talk_id" bson:"talk_id"`
	Speaker     string     `json:"speaker" bson:"speaker"`
	SpeakerID   string     `json:"speaker_id" bson:"speaker_id"`
	NumViews    int64      `json:"num_views" bson:"num_views"`
	NumComments int64      `json:"num_comments" bson:"num_comments"`
	Date        string     `json:"date" bson:"date"`
	Tags        []string   `json:"tags" bson:"tags"`
	Categories  []Category `json:"categories" bson:"categories"`
	Language    string     `json:"language" bson:"language"`
	Duration    int64      `json:"duration" bson:"duration"`
	Event       string     `json:"event" bson:"event"`

	// Tokens are the transcript cue texts in playback order.
	Tokens []string `json:"tokens" bson:"tokens"`
}

// Category is one opaque rating object from the source (e.g. {"id":7,"name":"Funny","count":19645}).
type Category map[string]any

// FlexString decodes a JSON string or number into its string form. The
// source is not consistent about ids.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected string or number, got %s", truncate(string(data), 32))
	}
	*s = FlexString(num.String())
	return nil
}

// FlexInt decodes a JSON number or numeric string into an int64. Fractions are truncated.
type FlexInt int64

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	raw := strings.Trim(string(data), `"`)
	num := json.Number(raw)
	if i, err := num.Int64(); err == nil {
		*n = FlexInt(i)
		return nil
	}
	f, err := num.Float64()
	if err != nil {
		return fmt.Errorf("expected integer, got %s", truncate(string(data), 32))
	}
	*n = FlexInt(int64(f))
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
