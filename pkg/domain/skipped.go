package domain

// SkipKind separates deliberate policy exclusions from transcript failures.
type SkipKind string

const (
	// SkipPolicy is a filter match on the talk metadata.
	SkipPolicy SkipKind = "policy"
	// SkipTranscript means the transcript document could not be used.
	SkipTranscript SkipKind = "transcript"
)

// SkipDetail names the rule or failure that caused a skip.
type SkipDetail string

const (
	DetailMultipleSpeakers  SkipDetail = "multiple_speakers"
	DetailPerformance       SkipDetail = "performance"
	DetailExternalVideo     SkipDetail = "external_video"
	DetailNoSpeakers        SkipDetail = "no_speakers"
	DetailTranscriptShape   SkipDetail = "transcript_shape"
	DetailTranscriptMissing SkipDetail = "transcript_missing"
)

// SkipReason is the tagged reason recorded with every skipped talk.
type SkipReason struct {
	Kind   SkipKind
	Detail SkipDetail
}

// PolicySkip builds a policy SkipReason.
func PolicySkip(detail SkipDetail) SkipReason {
	return SkipReason{Kind: SkipPolicy, Detail: detail}
}

// TranscriptSkip builds a transcript SkipReason.
func TranscriptSkip(detail SkipDetail) SkipReason {
	return SkipReason{Kind: SkipTranscript, Detail: detail}
}

func (r SkipReason) String() string {
	return string(r.Kind) + ":" + string(r.Detail)
}

// SkippedTalk is one entry of the skip log.
type SkippedTalk struct {
	Title   string     `json:"title" bson:"title"`
	TalkID  string     `json:"talk_id" bson:"talk_id"`
	Speaker string     `json:"speaker" bson:"speaker"`
	Link    string     `json:"link" bson:"link"`
	Reason  SkipKind   `json:"reason" bson:"reason"`
	Detail  SkipDetail `json:"detail" bson:"detail"`
}
