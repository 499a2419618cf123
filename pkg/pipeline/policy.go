package pipeline

import (
	"talk-corpus/pkg/content"
	"talk-corpus/pkg/domain"
)

const (
	// PerformanceTag marks musical and other non-spoken performances.
	PerformanceTag = "performance"
	// ExternalVideoTypeID is the video type of talks hosted off-site.
	ExternalVideoTypeID = "5"
)

// SkipPolicy reports whether a talk is excluded by metadata alone. Rules are
// checked in order and the first match wins, so a talk is never fetched for
// its transcript when any of them applies.
func SkipPolicy(page *content.TalkPage) (domain.SkipReason, bool) {
	switch {
	case len(page.SpeakerIDs) > 1:
		return domain.PolicySkip(domain.DetailMultipleSpeakers), true
	case hasTag(page.Tags, PerformanceTag):
		return domain.PolicySkip(domain.DetailPerformance), true
	case page.VideoTypeID == ExternalVideoTypeID:
		return domain.PolicySkip(domain.DetailExternalVideo), true
	case len(page.SpeakerIDs) == 0:
		return domain.PolicySkip(domain.DetailNoSpeakers), true
	}
	return domain.SkipReason{}, false
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
