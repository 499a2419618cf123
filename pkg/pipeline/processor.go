package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"talk-corpus/pkg/content"
	"talk-corpus/pkg/domain"
	"talk-corpus/pkg/httpclient"
)

// Getter is the part of httpclient.HTTPClient the processor needs.
type Getter interface {
	Get(ctx context.Context, rawURL string, query map[string]string) ([]byte, error)
}

// ProcessorConfig locates the talk page and transcript endpoints.
type ProcessorConfig struct {
	BaseURL string
	// TranscriptPathFormat is formatted with the talk id, e.g. "/talks/%s/transcript.json".
	TranscriptPathFormat string
	TranscriptLanguage   string
	InitialDataMarker    string
}

// HTTPTalkProcessor implements ContentProcessor by fetching the talk page,
// reading its embedded initial data and then the transcript document.
type HTTPTalkProcessor struct {
	client Getter
	cfg    ProcessorConfig
}

// NewHTTPTalkProcessor creates a processor using client for both requests
func NewHTTPTalkProcessor(client Getter, cfg ProcessorConfig) *HTTPTalkProcessor {
	return &HTTPTalkProcessor{
		client: client,
		cfg:    cfg,
	}
}

// ProcessTalk builds the outcome for one talk link. Page structure and
// metadata shape problems are returned as errors; transcript problems and
// policy matches become skip entries.
func (p *HTTPTalkProcessor) ProcessTalk(ctx context.Context, link string) (*Outcome, error) {
	html, err := p.client.Get(ctx, p.talkURL(link), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch talk page: %w", err)
	}

	raw, err := content.FindInitialData(string(html), p.cfg.InitialDataMarker)
	if err != nil {
		return nil, err
	}

	page, err := content.ParseTalkPage(raw)
	if err != nil {
		return nil, err
	}

	if reason, skip := SkipPolicy(page); skip {
		return &Outcome{Skipped: page.Skipped(link, reason)}, nil
	}

	tokens, reason, err := p.transcript(ctx, page.TalkID)
	if err != nil {
		return nil, err
	}
	if reason != nil {
		return &Outcome{Skipped: page.Skipped(link, *reason)}, nil
	}

	return &Outcome{Talk: page.Record(tokens)}, nil
}

// transcript returns the cue texts, or a transcript skip reason when the
// document is missing or malformed.
func (p *HTTPTalkProcessor) transcript(ctx context.Context, talkID string) ([]string, *domain.SkipReason, error) {
	var query map[string]string
	if p.cfg.TranscriptLanguage != "" {
		query = map[string]string{"language": p.cfg.TranscriptLanguage}
	}

	body, err := p.client.Get(ctx, p.TranscriptURL(talkID), query)
	if httpclient.IsNotFound(err) {
		reason := domain.TranscriptSkip(domain.DetailTranscriptMissing)
		return nil, &reason, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("fetch transcript %s: %w", talkID, err)
	}

	tokens, err := content.ParseTranscript(body)
	if errors.Is(err, content.ErrTranscriptShape) {
		reason := domain.TranscriptSkip(domain.DetailTranscriptShape)
		return nil, &reason, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return tokens, nil, nil
}

func (p *HTTPTalkProcessor) baseURL() string {
	return strings.TrimRight(p.cfg.BaseURL, "/")
}

func (p *HTTPTalkProcessor) talkURL(link string) string {
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	if !strings.HasPrefix(link, "/") {
		link = "/" + link
	}
	return p.baseURL() + link
}

// TranscriptURL returns the transcript endpoint for a talk id, without query.
func (p *HTTPTalkProcessor) TranscriptURL(talkID string) string {
	return p.baseURL() + fmt.Sprintf(p.cfg.TranscriptPathFormat, talkID)
}
