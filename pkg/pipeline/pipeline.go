package pipeline

import (
	"context"
	"errors"
	"fmt"

	"talk-corpus/pkg/domain"
	"talk-corpus/pkg/logger"
	"talk-corpus/pkg/pacing"
	"talk-corpus/pkg/store"
)

// Outcome is the result of processing one talk link: exactly one of Talk
// and Skipped is set.
type Outcome struct {
	Talk    *domain.TalkRecord
	Skipped *domain.SkippedTalk
}

// ContentProcessor turns one talk link into an Outcome.
// A returned error is unrecovered and stops the run.
type ContentProcessor interface {
	ProcessTalk(ctx context.Context, link string) (*Outcome, error)
}

// IndexError carries the list position of the talk that stopped a run.
// Restarting with start index Index retries that talk.
type IndexError struct {
	Index int
	Link  string
	Err   error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("talk %d (%s): %v", e.Index, e.Link, e.Err)
}

func (e *IndexError) Unwrap() error {
	return e.Err
}

// Summary counts what a run did.
type Summary struct {
	Processed int
	Accepted  int
	Skipped   int
	// Next is the start index for a follow-up run.
	Next int
}

// Extractor processes a list of talk links strictly in order, one at a time.
type Extractor struct {
	processor ContentProcessor
	saver     store.Saver
	pacer     *pacing.Pacer
	log       *logger.Logger
}

// NewExtractor creates an extractor. pacer may be nil to disable pauses.
func NewExtractor(processor ContentProcessor, saver store.Saver, pacer *pacing.Pacer, log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.Nop()
	}
	return &Extractor{
		processor: processor,
		saver:     saver,
		pacer:     pacer,
		log:       log.Component("extractor"),
	}
}

// Run processes links[startAt:] in order. Each outcome is saved before the
// next link is touched, so an error or cancellation leaves every earlier
// index either in the accepted output or in the skip log. The returned
// error is an *IndexError naming the index to resume from.
func (e *Extractor) Run(ctx context.Context, links []string, startAt int) (Summary, error) {
	summary := Summary{Next: startAt}
	if startAt < 0 {
		return summary, fmt.Errorf("start index must not be negative, got %d", startAt)
	}
	if e.processor == nil {
		return summary, errors.New("content processor is not set")
	}
	if e.saver == nil {
		return summary, errors.New("saver is not set")
	}

	if startAt >= len(links) {
		e.log.Info("nothing to do", "links", len(links), "start_at", startAt)
		return summary, nil
	}

	e.log.Info("extracting talks", "links", len(links), "start_at", startAt)
	last := len(links) - 1

	for i := startAt; i <= last; i++ {
		link := links[i]
		if err := ctx.Err(); err != nil {
			return summary, &IndexError{Index: i, Link: link, Err: err}
		}

		if err := e.processOne(ctx, i, link, &summary); err != nil {
			return summary, &IndexError{Index: i, Link: link, Err: err}
		}
		summary.Processed++
		summary.Next = i + 1

		if i == last || !e.pacer.Due(i+1) {
			continue
		}
		e.log.Info("taking a break", "index", i, "pause", e.pacer.Interval())
		if _, err := e.pacer.After(ctx, i+1); err != nil {
			return summary, &IndexError{Index: i + 1, Link: links[i+1], Err: err}
		}
	}

	e.log.Info("extraction finished",
		"processed", summary.Processed,
		"accepted", summary.Accepted,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

func (e *Extractor) processOne(ctx context.Context, index int, link string, summary *Summary) error {
	outcome, err := e.processor.ProcessTalk(ctx, link)
	if err != nil {
		e.log.Error("talk failed", "index", index, "link", link, "err", err)
		return err
	}

	switch {
	case outcome != nil && outcome.Talk != nil:
		if err := e.saver.SaveTalk(ctx, outcome.Talk); err != nil {
			return fmt.Errorf("save talk %s: %w", outcome.Talk.TalkID, err)
		}
		summary.Accepted++
		e.log.Info("talk saved", "index", index, "title", outcome.Talk.Title, "tokens", len(outcome.Talk.Tokens))

	case outcome != nil && outcome.Skipped != nil:
		if err := e.saver.SaveSkipped(ctx, outcome.Skipped); err != nil {
			return fmt.Errorf("save skipped talk %s: %w", outcome.Skipped.TalkID, err)
		}
		summary.Skipped++
		e.log.Info("talk skipped", "index", index, "title", outcome.Skipped.Title,
			"reason", outcome.Skipped.Reason, "detail", outcome.Skipped.Detail)

	default:
		return errors.New("processor returned an empty outcome")
	}
	return nil
}
