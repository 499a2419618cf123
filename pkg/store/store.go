package store

import (
	"context"

	"talk-corpus/pkg/domain"
	"talk-corpus/pkg/logger"
)

// Saver persists the outcome of one talk. Implementations must make the
// record durable before returning so an interrupted run keeps its progress.
type Saver interface {
	SaveTalk(ctx context.Context, talk *domain.TalkRecord) error
	SaveSkipped(ctx context.Context, skipped *domain.SkippedTalk) error
}

// MirroredSaver writes every outcome to a primary saver and then to its
// mirrors. Only a primary failure is returned: once the primary holds the
// record the talk counts as processed, and a failed mirror write is logged.
type MirroredSaver struct {
	primary Saver
	mirrors []Saver
	log     *logger.Logger
}

// NewMirroredSaver creates a saver with primary as the source of truth.
func NewMirroredSaver(primary Saver, log *logger.Logger, mirrors ...Saver) *MirroredSaver {
	if log == nil {
		log = logger.Nop()
	}
	return &MirroredSaver{
		primary: primary,
		mirrors: mirrors,
		log:     log.Component("store"),
	}
}

func (m *MirroredSaver) SaveTalk(ctx context.Context, talk *domain.TalkRecord) error {
	if err := m.primary.SaveTalk(ctx, talk); err != nil {
		return err
	}
	for i, mirror := range m.mirrors {
		if err := mirror.SaveTalk(ctx, talk); err != nil {
			m.log.Warn("mirror write failed", "mirror", i, "talk_id", talk.TalkID, "err", err)
		}
	}
	return nil
}

func (m *MirroredSaver) SaveSkipped(ctx context.Context, skipped *domain.SkippedTalk) error {
	if err := m.primary.SaveSkipped(ctx, skipped); err != nil {
		return err
	}
	for i, mirror := range m.mirrors {
		if err := mirror.SaveSkipped(ctx, skipped); err != nil {
			m.log.Warn("mirror write failed", "mirror", i, "talk_id", skipped.TalkID, "err", err)
		}
	}
	return nil
}
