package replication

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"talk-corpus/pkg/domain"
	"talk-corpus/pkg/logger"
	"talk-corpus/pkg/store"
)

const batchSize = 100

// Stats counts what a replication pass did.
type Stats struct {
	Processed int
	Inserted  int
}

// Replicator loads the accepted talks file into Postgres.
//
// This is a one-shot, "copy everything" flow. Talks already present are
// left as they are, so re-running after a resumed scrape only adds new rows.
type Replicator struct {
	pg  store.DBProvider
	log *logger.Logger
}

func NewReplicator(pg store.DBProvider, log *logger.Logger) (*Replicator, error) {
	if pg == nil {
		return nil, fmt.Errorf("postgres client is required")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Replicator{
		pg:  pg,
		log: log.Component("replication"),
	}, nil
}

// ReplicateTalksFileToPostgres streams the accepted output at path into the
// `talk` table in batches. Only one batch is held in memory at a time.
func (r *Replicator) ReplicateTalksFileToPostgres(ctx context.Context, path string) (Stats, error) {
	var stats Stats
	if err := r.ensureTalkSchema(ctx); err != nil {
		return stats, err
	}

	b := &batcher{
		size: batchSize,
		flush: func(batch []*domain.TalkRecord) error {
			inserted, err := r.insertTalksTx(ctx, batch)
			if err != nil {
				return fmt.Errorf("insert batch [%d:%d]: %w", stats.Processed, stats.Processed+len(batch), err)
			}
			stats.Processed += len(batch)
			stats.Inserted += inserted
			r.log.Debug("batch replicated", "size", len(batch), "inserted", inserted, "processed", stats.Processed)
			if stats.Processed%1000 == 0 {
				r.logProgress(stats)
			}
			return nil
		},
	}

	err := store.ReadTalks(path, func(talk *domain.TalkRecord) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return b.add(talk)
	})
	if err != nil {
		return stats, err
	}
	if err := b.drain(); err != nil {
		return stats, err
	}

	r.log.Info("replication complete", "processed", stats.Processed, "inserted", stats.Inserted)
	return stats, nil
}

func (r *Replicator) logProgress(stats Stats) {
	r.log.Info("replication progress", "processed", stats.Processed, "inserted", stats.Inserted)
}

func (r *Replicator) ensureTalkSchema(ctx context.Context) error {
	if r.pg.DB() == nil {
		return fmt.Errorf("postgres DB not connected")
	}

	// talk_id is the primary key, which also gives us uniqueness.
	const ddl = `
CREATE TABLE IF NOT EXISTS talk (
  talk_id TEXT PRIMARY KEY,
  title TEXT NOT NULL DEFAULT '',
  speaker TEXT NOT NULL DEFAULT '',
  speaker_id TEXT NOT NULL DEFAULT '',
  num_views BIGINT NOT NULL DEFAULT 0,
  num_comments BIGINT NOT NULL DEFAULT 0,
  recorded_at TEXT NOT NULL DEFAULT '',
  tags JSONB NOT NULL DEFAULT '[]',
  categories JSONB NOT NULL DEFAULT '[]',
  language TEXT NOT NULL DEFAULT '',
  duration BIGINT NOT NULL DEFAULT 0,
  event TEXT NOT NULL DEFAULT '',
  tokens JSONB NOT NULL DEFAULT '[]',
  replicated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

	if _, err := r.pg.DB().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create talk table: %w", err)
	}
	return nil
}

// insertTalksTx inserts a batch of talks within a transaction and returns
// how many rows were new.
func (r *Replicator) insertTalksTx(ctx context.Context, batch []*domain.TalkRecord) (int, error) {
	tx, err := r.pg.DB().BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted, err := r.executeBatchInsert(ctx, tx, batch)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

// executeBatchInsert executes the insert statements for a batch of talks.
func (r *Replicator) executeBatchInsert(ctx context.Context, tx *sql.Tx, batch []*domain.TalkRecord) (int, error) {
	const insertQuery = `
INSERT INTO talk (talk_id, title, speaker, speaker_id, num_views, num_comments,
  recorded_at, tags, categories, language, duration, event, tokens)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9::jsonb, $10, $11, $12, $13::jsonb)
ON CONFLICT (talk_id) DO NOTHING`

	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, talk := range batch {
		args, err := talkArgs(talk)
		if err != nil {
			return 0, err
		}
		res, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return 0, fmt.Errorf("insert talk talk_id=%q: %w", talk.TalkID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	return inserted, nil
}

// talkArgs maps a record onto the insert parameters; list columns are sent as JSON text.
func talkArgs(talk *domain.TalkRecord) ([]any, error) {
	tags, err := jsonColumn(talk.Tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags of %s: %w", talk.TalkID, err)
	}
	categories, err := jsonColumn(talk.Categories)
	if err != nil {
		return nil, fmt.Errorf("encode categories of %s: %w", talk.TalkID, err)
	}
	tokens, err := jsonColumn(talk.Tokens)
	if err != nil {
		return nil, fmt.Errorf("encode tokens of %s: %w", talk.TalkID, err)
	}

	return []any{
		talk.TalkID, talk.Title, talk.Speaker, talk.SpeakerID,
		talk.NumViews, talk.NumComments, talk.Date,
		tags, categories, talk.Language, talk.Duration, talk.Event, tokens,
	}, nil
}

func jsonColumn[T any](values []T) (string, error) {
	if values == nil {
		return "[]", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// batcher collects records and hands them to flush size at a time.
type batcher struct {
	size  int
	buf   []*domain.TalkRecord
	flush func([]*domain.TalkRecord) error
}

func (b *batcher) add(talk *domain.TalkRecord) error {
	b.buf = append(b.buf, talk)
	if len(b.buf) < b.size {
		return nil
	}
	return b.drain()
}

// drain flushes whatever is buffered.
func (b *batcher) drain() error {
	if len(b.buf) == 0 {
		return nil
	}
	batch := b.buf
	b.buf = make([]*domain.TalkRecord, 0, b.size)
	return b.flush(batch)
}
