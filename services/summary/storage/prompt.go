package storage

import (
	"context"
	"database/sql"

	"github.com/xilidan/meeting-summary/pkg/logger"
	"github.com/xilidan/meeting-summary/services/summary/entity"
)

// InsertPrompt stores a prompt with a created_at strictly after every earlier
// prompt of the same transcript, so the latest prompt follows insertion order.
func (s *storage) InsertPrompt(ctx context.Context, id, transcriptID, prompt string) (*entity.Prompt, error) {
	log := logger.FromContext(ctx)

	var createdAt int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if s.dialect != DialectSQLite {
			// serializes prompt inserts per transcript; sqlite already has a single writer
			var locked string
			err := tx.QueryRowContext(ctx,
				s.rebind(`SELECT id FROM transcripts WHERE id = ? FOR UPDATE`),
				transcriptID,
			).Scan(&locked)
			if err != nil && !isNoRows(err) {
				return wrapErr("lock transcript", err)
			}
		}

		var prev sql.NullInt64
		if err := tx.QueryRowContext(ctx,
			s.rebind(`SELECT MAX(created_at) FROM prompts WHERE transcript_id = ?`),
			transcriptID,
		).Scan(&prev); err != nil {
			return wrapErr("read latest prompt time", err)
		}

		createdAt = s.timestamp()
		if prev.Valid && createdAt <= prev.Int64 {
			createdAt = prev.Int64 + 1
		}

		if _, err := tx.ExecContext(ctx,
			s.rebind(`INSERT INTO prompts (id, transcript_id, prompt, created_at) VALUES (?, ?, ?, ?)`),
			id, transcriptID, prompt, createdAt,
		); err != nil {
			return wrapErr("insert prompt", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert prompt", "error", err)
		return nil, err
	}
	log.Debug("inserted prompt", "prompt_id", id, "transcript_id", transcriptID)

	return &entity.Prompt{
		ID:           id,
		TranscriptID: transcriptID,
		Prompt:       prompt,
		CreatedAt:    fromMillis(createdAt),
	}, nil
}

// GetPrompt looks a prompt up by id, scoped to the transcript it belongs to.
func (s *storage) GetPrompt(ctx context.Context, id, transcriptID string) (*entity.Prompt, error) {
	return s.scanPrompt(ctx, "get prompt",
		`SELECT id, transcript_id, prompt, created_at FROM prompts WHERE id = ? AND transcript_id = ?`,
		id, transcriptID,
	)
}

func (s *storage) GetLatestPromptForTranscript(ctx context.Context, transcriptID string) (*entity.Prompt, error) {
	return s.scanPrompt(ctx, "get latest prompt",
		`SELECT id, transcript_id, prompt, created_at FROM prompts
		 WHERE transcript_id = ? ORDER BY created_at DESC LIMIT 1`,
		transcriptID,
	)
}

func (s *storage) scanPrompt(ctx context.Context, op, query string, args ...any) (*entity.Prompt, error) {
	var (
		p         entity.Prompt
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx, s.rebind(query), args...).
		Scan(&p.ID, &p.TranscriptID, &p.Prompt, &createdAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		logger.FromContext(ctx).Error("failed to "+op, "error", err)
		return nil, wrapErr(op, err)
	}

	p.CreatedAt = fromMillis(createdAt)
	return &p, nil
}
