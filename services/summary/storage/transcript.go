package storage

import (
	"context"
	"database/sql"

	"github.com/xilidan/meeting-summary/pkg/logger"
	"github.com/xilidan/meeting-summary/services/summary/entity"
)

func (s *storage) InsertTranscript(ctx context.Context, id string, filename *string, content string) (*entity.Transcript, error) {
	log := logger.FromContext(ctx)

	createdAt := s.timestamp()
	_, err := s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO transcripts (id, filename, content, created_at) VALUES (?, ?, ?, ?)`),
		id, filename, content, createdAt,
	)
	if err != nil {
		log.Error("failed to insert transcript", "error", err)
		return nil, wrapErr("insert transcript", err)
	}
	log.Debug("inserted transcript", "transcript_id", id, "content_bytes", len(content))

	return &entity.Transcript{
		ID:        id,
		Filename:  filename,
		Content:   content,
		CreatedAt: fromMillis(createdAt),
	}, nil
}

func (s *storage) GetTranscript(ctx context.Context, id string) (*entity.Transcript, error) {
	return s.getTranscript(ctx, s.db, id)
}

func (s *storage) getTranscript(ctx context.Context, q querier, id string) (*entity.Transcript, error) {
	var (
		t         entity.Transcript
		filename  sql.NullString
		createdAt int64
	)
	err := q.QueryRowContext(ctx,
		s.rebind(`SELECT id, filename, content, created_at FROM transcripts WHERE id = ?`),
		id,
	).Scan(&t.ID, &filename, &t.Content, &createdAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		logger.FromContext(ctx).Error("failed to get transcript", "error", err)
		return nil, wrapErr("get transcript", err)
	}

	t.Filename = nullString(filename)
	t.CreatedAt = fromMillis(createdAt)
	return &t, nil
}
