package storage

import (
	"context"
	"database/sql"

	"github.com/xilidan/meeting-summary/pkg/apperr"
	"github.com/xilidan/meeting-summary/pkg/logger"
	"github.com/xilidan/meeting-summary/services/summary/entity"
)

// InsertSummary stores a generation result; edited_output starts equal to raw_output.
func (s *storage) InsertSummary(ctx context.Context, id, transcriptID string, promptID *string, rawOutput string) (*entity.Summary, error) {
	log := logger.FromContext(ctx)

	now := s.timestamp()
	_, err := s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO summaries (id, transcript_id, prompt_id, raw_output, edited_output, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		id, transcriptID, promptID, rawOutput, rawOutput, now, now,
	)
	if err != nil {
		log.Error("failed to insert summary", "error", err)
		return nil, wrapErr("insert summary", err)
	}
	log.Debug("inserted summary", "summary_id", id, "transcript_id", transcriptID)

	edited := rawOutput
	return &entity.Summary{
		ID:           id,
		TranscriptID: transcriptID,
		PromptID:     promptID,
		RawOutput:    rawOutput,
		EditedOutput: &edited,
		CreatedAt:    fromMillis(now),
		UpdatedAt:    fromMillis(now),
	}, nil
}

func (s *storage) GetSummary(ctx context.Context, id string) (*entity.Summary, error) {
	return s.getSummary(ctx, s.db, id)
}

func (s *storage) getSummary(ctx context.Context, q querier, id string) (*entity.Summary, error) {
	var (
		sum                  entity.Summary
		promptID, edited     sql.NullString
		createdAt, updatedAt int64
	)
	err := q.QueryRowContext(ctx,
		s.rebind(`SELECT id, transcript_id, prompt_id, raw_output, edited_output, created_at, updated_at
		 FROM summaries WHERE id = ?`),
		id,
	).Scan(&sum.ID, &sum.TranscriptID, &promptID, &sum.RawOutput, &edited, &createdAt, &updatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		logger.FromContext(ctx).Error("failed to get summary", "error", err)
		return nil, wrapErr("get summary", err)
	}

	sum.PromptID = nullString(promptID)
	sum.EditedOutput = nullString(edited)
	sum.CreatedAt = fromMillis(createdAt)
	sum.UpdatedAt = fromMillis(updatedAt)
	return &sum, nil
}

// UpdateSummaryEditedOutput replaces edited_output and strictly advances updated_at.
// raw_output is never touched.
func (s *storage) UpdateSummaryEditedOutput(ctx context.Context, id, edited string) (*entity.Summary, error) {
	log := logger.FromContext(ctx)

	var updated *entity.Summary
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := s.getSummary(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return apperr.NotFound("Summary not found")
		}

		updatedAt := s.timestamp()
		if prev := current.UpdatedAt.UnixMilli(); updatedAt <= prev {
			updatedAt = prev + 1
		}

		if _, err := tx.ExecContext(ctx,
			s.rebind(`UPDATE summaries SET edited_output = ?, updated_at = ? WHERE id = ?`),
			edited, updatedAt, id,
		); err != nil {
			log.Error("failed to update summary", "error", err)
			return wrapErr("update summary", err)
		}

		current.EditedOutput = &edited
		current.UpdatedAt = fromMillis(updatedAt)
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug("updated summary", "summary_id", id)

	return updated, nil
}
