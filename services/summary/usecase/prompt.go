package usecase

import (
	"context"
	"log/slog"

	"github.com/xilidan/meeting-summary/pkg/apperr"
	"github.com/xilidan/meeting-summary/services/summary/entity"
)

func (u *usecase) SetPrompt(ctx context.Context, req *entity.SetPromptRequest) (*entity.SetPromptResponse, error) {
	if req.TranscriptID == "" || req.Prompt == "" {
		return nil, apperr.Validation("transcriptId and prompt are required")
	}

	t, err := u.Storage.GetTranscript(ctx, req.TranscriptID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("Transcript not found")
	}

	id := u.ids.Next()
	if _, err := u.Storage.InsertPrompt(ctx, id, req.TranscriptID, req.Prompt); err != nil {
		return nil, err
	}
	u.log.Info("prompt stored",
		slog.String("prompt_id", id),
		slog.String("transcript_id", req.TranscriptID))

	return &entity.SetPromptResponse{PromptID: id}, nil
}
