package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xilidan/meeting-summary/pkg/apperr"
	"github.com/xilidan/meeting-summary/services/summary/entity"
)

// GenerateSummary resolves a prompt, asks the completer and stores the result.
// Nothing is written unless the completion succeeded. Concurrent calls for the
// same transcript each create their own summary.
func (u *usecase) GenerateSummary(ctx context.Context, req *entity.GenerateSummaryRequest) (*entity.GenerateSummaryResponse, error) {
	if req.TranscriptID == "" {
		return nil, apperr.Validation("transcriptId is required")
	}

	t, err := u.Storage.GetTranscript(ctx, req.TranscriptID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("Transcript not found")
	}

	promptText, promptID, err := u.resolvePrompt(ctx, req)
	if err != nil {
		return nil, err
	}

	u.log.Debug("requesting completion",
		slog.String("transcript_id", t.ID),
		slog.Bool("default_prompt", promptID == nil))
	output, err := u.completer.Complete(ctx, u.model, promptText+TranscriptSeparator+t.Content, MaxTokens)
	if err != nil {
		u.log.Error("completion failed",
			slog.String("transcript_id", t.ID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	id := u.ids.Next()
	if _, err := u.Storage.InsertSummary(ctx, id, t.ID, promptID, output); err != nil {
		return nil, err
	}
	u.log.Info("summary generated",
		slog.String("summary_id", id),
		slog.String("transcript_id", t.ID),
		slog.Int("output_length", len(output)))

	return &entity.GenerateSummaryResponse{SummaryID: id, Raw: output}, nil
}

// resolvePrompt picks the explicit prompt, else the transcript's latest, else the default.
func (u *usecase) resolvePrompt(ctx context.Context, req *entity.GenerateSummaryRequest) (string, *string, error) {
	if req.PromptID != "" {
		p, err := u.Storage.GetPrompt(ctx, req.PromptID, req.TranscriptID)
		if err != nil {
			return "", nil, err
		}
		if p == nil {
			return "", nil, apperr.NotFound("Prompt not found for transcript")
		}
		return p.Prompt, &p.ID, nil
	}

	p, err := u.Storage.GetLatestPromptForTranscript(ctx, req.TranscriptID)
	if err != nil {
		return "", nil, err
	}
	if p != nil {
		return p.Prompt, &p.ID, nil
	}
	return DefaultPrompt, nil, nil
}

func (u *usecase) GetSummary(ctx context.Context, id string) (*entity.Summary, error) {
	s, err := u.Storage.GetSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperr.NotFound("Not found")
	}
	return s, nil
}

// UpdateSummary replaces the edited text; the raw output stays as generated.
func (u *usecase) UpdateSummary(ctx context.Context, id string, req *entity.UpdateSummaryRequest) error {
	if req.Edited == "" {
		return apperr.Validation("edited is required")
	}

	if _, err := u.Storage.UpdateSummaryEditedOutput(ctx, id, req.Edited); err != nil {
		return err
	}
	u.log.Info("summary edited", slog.String("summary_id", id))
	return nil
}

func (u *usecase) ShareSummary(ctx context.Context, req *entity.ShareSummaryRequest) (*entity.ShareSummaryResponse, error) {
	if req.SummaryID == "" || len(req.Recipients) == 0 {
		return nil, apperr.Validation("summaryId and recipients[] required")
	}

	s, err := u.Storage.GetSummary(ctx, req.SummaryID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperr.NotFound("Summary not found")
	}

	messageID, err := u.sender.Send(ctx, req.Recipients, ShareSubject, s.Shareable())
	if err != nil {
		return nil, fmt.Errorf("share summary: %w", err)
	}
	u.log.Info("summary shared",
		slog.String("summary_id", s.ID),
		slog.Int("recipients", len(req.Recipients)),
		slog.String("message_id", messageID))

	return &entity.ShareSummaryResponse{OK: true, MessageID: messageID}, nil
}
