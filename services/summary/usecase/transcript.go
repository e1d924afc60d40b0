package usecase

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/xilidan/meeting-summary/pkg/apperr"
	"github.com/xilidan/meeting-summary/services/summary/entity"
)

func (u *usecase) UploadTranscript(ctx context.Context, req *entity.UploadTranscriptRequest) (*entity.UploadTranscriptResponse, error) {
	var (
		filename *string
		content  = req.Content
	)
	if req.FromFile {
		if err := validateUpload(req); err != nil {
			return nil, err
		}
		name := req.Filename
		filename = &name
		content = strings.ToValidUTF8(content, string(utf8.RuneError))
	} else if strings.TrimSpace(req.Content) == "" {
		return nil, apperr.Validation(`Provide a .txt/.md file under field "file" or raw text under field "text".`)
	}

	id := u.ids.Next()
	if _, err := u.Storage.InsertTranscript(ctx, id, filename, content); err != nil {
		return nil, err
	}
	u.log.Info("transcript uploaded",
		slog.String("transcript_id", id),
		slog.Bool("from_file", req.FromFile),
		slog.Int("content_bytes", len(content)))

	return &entity.UploadTranscriptResponse{
		TranscriptID: id,
		Length:       utf16Length(content),
	}, nil
}

func validateUpload(req *entity.UploadTranscriptRequest) error {
	ext := strings.ToLower(filepath.Ext(req.Filename))
	if !slices.Contains(allowedExtensions, ext) {
		return apperr.Validation("Only .txt or .md files are allowed")
	}
	if req.Size > MaxUploadBytes || len(req.Content) > MaxUploadBytes {
		return apperr.Validation("File too large: limit is %d bytes", MaxUploadBytes)
	}
	if strings.TrimSpace(req.Content) == "" {
		return apperr.Validation("Uploaded file is empty")
	}
	return nil
}

// utf16Length counts UTF-16 code units, the unit browser clients measure strings in.
func utf16Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func (u *usecase) GetTranscript(ctx context.Context, id string) (*entity.Transcript, error) {
	t, err := u.Storage.GetTranscript(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("Not found")
	}
	return t, nil
}
