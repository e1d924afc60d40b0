package usecase

import (
	"context"
	"log/slog"

	config "github.com/xilidan/meeting-summary/config/summary"
	"github.com/xilidan/meeting-summary/pkg/gen"
	"github.com/xilidan/meeting-summary/services/summary/entity"
	"github.com/xilidan/meeting-summary/services/summary/storage"
)

const (
	DefaultPrompt = "Summarize the following meeting notes."
	// TranscriptSeparator joins the prompt and the transcript content.
	TranscriptSeparator = "\n\nTranscript:\n"
	MaxTokens           = 800
	ShareSubject        = "Meeting Summary"
	MaxUploadBytes      = 5 << 20
)

var allowedExtensions = []string{".txt", ".md"}

// Completer turns a prompt into generated text.
type Completer interface {
	Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error)
}

// Sender delivers one message and returns its identifier.
type Sender interface {
	Send(ctx context.Context, recipients []string, subject, body string) (string, error)
}

type usecase struct {
	model     string
	Storage   storage.Storage
	completer Completer
	sender    Sender
	ids       gen.IDGenerator
	log       *slog.Logger
}

type Usecase interface {
	UploadTranscript(ctx context.Context, req *entity.UploadTranscriptRequest) (*entity.UploadTranscriptResponse, error)
	GetTranscript(ctx context.Context, id string) (*entity.Transcript, error)
	SetPrompt(ctx context.Context, req *entity.SetPromptRequest) (*entity.SetPromptResponse, error)
	GenerateSummary(ctx context.Context, req *entity.GenerateSummaryRequest) (*entity.GenerateSummaryResponse, error)
	GetSummary(ctx context.Context, id string) (*entity.Summary, error)
	UpdateSummary(ctx context.Context, id string, req *entity.UpdateSummaryRequest) error
	ShareSummary(ctx context.Context, req *entity.ShareSummaryRequest) (*entity.ShareSummaryResponse, error)
}

type Option func(*usecase)

func WithIDGenerator(ids gen.IDGenerator) Option {
	return func(u *usecase) {
		u.ids = ids
	}
}

func New(cfg *config.Config, storage storage.Storage, completer Completer, sender Sender, log *slog.Logger, opts ...Option) Usecase {
	u := &usecase{
		model:     cfg.Completion.Model,
		Storage:   storage,
		completer: completer,
		sender:    sender,
		ids:       gen.UUID(),
		log:       log,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}
