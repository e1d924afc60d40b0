package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/xilidan/meeting-summary/config/summary"
	"github.com/xilidan/meeting-summary/pkg/apperr"
	"github.com/xilidan/meeting-summary/pkg/gen"
	"github.com/xilidan/meeting-summary/pkg/logger"
	"github.com/xilidan/meeting-summary/services/summary/entity"
	"github.com/xilidan/meeting-summary/services/summary/mocks"
	"github.com/xilidan/meeting-summary/services/summary/storage"
)

type fixture struct {
	uc        Usecase
	store     storage.Storage
	completer *mocks.CompleterMock
	sender    *mocks.SenderMock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := storage.Open(context.Background(), storage.DialectSQLite,
		fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name))
	require.NoError(t, err)

	tick := 0
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := storage.New(db, storage.DialectSQLite, storage.WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}))
	require.NoError(t, store.InitSchema(context.Background()))
	t.Cleanup(func() { store.Close() })

	f := &fixture{
		store: store,
		completer: &mocks.CompleterMock{
			CompleteFunc: func(context.Context, string, string, int) (string, error) {
				return "Mocked summary output.", nil
			},
		},
		sender: &mocks.SenderMock{
			SendFunc: func(context.Context, []string, string, string) (string, error) {
				return "test-123", nil
			},
		},
	}
	cfg := &config.Config{Completion: config.CompletionConfig{Model: "groq-lite"}}
	f.uc = New(cfg, store, f.completer, f.sender, logger.Discard(), WithIDGenerator(gen.Sequence("id")))
	return f
}

func (f *fixture) upload(t *testing.T, text string) string {
	t.Helper()
	res, err := f.uc.UploadTranscript(context.Background(), &entity.UploadTranscriptRequest{Content: text})
	require.NoError(t, err)
	return res.TranscriptID
}

func TestUploadText(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.uc.UploadTranscript(ctx, &entity.UploadTranscriptRequest{Content: "Meeting started at 10am."})
	require.NoError(t, err)
	assert.Equal(t, "id-1", res.TranscriptID)
	assert.Equal(t, 24, res.Length)

	got, err := f.uc.GetTranscript(ctx, res.TranscriptID)
	require.NoError(t, err)
	assert.Equal(t, "Meeting started at 10am.", got.Content)
	assert.Nil(t, got.Filename)
}

func TestUploadFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.uc.UploadTranscript(ctx, &entity.UploadTranscriptRequest{
		FromFile: true, Filename: "Notes.MD", Size: 5, Content: "hello",
	})
	require.NoError(t, err)

	got, err := f.uc.GetTranscript(ctx, res.TranscriptID)
	require.NoError(t, err)
	require.NotNil(t, got.Filename)
	assert.Equal(t, "Notes.MD", *got.Filename)
}

func TestUploadValidation(t *testing.T) {
	cases := []struct {
		name string
		req  entity.UploadTranscriptRequest
	}{
		{"no input", entity.UploadTranscriptRequest{}},
		{"blank text", entity.UploadTranscriptRequest{Content: "  \n\t"}},
		{"bad extension", entity.UploadTranscriptRequest{FromFile: true, Filename: "notes.pdf", Content: "x"}},
		{"too large", entity.UploadTranscriptRequest{FromFile: true, Filename: "a.txt", Size: MaxUploadBytes + 1, Content: "x"}},
		{"empty file", entity.UploadTranscriptRequest{FromFile: true, Filename: "a.txt"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.uc.UploadTranscript(context.Background(), &tc.req)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindValidation), err.Error())
		})
	}
}

func TestUploadLengthCountsUTF16Units(t *testing.T) {
	f := newFixture(t)
	res, err := f.uc.UploadTranscript(context.Background(), &entity.UploadTranscriptRequest{Content: "é😀"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Length)
}

func TestSetPrompt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tid := f.upload(t, "text")

	_, err := f.uc.SetPrompt(ctx, &entity.SetPromptRequest{TranscriptID: tid})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = f.uc.SetPrompt(ctx, &entity.SetPromptRequest{TranscriptID: "missing", Prompt: "x"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	p, err := f.store.GetLatestPromptForTranscript(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, p)

	spaces, err := f.uc.SetPrompt(ctx, &entity.SetPromptRequest{TranscriptID: tid, Prompt: "  "})
	require.NoError(t, err)
	assert.NotEmpty(t, spaces.PromptID)

	res, err := f.uc.SetPrompt(ctx, &entity.SetPromptRequest{TranscriptID: tid, Prompt: "Bullet points"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.PromptID)
}

func TestGenerateUsesDefaultPrompt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tid := f.upload(t, "Discussed Q3 targets.")

	res, err := f.uc.GenerateSummary(ctx, &entity.GenerateSummaryRequest{TranscriptID: tid})
	require.NoError(t, err)
	assert.Equal(t, "Mocked summary output.", res.Raw)

	require.Len(t, f.completer.Calls, 1)
	call := f.completer.Calls[0]
	assert.Equal(t, "Summarize the following meeting notes.\n\nTranscript:\nDiscussed Q3 targets.", call.Prompt)
	assert.Equal(t, "groq-lite", call.Model)
	assert.Equal(t, 800, call.MaxTokens)

	s, err := f.store.GetSummary(ctx, res.SummaryID)
	require.NoError(t, err)
	assert.Nil(t, s.PromptID)
	assert.Equal(t, "Mocked summary output.", s.RawOutput)
	assert.Equal(t, "Mocked summary output.", *s.EditedOutput)
}

func TestGenerateUsesLatestPrompt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tid := f.upload(t, "content")

	_, err := f.uc.SetPrompt(ctx, &entity.SetPromptRequest{TranscriptID: tid, Prompt: "older"})
	require.NoError(t, err)
	latest, err := f.uc.SetPrompt(ctx, &entity.SetPromptRequest{TranscriptID: tid, Prompt: "newer"})
	require.NoError(t, err)

	res, err := f.uc.GenerateSummary(ctx, &entity.GenerateSummaryRequest{TranscriptID: tid})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(f.completer.Calls[0].Prompt, "newer\n\nTranscript:\n"))

	s, err := f.store.GetSummary(ctx, res.SummaryID)
	require.NoError(t, err)
	require.NotNil(t, s.PromptID)
	assert.Equal(t, latest.PromptID, *s.PromptID)
}

func TestGenerateExplicitPromptMustBelongToTranscript(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	t1 := f.upload(t, "one")
	t2 := f.upload(t, "two")
	p, err := f.uc.SetPrompt(ctx, &entity.SetPromptRequest{TranscriptID: t1, Prompt: "x"})
	require.NoError(t, err)

	_, err = f.uc.GenerateSummary(ctx, &entity.GenerateSummaryRequest{TranscriptID: t2, PromptID: p.PromptID})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Empty(t, f.completer.Calls)
}

func TestGenerateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.GenerateSummary(ctx, &entity.GenerateSummaryRequest{})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = f.uc.GenerateSummary(ctx, &entity.GenerateSummaryRequest{TranscriptID: "missing"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestGenerateProviderFailureStoresNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tid := f.upload(t, "content")
	f.completer.CompleteFunc = func(context.Context, string, string, int) (string, error) {
		return "", apperr.New(apperr.KindProvider, errors.New("completion provider error: 500 boom"))
	}

	_, err := f.uc.GenerateSummary(ctx, &entity.GenerateSummaryRequest{TranscriptID: tid})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindProvider))

	// the id generator only advanced for the transcript
	s, err := f.store.GetSummary(ctx, "id-2")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestUpdateSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tid := f.upload(t, "content")
	out, err := f.uc.GenerateSummary(ctx, &entity.GenerateSummaryRequest{TranscriptID: tid})
	require.NoError(t, err)
	before, err := f.uc.GetSummary(ctx, out.SummaryID)
	require.NoError(t, err)

	err = f.uc.UpdateSummary(ctx, out.SummaryID, &entity.UpdateSummaryRequest{})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	err = f.uc.UpdateSummary(ctx, "missing", &entity.UpdateSummaryRequest{Edited: "x"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	require.NoError(t, f.uc.UpdateSummary(ctx, out.SummaryID, &entity.UpdateSummaryRequest{Edited: "Edited summary text."}))

	after, err := f.uc.GetSummary(ctx, out.SummaryID)
	require.NoError(t, err)
	assert.Equal(t, before.RawOutput, after.RawOutput)
	assert.Equal(t, "Edited summary text.", *after.EditedOutput)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestShareSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tid := f.upload(t, "content")
	out, err := f.uc.GenerateSummary(ctx, &entity.GenerateSummaryRequest{TranscriptID: tid})
	require.NoError(t, err)
	require.NoError(t, f.uc.UpdateSummary(ctx, out.SummaryID, &entity.UpdateSummaryRequest{Edited: "Edited summary text."}))

	res, err := f.uc.ShareSummary(ctx, &entity.ShareSummaryRequest{SummaryID: out.SummaryID, Recipients: []string{"a@example.com"}})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, "test-123", res.MessageID)

	require.Len(t, f.sender.Calls, 1)
	assert.Equal(t, mocks.SendCall{
		Recipients: []string{"a@example.com"},
		Subject:    "Meeting Summary",
		Body:       "Edited summary text.",
	}, f.sender.Calls[0])
}

func TestShareSummaryValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.ShareSummary(ctx, &entity.ShareSummaryRequest{SummaryID: "x", Recipients: []string{}})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = f.uc.ShareSummary(ctx, &entity.ShareSummaryRequest{Recipients: []string{"a@example.com"}})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = f.uc.ShareSummary(ctx, &entity.ShareSummaryRequest{SummaryID: "missing", Recipients: []string{"a@example.com"}})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	assert.Empty(t, f.sender.Calls)
}

func TestShareSummaryDeliveryFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tid := f.upload(t, "content")
	out, err := f.uc.GenerateSummary(ctx, &entity.GenerateSummaryRequest{TranscriptID: tid})
	require.NoError(t, err)
	f.sender.SendFunc = func(context.Context, []string, string, string) (string, error) {
		return "", apperr.Delivery(errors.New("connection refused"))
	}

	_, err = f.uc.ShareSummary(ctx, &entity.ShareSummaryRequest{SummaryID: out.SummaryID, Recipients: []string{"a@example.com"}})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindDelivery))
}
