// Package mocks holds hand-written test doubles for the usecase dependencies.
package mocks

import (
	"context"
	"sync"
)

type CompleterMock struct {
	CompleteFunc func(ctx context.Context, model, prompt string, maxTokens int) (string, error)

	mu    sync.Mutex
	Calls []CompleteCall
}

type CompleteCall struct {
	Model     string
	Prompt    string
	MaxTokens int
}

func (m *CompleterMock) Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, CompleteCall{Model: model, Prompt: prompt, MaxTokens: maxTokens})
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, model, prompt, maxTokens)
	}
	return "", nil
}

type SenderMock struct {
	SendFunc func(ctx context.Context, recipients []string, subject, body string) (string, error)

	mu    sync.Mutex
	Calls []SendCall
}

type SendCall struct {
	Recipients []string
	Subject    string
	Body       string
}

func (m *SenderMock) Send(ctx context.Context, recipients []string, subject, body string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, SendCall{Recipients: recipients, Subject: subject, Body: body})
	m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(ctx, recipients, subject, body)
	}
	return "sent", nil
}
