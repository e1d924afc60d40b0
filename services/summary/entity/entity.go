package entity

import "time"

type (
	Transcript struct {
		ID        string    `json:"id"`
		Filename  *string   `json:"filename"`
		Content   string    `json:"content"`
		CreatedAt time.Time `json:"created_at"`
	}

	Prompt struct {
		ID           string    `json:"id"`
		TranscriptID string    `json:"transcript_id"`
		Prompt       string    `json:"prompt"`
		CreatedAt    time.Time `json:"created_at"`
	}

	Summary struct {
		ID           string    `json:"id"`
		TranscriptID string    `json:"transcript_id"`
		PromptID     *string   `json:"-"`
		RawOutput    string    `json:"raw_output"`
		EditedOutput *string   `json:"edited_output"`
		CreatedAt    time.Time `json:"created_at"`
		UpdatedAt    time.Time `json:"updated_at"`
	}
)

// Shareable is the edited text when present, otherwise the raw model output.
func (s *Summary) Shareable() string {
	if s.EditedOutput != nil && *s.EditedOutput != "" {
		return *s.EditedOutput
	}
	return s.RawOutput
}
