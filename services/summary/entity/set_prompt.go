package entity

type (
	SetPromptRequest struct {
		TranscriptID string `json:"transcriptId"`
		Prompt       string `json:"prompt"`
	}

	SetPromptResponse struct {
		PromptID string `json:"promptId"`
	}
)
