package entity

type (
	GenerateSummaryRequest struct {
		TranscriptID string `json:"transcriptId"`
		PromptID     string `json:"promptId,omitempty"`
	}

	GenerateSummaryResponse struct {
		SummaryID string `json:"summaryId"`
		Raw       string `json:"raw"`
	}

	UpdateSummaryRequest struct {
		Edited string `json:"edited"`
	}
)
