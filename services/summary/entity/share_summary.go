package entity

type (
	ShareSummaryRequest struct {
		SummaryID  string   `json:"summaryId"`
		Recipients []string `json:"recipients"`
	}

	ShareSummaryResponse struct {
		OK        bool   `json:"ok"`
		MessageID string `json:"messageId"`
	}
)
