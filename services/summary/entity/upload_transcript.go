package entity

type (
	// UploadTranscriptRequest carries either a file (FromFile) or raw text.
	UploadTranscriptRequest struct {
		FromFile bool
		Filename string
		Size     int64
		Content  string
	}

	UploadTranscriptResponse struct {
		TranscriptID string `json:"transcriptId"`
		Length       int    `json:"length"`
	}
)
