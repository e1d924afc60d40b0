package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xilidan/meeting-summary/pkg/apperr"
	"github.com/xilidan/meeting-summary/pkg/json"
	"github.com/xilidan/meeting-summary/services/summary/entity"
	"github.com/xilidan/meeting-summary/services/summary/usecase"
)

// multipartOverhead leaves room for form boundaries and a text field next to the file.
const multipartOverhead = 1 << 20

type uploadTextBody struct {
	Text string `json:"text"`
}

// UploadTranscript accepts a multipart "file", a form "text" field or a JSON {"text"} body.
func (h *Handler) UploadTranscript(w http.ResponseWriter, r *http.Request) {
	req, err := h.readUpload(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.usecase.UploadTranscript(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	json.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (*entity.UploadTranscriptRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, usecase.MaxUploadBytes+multipartOverhead)
		if err := r.ParseMultipartForm(usecase.MaxUploadBytes + multipartOverhead); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, apperr.Validation("File too large: limit is %d bytes", usecase.MaxUploadBytes)
			}
			return nil, apperr.New(apperr.KindValidation, fmt.Errorf("invalid multipart body: %w", err))
		}

		file, header, err := r.FormFile("file")
		if errors.Is(err, http.ErrMissingFile) {
			return &entity.UploadTranscriptRequest{Content: r.FormValue("text")}, nil
		}
		if err != nil {
			return nil, apperr.New(apperr.KindValidation, fmt.Errorf("invalid file field: %w", err))
		}
		defer file.Close()

		// one byte past the limit is enough to reject oversized files
		data, err := io.ReadAll(io.LimitReader(file, usecase.MaxUploadBytes+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file: %w", err)
		}
		return &entity.UploadTranscriptRequest{
			FromFile: true,
			Filename: header.Filename,
			Size:     header.Size,
			Content:  string(data),
		}, nil

	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, json.MaxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return nil, apperr.New(apperr.KindValidation, fmt.Errorf("invalid form body: %w", err))
		}
		return &entity.UploadTranscriptRequest{Content: r.PostForm.Get("text")}, nil

	default:
		var body uploadTextBody
		if err := json.ParseJSON(w, r, &body); err != nil {
			return nil, apperr.New(apperr.KindValidation, err)
		}
		return &entity.UploadTranscriptRequest{Content: body.Text}, nil
	}
}

func (h *Handler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	t, err := h.usecase.GetTranscript(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	json.WriteJSON(w, http.StatusOK, t)
}
