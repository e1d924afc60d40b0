package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xilidan/meeting-summary/pkg/apperr"
	"github.com/xilidan/meeting-summary/pkg/json"
	"github.com/xilidan/meeting-summary/pkg/logger"
	"github.com/xilidan/meeting-summary/services/summary/usecase"
)

type Handler struct {
	usecase usecase.Usecase
	log     *slog.Logger
}

type OKResponse struct {
	OK bool `json:"ok"`
}

func New(uc usecase.Usecase, log *slog.Logger) *Handler {
	return &Handler{
		usecase: uc,
		log:     log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(api chi.Router) {
		api.Get("/health", h.Health)

		api.Post("/uploadTranscript", h.UploadTranscript)
		api.Get("/transcript/{id}", h.GetTranscript)

		api.Post("/setPrompt", h.SetPrompt)

		api.Post("/generateSummary", h.GenerateSummary)
		api.Get("/summary/{id}", h.GetSummary)
		api.Put("/summary/{id}", h.UpdateSummary)
		api.Post("/shareSummary", h.ShareSummary)
	})
	h.log.Debug("routes registered")
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	json.WriteJSON(w, http.StatusOK, OKResponse{OK: true})
}

// writeError maps err to its status and writes the error envelope.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorErr(r.Context(), "request failed", err,
			slog.String("kind", apperr.KindOf(err).String()))
	} else {
		logger.FromContext(r.Context()).Debug("request rejected",
			slog.Int("status", status),
			slog.String("error", err.Error()))
	}
	json.WriteError(w, status, err)
}

// parseJSON decodes the body and reports malformed input as a validation error.
func (h *Handler) parseJSON(w http.ResponseWriter, r *http.Request, model any) bool {
	if err := json.ParseJSON(w, r, model); err != nil {
		h.writeError(w, r, apperr.New(apperr.KindValidation, err))
		return false
	}
	return true
}
