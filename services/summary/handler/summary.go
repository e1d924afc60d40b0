package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xilidan/meeting-summary/pkg/json"
	"github.com/xilidan/meeting-summary/services/summary/entity"
)

func (h *Handler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	req := &entity.GenerateSummaryRequest{}
	if !h.parseJSON(w, r, req) {
		return
	}

	res, err := h.usecase.GenerateSummary(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	json.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.usecase.GetSummary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	json.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) UpdateSummary(w http.ResponseWriter, r *http.Request) {
	req := &entity.UpdateSummaryRequest{}
	if !h.parseJSON(w, r, req) {
		return
	}

	if err := h.usecase.UpdateSummary(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		h.writeError(w, r, err)
		return
	}
	json.WriteJSON(w, http.StatusOK, OKResponse{OK: true})
}

func (h *Handler) ShareSummary(w http.ResponseWriter, r *http.Request) {
	req := &entity.ShareSummaryRequest{}
	if !h.parseJSON(w, r, req) {
		return
	}

	res, err := h.usecase.ShareSummary(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	json.WriteJSON(w, http.StatusOK, res)
}
