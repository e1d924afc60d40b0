package handler

import (
	"net/http"

	"github.com/xilidan/meeting-summary/pkg/json"
	"github.com/xilidan/meeting-summary/services/summary/entity"
)

func (h *Handler) SetPrompt(w http.ResponseWriter, r *http.Request) {
	req := &entity.SetPromptRequest{}
	if !h.parseJSON(w, r, req) {
		return
	}

	res, err := h.usecase.SetPrompt(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	json.WriteJSON(w, http.StatusCreated, res)
}
