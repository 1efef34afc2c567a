// backend/src/handlers/import_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/username/osmtracker/backend/src/logger"
	"github.com/username/osmtracker/backend/src/services"
	"github.com/username/osmtracker/backend/src/utils"
)

// ImportHandler receives pasted text blocks (league template, transfer log)
// and feeds them through the parsers.
type ImportHandler struct {
	leagueService services.LeagueService
}

func NewImportHandler(leagueService services.LeagueService) *ImportHandler {
	return &ImportHandler{leagueService: leagueService}
}

type pasteRequest struct {
	Text string `json:"text"`
}

func decodePaste(w http.ResponseWriter, r *http.Request) (pasteRequest, bool) {
	var req pasteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid body", http.StatusBadRequest)
		return req, false
	}
	if req.Text == "" {
		utils.SendJSONError(w, "Text is required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (h *ImportHandler) ImportTemplate(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "id")
	req, ok := decodePaste(w, r)
	if !ok {
		return
	}
	result, err := h.leagueService.ImportTemplate(leagueID, req.Text)
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Template import failed", "leagueID", leagueID, "error", err)
		serviceError(w, err)
		return
	}
	utils.SendJSON(w, result, http.StatusOK)
}

func (h *ImportHandler) ImportTransfers(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "id")
	req, ok := decodePaste(w, r)
	if !ok {
		return
	}
	result, err := h.leagueService.ImportTransfers(leagueID, req.Text)
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Transfer import failed", "leagueID", leagueID, "error", err)
		serviceError(w, err)
		return
	}
	utils.SendJSON(w, result, http.StatusCreated)
}

// PreviewTransfers parses without persisting, so the user can check the
// disambiguation before committing.
func (h *ImportHandler) PreviewTransfers(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "id")
	req, ok := decodePaste(w, r)
	if !ok {
		return
	}
	result, err := h.leagueService.PreviewTransfers(leagueID, req.Text)
	if err != nil {
		serviceError(w, err)
		return
	}
	utils.SendJSON(w, result, http.StatusOK)
}

func (h *ImportHandler) GetTransfers(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "id")
	transfers, err := h.leagueService.GetTransfers(leagueID)
	if err != nil {
		serviceError(w, err)
		return
	}
	utils.SendJSON(w, transfers, http.StatusOK)
}
