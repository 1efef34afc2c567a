// backend/src/handlers/league_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/username/osmtracker/backend/src/logger"
	"github.com/username/osmtracker/backend/src/services"
	"github.com/username/osmtracker/backend/src/utils"
)

type LeagueHandler struct {
	leagueService services.LeagueService
}

func NewLeagueHandler(leagueService services.LeagueService) *LeagueHandler {
	return &LeagueHandler{leagueService: leagueService}
}

// serviceError maps service sentinels onto HTTP status codes.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrLeagueIDRequired):
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrLeagueNotFound), errors.Is(err, services.ErrManagerNotFound):
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
	default:
		utils.SendJSONError(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *LeagueHandler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.leagueService.ListLeagues()
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to list leagues", "error", err)
		serviceError(w, err)
		return
	}
	utils.SendJSON(w, leagues, http.StatusOK)
}

func (h *LeagueHandler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		utils.SendJSONError(w, "League name is required", http.StatusBadRequest)
		return
	}
	league, err := h.leagueService.CreateLeague(req.Name)
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to create league", "error", err)
		serviceError(w, err)
		return
	}
	utils.SendJSON(w, league, http.StatusCreated)
}

func (h *LeagueHandler) GetLeague(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "id")
	data, err := h.leagueService.GetLeagueData(leagueID)
	if err != nil {
		serviceError(w, err)
		return
	}
	utils.SendJSON(w, data, http.StatusOK)
}

func (h *LeagueHandler) DeleteLeague(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "id")
	if err := h.leagueService.DeleteLeague(leagueID); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeagueHandler) SaveManagers(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "id")
	var req struct {
		Assignments []services.ManagerAssignmentRow `json:"assignments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if err := h.leagueService.SaveManagers(leagueID, req.Assignments); err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to save managers", "leagueID", leagueID, "error", err)
		serviceError(w, err)
		return
	}
	utils.SendJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
