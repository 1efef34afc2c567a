// backend/src/handlers/report_handler.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/username/osmtracker/backend/src/logger"
	"github.com/username/osmtracker/backend/src/services"
	"github.com/username/osmtracker/backend/src/utils"
)

// ReportHandler serves the computed league statistics, manager drill-downs
// and squad sale recommendations. Everything here is transient: recomputed
// (or cache-served) on each request, never persisted.
type ReportHandler struct {
	leagueService services.LeagueService
}

func NewReportHandler(leagueService services.LeagueService) *ReportHandler {
	return &ReportHandler{leagueService: leagueService}
}

func (h *ReportHandler) GetLeagueReport(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "id")
	report, err := h.leagueService.GetLeagueReport(leagueID)
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to build league report", "leagueID", leagueID, "error", err)
		serviceError(w, err)
		return
	}
	utils.SendJSON(w, report, http.StatusOK)
}

func (h *ReportHandler) GetManagerReport(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "id")
	managerName := chi.URLParam(r, "name")
	report, err := h.leagueService.GetManagerReport(leagueID, managerName)
	if err != nil {
		serviceError(w, err)
		return
	}
	utils.SendJSON(w, report, http.StatusOK)
}

func (h *ReportHandler) RecommendSales(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "id")
	req, ok := decodePaste(w, r)
	if !ok {
		return
	}
	recommendations, err := h.leagueService.RecommendSales(leagueID, req.Text)
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Failed to build recommendations", "leagueID", leagueID, "error", err)
		serviceError(w, err)
		return
	}
	utils.SendJSON(w, recommendations, http.StatusOK)
}
