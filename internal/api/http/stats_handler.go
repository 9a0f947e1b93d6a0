package http

import (
	"net/http"

	"foundly-backend/internal/service"

	"github.com/gorilla/mux"
)

type StatsHandler struct {
	statsSvc service.StatsService
}

func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

func (h *StatsHandler) ForOrg(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	stats, err := h.statsSvc.ForOrg(r.Context(), userID, mux.Vars(r)["orgID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) ForMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	stats, err := h.statsSvc.ForUser(r.Context(), userID, mux.Vars(r)["orgID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
