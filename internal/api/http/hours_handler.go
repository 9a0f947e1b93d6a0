package http

import (
	"net/http"
	"time"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/service"

	"github.com/gorilla/mux"
)

type HoursHandler struct {
	hourSvc service.HourService
}

func NewHoursHandler(hourSvc service.HourService) *HoursHandler {
	return &HoursHandler{hourSvc: hourSvc}
}

type logHoursRequest struct {
	OrganizationID string  `json:"organization_id"`
	ProjectID      *string `json:"project_id,omitempty"`
	Activity       string  `json:"activity"`
	Description    string  `json:"description"`
	Hours          float64 `json:"hours"`
	Date           string  `json:"date"` // YYYY-MM-DD
}

func (h *HoursHandler) Log(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var req logHoursRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "date must be YYYY-MM-DD"})
		return
	}
	log, err := h.hourSvc.Log(r.Context(), &domain.HourLog{
		UserID:         userID,
		OrganizationID: req.OrganizationID,
		ProjectID:      req.ProjectID,
		Activity:       req.Activity,
		Description:    req.Description,
		Hours:          req.Hours,
		Date:           date,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

func (h *HoursHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	logs, err := h.hourSvc.ListMine(r.Context(), userID, mux.Vars(r)["orgID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *HoursHandler) ListForOrg(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	status := r.URL.Query().Get("status")
	logs, err := h.hourSvc.ListForOrg(r.Context(), userID, mux.Vars(r)["orgID"], status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

type reviewHoursRequest struct {
	Approve bool `json:"approve"`
}

func (h *HoursHandler) Review(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var req reviewHoursRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	log, err := h.hourSvc.Review(r.Context(), userID, mux.Vars(r)["logID"], req.Approve)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}
