package http

import (
	"net/http"
	"time"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/service"

	"github.com/gorilla/mux"
)

type EventHandler struct {
	eventSvc service.EventService
}

func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

type eventRequest struct {
	OrganizationID string `json:"organization_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	StartTime      string `json:"start_time"` // RFC 3339
	EndTime        string `json:"end_time"`
}

func (req *eventRequest) toDomain() (*domain.Event, error) {
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, err
	}
	return &domain.Event{
		OrganizationID: req.OrganizationID,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		StartTime:      start,
		EndTime:        end,
	}, nil
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var req eventRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	event, err := req.toDomain()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "times must be RFC 3339"})
		return
	}
	created, err := h.eventSvc.Create(r.Context(), userID, event)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.eventSvc.Get(r.Context(), mux.Vars(r)["eventID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var req eventRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	event, err := req.toDomain()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "times must be RFC 3339"})
		return
	}
	event.ID = mux.Vars(r)["eventID"]
	if err := h.eventSvc.Update(r.Context(), userID, event); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	if err := h.eventSvc.Delete(r.Context(), userID, mux.Vars(r)["eventID"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *EventHandler) ListForOrg(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	events, err := h.eventSvc.ListForOrg(r.Context(), userID, mux.Vars(r)["orgID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

type rsvpRequest struct {
	Attending bool `json:"attending"`
}

func (h *EventHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var req rsvpRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	event, err := h.eventSvc.RSVP(r.Context(), userID, mux.Vars(r)["eventID"], req.Attending)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}
