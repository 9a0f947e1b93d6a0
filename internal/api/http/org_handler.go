package http

import (
	"net/http"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/service"

	"github.com/gorilla/mux"
)

type OrgHandler struct {
	membershipSvc service.MembershipService
	orgSvc        service.OrganizationService
}

func NewOrgHandler(membershipSvc service.MembershipService, orgSvc service.OrganizationService) *OrgHandler {
	return &OrgHandler{membershipSvc: membershipSvc, orgSvc: orgSvc}
}

type createOrgRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	JoinCode    string `json:"join_code,omitempty"`
}

func (h *OrgHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var req createOrgRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	org, err := h.membershipSvc.CreateWithOwner(r.Context(), userID, service.OrganizationAttributes{
		Name:        req.Name,
		Description: req.Description,
		JoinCode:    req.JoinCode,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, org)
}

type joinRequest struct {
	JoinCode string `json:"join_code"`
}

type joinResponse struct {
	Organization *domain.Organization `json:"organization"`
	Outcome      domain.JoinOutcome   `json:"outcome"`
}

func (h *OrgHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var req joinRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	org, outcome, err := h.membershipSvc.Join(r.Context(), userID, req.JoinCode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, joinResponse{Organization: org, Outcome: outcome})
}

func (h *OrgHandler) Leave(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	orgID := mux.Vars(r)["orgID"]
	if err := h.membershipSvc.Leave(r.Context(), userID, orgID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *OrgHandler) SetCurrent(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	orgID := mux.Vars(r)["orgID"]
	if err := h.membershipSvc.SetCurrent(r.Context(), userID, orgID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *OrgHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	orgID := mux.Vars(r)["orgID"]
	report, err := h.membershipSvc.Reconcile(r.Context(), orgID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *OrgHandler) Get(w http.ResponseWriter, r *http.Request) {
	org, err := h.orgSvc.Get(r.Context(), mux.Vars(r)["orgID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (h *OrgHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	orgs, err := h.orgSvc.ListMine(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

type updateOrgRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *OrgHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var req updateOrgRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	org := &domain.Organization{ID: mux.Vars(r)["orgID"], Name: req.Name, Description: req.Description}
	if err := h.orgSvc.UpdateAttributes(r.Context(), userID, org); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
