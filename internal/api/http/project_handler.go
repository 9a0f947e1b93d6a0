package http

import (
	"net/http"
	"time"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/service"

	"github.com/gorilla/mux"
)

type ProjectHandler struct {
	projectSvc service.ProjectService
}

func NewProjectHandler(projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc}
}

type projectRequest struct {
	OrganizationID string  `json:"organization_id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Status         string  `json:"status,omitempty"`
	StartDate      *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate        *string `json:"end_date,omitempty"`
}

func (req *projectRequest) toDomain() (*domain.Project, error) {
	p := &domain.Project{
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Description:    req.Description,
		Status:         domain.ProjectStatus(req.Status),
	}
	if req.StartDate != nil {
		d, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, err
		}
		p.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, err
		}
		p.EndDate = &d
	}
	return p, nil
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var req projectRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	project, err := req.toDomain()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "dates must be YYYY-MM-DD"})
		return
	}
	created, err := h.projectSvc.Create(r.Context(), userID, project)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectSvc.Get(r.Context(), mux.Vars(r)["projectID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	var req projectRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	project, err := req.toDomain()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "dates must be YYYY-MM-DD"})
		return
	}
	project.ID = mux.Vars(r)["projectID"]
	if err := h.projectSvc.Update(r.Context(), userID, project); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	if err := h.projectSvc.Delete(r.Context(), userID, mux.Vars(r)["projectID"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *ProjectHandler) ListForOrg(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	projects, err := h.projectSvc.ListForOrg(r.Context(), userID, mux.Vars(r)["orgID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}
