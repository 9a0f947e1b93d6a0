package service

import (
	"context"
	"fmt"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/repository"

	"github.com/google/uuid"
)

type projectService struct {
	projectRepo repository.ProjectRepository
	orgRepo     repository.OrganizationRepository
}

func NewProjectService(projectRepo repository.ProjectRepository, orgRepo repository.OrganizationRepository) ProjectService {
	return &projectService{projectRepo: projectRepo, orgRepo: orgRepo}
}

func (s *projectService) Create(ctx context.Context, actorID string, project *domain.Project) (*domain.Project, error) {
	if project.Name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidAttributes)
	}
	if err := s.requireMember(ctx, actorID, project.OrganizationID); err != nil {
		return nil, err
	}

	project.ID = uuid.NewString()
	project.CreatedBy = actorID
	if project.Status == "" {
		project.Status = domain.ProjectStatusPlanning
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, mapStoreError(err)
	}
	return project, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, actorID string, project *domain.Project) error {
	existing, err := s.projectRepo.GetByID(ctx, project.ID)
	if err != nil {
		return mapStoreError(err)
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := s.requireEditor(ctx, actorID, existing); err != nil {
		return err
	}

	existing.Name = project.Name
	existing.Description = project.Description
	if project.Status != "" {
		existing.Status = project.Status
	}
	existing.StartDate = project.StartDate
	existing.EndDate = project.EndDate
	return mapStoreError(s.projectRepo.Update(ctx, existing))
}

func (s *projectService) Delete(ctx context.Context, actorID, id string) error {
	existing, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return mapStoreError(err)
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := s.requireEditor(ctx, actorID, existing); err != nil {
		return err
	}
	return mapStoreError(s.projectRepo.Delete(ctx, id))
}

func (s *projectService) ListForOrg(ctx context.Context, actorID, orgID string) ([]domain.Project, error) {
	if err := s.requireMember(ctx, actorID, orgID); err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return projects, nil
}

func (s *projectService) requireMember(ctx context.Context, userID, orgID string) error {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return mapStoreError(err)
	}
	if org == nil {
		return ErrOrganizationNotFound
	}
	if !org.HasMember(userID) {
		return ErrNotAMember
	}
	return nil
}

// requireEditor allows the creator plus org admins and moderators.
func (s *projectService) requireEditor(ctx context.Context, userID string, project *domain.Project) error {
	if project.CreatedBy == userID {
		return nil
	}
	org, err := s.orgRepo.GetByID(ctx, project.OrganizationID)
	if err != nil {
		return mapStoreError(err)
	}
	if org == nil {
		return ErrOrganizationNotFound
	}
	role := org.MemberRoleOf(userID)
	if role != domain.MemberRoleAdmin && role != domain.MemberRoleModerator {
		return ErrForbidden
	}
	return nil
}
