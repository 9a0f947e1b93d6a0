package service

import (
	"context"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/repository"
)

type organizationService struct {
	orgRepo  repository.OrganizationRepository
	userRepo repository.UserRepository
}

func NewOrganizationService(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository) OrganizationService {
	return &organizationService{orgRepo: orgRepo, userRepo: userRepo}
}

func (s *organizationService) Get(ctx context.Context, id string) (*domain.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}
	return org, nil
}

func (s *organizationService) ListMine(ctx context.Context, userID string) ([]domain.Organization, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var orgs []domain.Organization
	for _, m := range user.Organizations {
		org, err := s.orgRepo.GetByID(ctx, m.OrganizationID)
		if err != nil || org == nil {
			continue
		}
		orgs = append(orgs, *org)
	}
	return orgs, nil
}

// UpdateAttributes lets admins and moderators change the name and
// description. Members and the join code are out of reach here.
func (s *organizationService) UpdateAttributes(ctx context.Context, actorID string, org *domain.Organization) error {
	existing, err := s.orgRepo.GetByID(ctx, org.ID)
	if err != nil {
		return mapStoreError(err)
	}
	if existing == nil {
		return ErrOrganizationNotFound
	}
	role := existing.MemberRoleOf(actorID)
	if role != domain.MemberRoleAdmin && role != domain.MemberRoleModerator {
		return ErrForbidden
	}
	existing.Name = org.Name
	existing.Description = org.Description
	return mapStoreError(s.orgRepo.UpdateAttributes(ctx, existing))
}
