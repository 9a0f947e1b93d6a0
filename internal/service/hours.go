package service

import (
	"context"
	"fmt"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/repository"

	"github.com/google/uuid"
)

type hourService struct {
	hourRepo repository.HourLogRepository
	orgRepo  repository.OrganizationRepository
}

func NewHourService(hourRepo repository.HourLogRepository, orgRepo repository.OrganizationRepository) HourService {
	return &hourService{hourRepo: hourRepo, orgRepo: orgRepo}
}

func (s *hourService) Log(ctx context.Context, log *domain.HourLog) (*domain.HourLog, error) {
	if log.Hours <= 0 || log.Hours > 24 {
		return nil, fmt.Errorf("%w: hours must be between 0 and 24", ErrInvalidAttributes)
	}
	if log.Activity == "" {
		return nil, fmt.Errorf("%w: activity is required", ErrInvalidAttributes)
	}
	if err := s.requireMember(ctx, log.UserID, log.OrganizationID); err != nil {
		return nil, err
	}

	log.ID = uuid.NewString()
	log.Status = domain.HourLogStatusPending
	if err := s.hourRepo.Create(ctx, log); err != nil {
		return nil, mapStoreError(err)
	}
	return log, nil
}

func (s *hourService) ListMine(ctx context.Context, userID, orgID string) ([]domain.HourLog, error) {
	logs, err := s.hourRepo.ListByUser(ctx, userID, orgID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return logs, nil
}

func (s *hourService) ListForOrg(ctx context.Context, actorID, orgID, status string) ([]domain.HourLog, error) {
	if err := s.requireReviewer(ctx, actorID, orgID); err != nil {
		return nil, err
	}
	logs, err := s.hourRepo.ListByOrg(ctx, orgID, status)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return logs, nil
}

func (s *hourService) Review(ctx context.Context, actorID, logID string, approve bool) (*domain.HourLog, error) {
	log, err := s.hourRepo.GetByID(ctx, logID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if log == nil {
		return nil, ErrNotFound
	}
	if err := s.requireReviewer(ctx, actorID, log.OrganizationID); err != nil {
		return nil, err
	}

	if approve {
		log.Status = domain.HourLogStatusApproved
	} else {
		log.Status = domain.HourLogStatusRejected
	}
	log.ReviewedBy = &actorID
	if err := s.hourRepo.Update(ctx, log); err != nil {
		return nil, mapStoreError(err)
	}
	return log, nil
}

func (s *hourService) requireMember(ctx context.Context, userID, orgID string) error {
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

func (s *hourService) requireReviewer(ctx context.Context, userID, orgID string) error {
	org, err := s.orgRepo.GetByID(ctx, orgID)
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
