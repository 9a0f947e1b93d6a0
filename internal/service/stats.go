package service

import (
	"context"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/repository"
)

type statsService struct {
	statsRepo repository.StatsRepository
	orgRepo   repository.OrganizationRepository
}

func NewStatsService(statsRepo repository.StatsRepository, orgRepo repository.OrganizationRepository) StatsService {
	return &statsService{statsRepo: statsRepo, orgRepo: orgRepo}
}

func (s *statsService) ForOrg(ctx context.Context, actorID, orgID string) (*domain.OrgStats, error) {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}
	if !org.HasMember(actorID) {
		return nil, ErrNotAMember
	}
	stats, err := s.statsRepo.OrgStats(ctx, orgID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return stats, nil
}

func (s *statsService) ForUser(ctx context.Context, userID, orgID string) (*domain.UserStats, error) {
	stats, err := s.statsRepo.UserStats(ctx, userID, orgID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return stats, nil
}
