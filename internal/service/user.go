package service

import (
	"context"
	"strings"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
}

func NewUserService(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository) UserService {
	return &userService{userRepo: userRepo, orgRepo: orgRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.User, []domain.Organization, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, mapStoreError(err)
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	var orgs []domain.Organization
	for _, m := range user.Organizations {
		org, err := s.orgRepo.GetByID(ctx, m.OrganizationID)
		if err != nil || org == nil {
			continue
		}
		orgs = append(orgs, *org)
	}
	return user, orgs, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID, name, email, avatarURL string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return mapStoreError(err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" && email != user.Email {
		existing, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return mapStoreError(err)
		}
		if existing != nil && existing.ID != userID {
			return ErrEmailTaken
		}
		user.Email = email
	}
	if avatarURL != "" {
		user.AvatarURL = avatarURL
	}
	return mapStoreError(s.userRepo.UpdateProfile(ctx, user))
}
