package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/logger"
	"foundly-backend/internal/repository"
	"foundly-backend/internal/security"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo      repository.UserRepository
	membershipSvc MembershipService
	emailSvc      EmailService
	tokens        security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, membershipSvc MembershipService, emailSvc EmailService, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo:      userRepo,
		membershipSvc: membershipSvc,
		emailSvc:      emailSvc,
		tokens:        tokens,
	}
}

// Register creates the account and, when a join code is supplied, enrolls the
// new user through the membership service. Registration itself succeeds even
// if the code turns out to be invalid; the client is told via the error and
// can retry the join separately.
func (s *authService) Register(ctx context.Context, name, email, password, joinCode string) (*domain.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(name) == "" {
		return nil, "", "", fmt.Errorf("%w: name and email are required", ErrInvalidAttributes)
	}
	if len(password) < 8 {
		return nil, "", "", fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidAttributes)
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", "", mapStoreError(err)
	}
	if existing != nil {
		return nil, "", "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(name),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", mapStoreError(err)
	}

	if code := strings.TrimSpace(joinCode); code != "" {
		if _, _, err := s.membershipSvc.Join(ctx, user.ID, code); err != nil {
			if errors.Is(err, ErrOrganizationNotFound) {
				return nil, "", "", err
			}
			return nil, "", "", fmt.Errorf("account created but join failed: %w", err)
		}
		// Re-read so the returned user carries the new membership.
		if refreshed, err := s.userRepo.GetByID(ctx, user.ID); err == nil {
			user = refreshed
		}
	}

	if err := s.emailSvc.SendWelcome(ctx, user.Email, user.Name); err != nil {
		logger.Warn("Failed to send welcome email", "user_id", user.ID, "error", err)
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", "", mapStoreError(err)
	}
	if user == nil {
		return nil, "", "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", mapStoreError(err)
	}
	if user == nil {
		return "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *authService) issueTokens(user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
