package service

import (
	"context"
	"fmt"
	"strings"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/repository"

	"github.com/google/uuid"
)

type messageService struct {
	messageRepo repository.MessageRepository
	orgRepo     repository.OrganizationRepository
}

func NewMessageService(messageRepo repository.MessageRepository, orgRepo repository.OrganizationRepository) MessageService {
	return &messageService{messageRepo: messageRepo, orgRepo: orgRepo}
}

func (s *messageService) Post(ctx context.Context, authorID, orgID, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: message body is required", ErrInvalidAttributes)
	}
	if err := s.requireMember(ctx, authorID, orgID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		AuthorID:       authorID,
		Body:           body,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, mapStoreError(err)
	}
	return msg, nil
}

func (s *messageService) List(ctx context.Context, actorID, orgID string, limit, offset int32) ([]domain.Message, error) {
	if err := s.requireMember(ctx, actorID, orgID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	msgs, err := s.messageRepo.ListByOrg(ctx, orgID, limit, offset)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return msgs, nil
}

func (s *messageService) Delete(ctx context.Context, authorID, messageID string) error {
	return mapStoreError(s.messageRepo.Delete(ctx, messageID, authorID))
}

func (s *messageService) requireMember(ctx context.Context, userID, orgID string) error {
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
