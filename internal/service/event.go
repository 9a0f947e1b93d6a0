package service

import (
	"context"
	"fmt"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/repository"

	"github.com/google/uuid"
)

type eventService struct {
	eventRepo repository.EventRepository
	orgRepo   repository.OrganizationRepository
}

func NewEventService(eventRepo repository.EventRepository, orgRepo repository.OrganizationRepository) EventService {
	return &eventService{eventRepo: eventRepo, orgRepo: orgRepo}
}

func (s *eventService) Create(ctx context.Context, actorID string, event *domain.Event) (*domain.Event, error) {
	if event.Title == "" {
		return nil, fmt.Errorf("%w: event title is required", ErrInvalidAttributes)
	}
	if !event.EndTime.After(event.StartTime) {
		return nil, fmt.Errorf("%w: event must end after it starts", ErrInvalidAttributes)
	}
	if err := s.requireMember(ctx, actorID, event.OrganizationID); err != nil {
		return nil, err
	}

	event.ID = uuid.NewString()
	event.CreatedBy = actorID
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, mapStoreError(err)
	}
	return event, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if event == nil {
		return nil, ErrNotFound
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, actorID string, event *domain.Event) error {
	existing, err := s.eventRepo.GetByID(ctx, event.ID)
	if err != nil {
		return mapStoreError(err)
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := s.requireEditor(ctx, actorID, existing); err != nil {
		return err
	}

	existing.Title = event.Title
	existing.Description = event.Description
	existing.Location = event.Location
	existing.StartTime = event.StartTime
	existing.EndTime = event.EndTime
	return mapStoreError(s.eventRepo.Update(ctx, existing))
}

func (s *eventService) Delete(ctx context.Context, actorID, id string) error {
	existing, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return mapStoreError(err)
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := s.requireEditor(ctx, actorID, existing); err != nil {
		return err
	}
	return mapStoreError(s.eventRepo.Delete(ctx, id))
}

func (s *eventService) ListForOrg(ctx context.Context, actorID, orgID string) ([]domain.Event, error) {
	if err := s.requireMember(ctx, actorID, orgID); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return events, nil
}

func (s *eventService) RSVP(ctx context.Context, userID, eventID string, attending bool) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if event == nil {
		return nil, ErrNotFound
	}
	if err := s.requireMember(ctx, userID, event.OrganizationID); err != nil {
		return nil, err
	}

	if attending && !event.HasAttendee(userID) {
		event.Attendees = append(event.Attendees, userID)
	} else if !attending {
		var attendees []string
		for _, id := range event.Attendees {
			if id != userID {
				attendees = append(attendees, id)
			}
		}
		event.Attendees = attendees
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, mapStoreError(err)
	}
	return event, nil
}

func (s *eventService) requireMember(ctx context.Context, userID, orgID string) error {
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

func (s *eventService) requireEditor(ctx context.Context, userID string, event *domain.Event) error {
	if event.CreatedBy == userID {
		return nil
	}
	org, err := s.orgRepo.GetByID(ctx, event.OrganizationID)
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
