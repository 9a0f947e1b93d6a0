package repository

import (
	"context"
	"errors"

	"foundly-backend/internal/domain"
)

// ErrVersionConflict is returned by versioned document writes when the row's
// current version no longer matches the version the caller read.
var ErrVersionConflict = errors.New("document version conflict")

// MembershipStore is the persistence contract the membership service depends
// on. Both membership write primitives replace the embedded edge array of a
// single document atomically; RunTransaction groups them with all-or-nothing
// semantics so a user-side and an org-side write either both land or neither
// does.
type MembershipStore interface {
	FindOrganizationByID(ctx context.Context, id string) (*domain.Organization, error)
	FindOrganizationByJoinCode(ctx context.Context, code string) (*domain.Organization, error)
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
	// ListUsersReferencing returns every user whose Organizations slice
	// contains orgID, regardless of the org-side state. Used by reconcile.
	ListUsersReferencing(ctx context.Context, orgID string) ([]domain.User, error)

	CreateOrganization(ctx context.Context, org *domain.Organization) error
	// WriteOrganizationMembers replaces the members array of one organization
	// document. expectedVersion is the version the caller read; the write
	// fails with ErrVersionConflict if the row moved on.
	WriteOrganizationMembers(ctx context.Context, orgID string, members []domain.Member, expectedVersion int64) error
	// WriteUserOrganizations replaces the organizations array and the current
	// organization pointer of one user document, with the same version check.
	WriteUserOrganizations(ctx context.Context, userID string, orgs []domain.OrgMembership, current *string, expectedVersion int64) error

	// RunTransaction executes fn against a store bound to a single database
	// transaction. If fn returns an error nothing is applied.
	RunTransaction(ctx context.Context, fn func(MembershipStore) error) error
}

// Get* and Find* methods return (nil, nil) when the row does not exist.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
}

type OrganizationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Organization, error)
	List(ctx context.Context) ([]domain.Organization, error)
	UpdateAttributes(ctx context.Context, org *domain.Organization) error
}

type HourLogRepository interface {
	Create(ctx context.Context, log *domain.HourLog) error
	GetByID(ctx context.Context, id string) (*domain.HourLog, error)
	Update(ctx context.Context, log *domain.HourLog) error
	ListByUser(ctx context.Context, userID, orgID string) ([]domain.HourLog, error)
	ListByOrg(ctx context.Context, orgID string, status string) ([]domain.HourLog, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id string) error
	ListByOrg(ctx context.Context, orgID string) ([]domain.Project, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id string) error
	ListByOrg(ctx context.Context, orgID string) ([]domain.Event, error)
	ListUpcoming(ctx context.Context, orgID string, withinHours int) ([]domain.Event, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListByOrg(ctx context.Context, orgID string, limit, offset int32) ([]domain.Message, error)
	Delete(ctx context.Context, id, authorID string) error
}

type StatsRepository interface {
	OrgStats(ctx context.Context, orgID string) (*domain.OrgStats, error)
	UserStats(ctx context.Context, userID, orgID string) (*domain.UserStats, error)
}
