package service

import (
	"context"

	"foundly-backend/internal/domain"
)

// MembershipService owns the membership edge between users and organizations.
// Every operation leaves the two-sided representation consistent: a user
// references an organization iff the organization lists the user.
type MembershipService interface {
	CreateWithOwner(ctx context.Context, ownerUserID string, attrs OrganizationAttributes) (*domain.Organization, error)
	Join(ctx context.Context, userID, joinCode string) (*domain.Organization, domain.JoinOutcome, error)
	Leave(ctx context.Context, userID, organizationID string) error
	SetCurrent(ctx context.Context, userID, organizationID string) error
	Reconcile(ctx context.Context, organizationID string) (*domain.RepairReport, error)
}

type AuthService interface {
	Register(ctx context.Context, name, email, password, joinCode string) (*domain.User, string, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, []domain.Organization, error)
	UpdateProfile(ctx context.Context, userID, name, email, avatarURL string) error
}

type OrganizationService interface {
	Get(ctx context.Context, id string) (*domain.Organization, error)
	ListMine(ctx context.Context, userID string) ([]domain.Organization, error)
	UpdateAttributes(ctx context.Context, actorID string, org *domain.Organization) error
}

type HourService interface {
	Log(ctx context.Context, log *domain.HourLog) (*domain.HourLog, error)
	ListMine(ctx context.Context, userID, orgID string) ([]domain.HourLog, error)
	ListForOrg(ctx context.Context, actorID, orgID, status string) ([]domain.HourLog, error)
	Review(ctx context.Context, actorID, logID string, approve bool) (*domain.HourLog, error)
}

type ProjectService interface {
	Create(ctx context.Context, actorID string, project *domain.Project) (*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Update(ctx context.Context, actorID string, project *domain.Project) error
	Delete(ctx context.Context, actorID, id string) error
	ListForOrg(ctx context.Context, actorID, orgID string) ([]domain.Project, error)
}

type EventService interface {
	Create(ctx context.Context, actorID string, event *domain.Event) (*domain.Event, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	Update(ctx context.Context, actorID string, event *domain.Event) error
	Delete(ctx context.Context, actorID, id string) error
	ListForOrg(ctx context.Context, actorID, orgID string) ([]domain.Event, error)
	RSVP(ctx context.Context, userID, eventID string, attending bool) (*domain.Event, error)
}

type MessageService interface {
	Post(ctx context.Context, authorID, orgID, body string) (*domain.Message, error)
	List(ctx context.Context, actorID, orgID string, limit, offset int32) ([]domain.Message, error)
	Delete(ctx context.Context, authorID, messageID string) error
}

type StatsService interface {
	ForOrg(ctx context.Context, actorID, orgID string) (*domain.OrgStats, error)
	ForUser(ctx context.Context, userID, orgID string) (*domain.UserStats, error)
}

type EmailService interface {
	SendWelcome(ctx context.Context, email, name string) error
	SendJoinedOrganization(ctx context.Context, email, name, orgName string) error
	SendEventReminder(ctx context.Context, email, name, eventTitle string, orgName string) error
}
