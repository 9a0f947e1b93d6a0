package service

import (
	"context"
	"testing"
	"time"

	"foundly-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrgRepo struct {
	mock.Mock
}

func (m *mockOrgRepo) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*domain.Organization), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrgRepo) List(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	if o := args.Get(0); o != nil {
		return o.([]domain.Organization), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrgRepo) UpdateAttributes(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

type mockHourRepo struct {
	mock.Mock
}

func (m *mockHourRepo) Create(ctx context.Context, log *domain.HourLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *mockHourRepo) GetByID(ctx context.Context, id string) (*domain.HourLog, error) {
	args := m.Called(ctx, id)
	if l := args.Get(0); l != nil {
		return l.(*domain.HourLog), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHourRepo) Update(ctx context.Context, log *domain.HourLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *mockHourRepo) ListByUser(ctx context.Context, userID, orgID string) ([]domain.HourLog, error) {
	args := m.Called(ctx, userID, orgID)
	if l := args.Get(0); l != nil {
		return l.([]domain.HourLog), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHourRepo) ListByOrg(ctx context.Context, orgID string, status string) ([]domain.HourLog, error) {
	args := m.Called(ctx, orgID, status)
	if l := args.Get(0); l != nil {
		return l.([]domain.HourLog), args.Error(1)
	}
	return nil, args.Error(1)
}

func testOrg() *domain.Organization {
	now := time.Now()
	return &domain.Organization{
		ID:   "o1",
		Name: "Scouts",
		Members: []domain.Member{
			{UserID: "admin", Role: domain.MemberRoleAdmin, JoinedAt: now, IsActive: true},
			{UserID: "mod", Role: domain.MemberRoleModerator, JoinedAt: now, IsActive: true},
			{UserID: "vol", Role: domain.MemberRoleMember, JoinedAt: now, IsActive: true},
		},
	}
}

func TestHourLog(t *testing.T) {
	ctx := context.Background()

	t.Run("MemberLogsPendingHours", func(t *testing.T) {
		orgs := new(mockOrgRepo)
		hours := new(mockHourRepo)
		svc := NewHourService(hours, orgs)
		orgs.On("GetByID", ctx, "o1").Return(testOrg(), nil)
		hours.On("Create", ctx, mock.AnythingOfType("*domain.HourLog")).Return(nil)

		log, err := svc.Log(ctx, &domain.HourLog{UserID: "vol", OrganizationID: "o1", Hours: 2.5, Activity: "Beach cleanup"})
		require.NoError(t, err)
		assert.Equal(t, domain.HourLogStatusPending, log.Status)
		assert.NotEmpty(t, log.ID)
		hours.AssertExpectations(t)
	})

	t.Run("NonMemberRejected", func(t *testing.T) {
		orgs := new(mockOrgRepo)
		svc := NewHourService(new(mockHourRepo), orgs)
		orgs.On("GetByID", ctx, "o1").Return(testOrg(), nil)

		_, err := svc.Log(ctx, &domain.HourLog{UserID: "stranger", OrganizationID: "o1", Hours: 2, Activity: "x"})
		assert.ErrorIs(t, err, ErrNotAMember)
	})

	t.Run("BoundsChecked", func(t *testing.T) {
		svc := NewHourService(new(mockHourRepo), new(mockOrgRepo))
		for _, h := range []float64{0, -1, 25} {
			_, err := svc.Log(ctx, &domain.HourLog{UserID: "vol", OrganizationID: "o1", Hours: h, Activity: "x"})
			assert.ErrorIs(t, err, ErrInvalidAttributes, "hours=%v", h)
		}
	})

	t.Run("UnknownOrganization", func(t *testing.T) {
		orgs := new(mockOrgRepo)
		svc := NewHourService(new(mockHourRepo), orgs)
		orgs.On("GetByID", ctx, "gone").Return(nil, nil)

		_, err := svc.Log(ctx, &domain.HourLog{UserID: "vol", OrganizationID: "gone", Hours: 2, Activity: "x"})
		assert.ErrorIs(t, err, ErrOrganizationNotFound)
	})
}

func TestHourReview(t *testing.T) {
	ctx := context.Background()
	pending := func() *domain.HourLog {
		return &domain.HourLog{ID: "h1", UserID: "vol", OrganizationID: "o1", Hours: 3, Activity: "Food drive", Status: domain.HourLogStatusPending}
	}

	t.Run("ModeratorApproves", func(t *testing.T) {
		orgs := new(mockOrgRepo)
		hours := new(mockHourRepo)
		svc := NewHourService(hours, orgs)
		hours.On("GetByID", ctx, "h1").Return(pending(), nil)
		orgs.On("GetByID", ctx, "o1").Return(testOrg(), nil)
		hours.On("Update", ctx, mock.AnythingOfType("*domain.HourLog")).Return(nil)

		log, err := svc.Review(ctx, "mod", "h1", true)
		require.NoError(t, err)
		assert.Equal(t, domain.HourLogStatusApproved, log.Status)
		require.NotNil(t, log.ReviewedBy)
		assert.Equal(t, "mod", *log.ReviewedBy)
	})

	t.Run("AdminRejects", func(t *testing.T) {
		orgs := new(mockOrgRepo)
		hours := new(mockHourRepo)
		svc := NewHourService(hours, orgs)
		hours.On("GetByID", ctx, "h1").Return(pending(), nil)
		orgs.On("GetByID", ctx, "o1").Return(testOrg(), nil)
		hours.On("Update", ctx, mock.AnythingOfType("*domain.HourLog")).Return(nil)

		log, err := svc.Review(ctx, "admin", "h1", false)
		require.NoError(t, err)
		assert.Equal(t, domain.HourLogStatusRejected, log.Status)
	})

	t.Run("PlainMemberForbidden", func(t *testing.T) {
		orgs := new(mockOrgRepo)
		hours := new(mockHourRepo)
		svc := NewHourService(hours, orgs)
		hours.On("GetByID", ctx, "h1").Return(pending(), nil)
		orgs.On("GetByID", ctx, "o1").Return(testOrg(), nil)

		_, err := svc.Review(ctx, "vol", "h1", true)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("MissingLog", func(t *testing.T) {
		hours := new(mockHourRepo)
		svc := NewHourService(hours, new(mockOrgRepo))
		hours.On("GetByID", ctx, "gone").Return(nil, nil)

		_, err := svc.Review(ctx, "admin", "gone", true)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
