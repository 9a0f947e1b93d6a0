package service

import (
	"context"
	"testing"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockMembershipSvc struct {
	mock.Mock
}

func (m *mockMembershipSvc) CreateWithOwner(ctx context.Context, ownerUserID string, attrs OrganizationAttributes) (*domain.Organization, error) {
	args := m.Called(ctx, ownerUserID, attrs)
	if o := args.Get(0); o != nil {
		return o.(*domain.Organization), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMembershipSvc) Join(ctx context.Context, userID, joinCode string) (*domain.Organization, domain.JoinOutcome, error) {
	args := m.Called(ctx, userID, joinCode)
	if o := args.Get(0); o != nil {
		return o.(*domain.Organization), args.Get(1).(domain.JoinOutcome), args.Error(2)
	}
	return nil, "", args.Error(2)
}

func (m *mockMembershipSvc) Leave(ctx context.Context, userID, organizationID string) error {
	args := m.Called(ctx, userID, organizationID)
	return args.Error(0)
}

func (m *mockMembershipSvc) SetCurrent(ctx context.Context, userID, organizationID string) error {
	args := m.Called(ctx, userID, organizationID)
	return args.Error(0)
}

func (m *mockMembershipSvc) Reconcile(ctx context.Context, organizationID string) (*domain.RepairReport, error) {
	args := m.Called(ctx, organizationID)
	if r := args.Get(0); r != nil {
		return r.(*domain.RepairReport), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockEmailSvc struct {
	mock.Mock
}

func (m *mockEmailSvc) SendWelcome(ctx context.Context, email, name string) error {
	args := m.Called(ctx, email, name)
	return args.Error(0)
}

func (m *mockEmailSvc) SendJoinedOrganization(ctx context.Context, email, name, orgName string) error {
	args := m.Called(ctx, email, name, orgName)
	return args.Error(0)
}

func (m *mockEmailSvc) SendEventReminder(ctx context.Context, email, name, eventTitle, orgName string) error {
	args := m.Called(ctx, email, name, eventTitle, orgName)
	return args.Error(0)
}

func newAuthFixture() (*mockUserRepo, *mockMembershipSvc, *mockEmailSvc, AuthService) {
	users := new(mockUserRepo)
	memberships := new(mockMembershipSvc)
	emails := new(mockEmailSvc)
	tokens := security.NewTokenManager("test-secret", 60, 10080)
	return users, memberships, emails, NewAuthService(users, memberships, emails, tokens)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		users, _, emails, svc := newAuthFixture()
		users.On("GetByEmail", ctx, "ada@example.com").Return(nil, nil)
		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
		emails.On("SendWelcome", ctx, "ada@example.com", "Ada").Return(nil)

		user, access, refresh, err := svc.Register(ctx, "Ada", "  Ada@Example.com ", "s3cretpass", "")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cretpass")))
		users.AssertExpectations(t)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		users, _, _, svc := newAuthFixture()
		users.On("GetByEmail", ctx, "ada@example.com").Return(&domain.User{ID: "u1"}, nil)

		_, _, _, err := svc.Register(ctx, "Ada", "ada@example.com", "s3cretpass", "")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		_, _, _, svc := newAuthFixture()
		_, _, _, err := svc.Register(ctx, "Ada", "ada@example.com", "short", "")
		assert.ErrorIs(t, err, ErrInvalidAttributes)
	})

	t.Run("WithJoinCode", func(t *testing.T) {
		users, memberships, emails, svc := newAuthFixture()
		users.On("GetByEmail", ctx, "ada@example.com").Return(nil, nil)
		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
		org := &domain.Organization{ID: "o1", Name: "Scouts"}
		memberships.On("Join", ctx, mock.AnythingOfType("string"), "ABC123").Return(org, domain.JoinOutcomeJoined, nil)
		enrolled := &domain.User{ID: "u1", Email: "ada@example.com", Name: "Ada",
			Organizations: []domain.OrgMembership{{OrganizationID: "o1", Role: domain.MemberRoleMember}}}
		users.On("GetByID", ctx, mock.AnythingOfType("string")).Return(enrolled, nil)
		emails.On("SendWelcome", ctx, "ada@example.com", "Ada").Return(nil)

		user, _, _, err := svc.Register(ctx, "Ada", "ada@example.com", "s3cretpass", "ABC123")
		require.NoError(t, err)
		assert.True(t, user.HasOrganization("o1"))
		memberships.AssertExpectations(t)
	})

	t.Run("UnknownJoinCode", func(t *testing.T) {
		users, memberships, _, svc := newAuthFixture()
		users.On("GetByEmail", ctx, "ada@example.com").Return(nil, nil)
		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
		memberships.On("Join", ctx, mock.AnythingOfType("string"), "ZZZZZZ").Return(nil, domain.JoinOutcome(""), ErrOrganizationNotFound)

		_, _, _, err := svc.Register(ctx, "Ada", "ada@example.com", "s3cretpass", "ZZZZZZ")
		assert.ErrorIs(t, err, ErrOrganizationNotFound)
	})

	t.Run("WelcomeEmailFailureIsNotFatal", func(t *testing.T) {
		users, _, emails, svc := newAuthFixture()
		users.On("GetByEmail", ctx, "ada@example.com").Return(nil, nil)
		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
		emails.On("SendWelcome", ctx, "ada@example.com", "Ada").Return(assert.AnError)

		_, _, _, err := svc.Register(ctx, "Ada", "ada@example.com", "s3cretpass", "")
		assert.NoError(t, err)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &domain.User{ID: "u1", Email: "ada@example.com", Name: "Ada", PasswordHash: string(hash)}

	t.Run("Success", func(t *testing.T) {
		users, _, _, svc := newAuthFixture()
		users.On("GetByEmail", ctx, "ada@example.com").Return(stored, nil)

		user, access, refresh, err := svc.Login(ctx, "Ada@Example.com", "s3cretpass")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		users, _, _, svc := newAuthFixture()
		users.On("GetByEmail", ctx, "ada@example.com").Return(stored, nil)

		_, _, _, err := svc.Login(ctx, "ada@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		users, _, _, svc := newAuthFixture()
		users.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil)

		_, _, _, err := svc.Login(ctx, "nobody@example.com", "s3cretpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret", 60, 10080)
	stored := &domain.User{ID: "u1", Email: "ada@example.com"}

	t.Run("Success", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewAuthService(users, new(mockMembershipSvc), new(mockEmailSvc), tokens)
		refresh, err := tokens.GenerateRefreshToken("u1", "ada@example.com")
		require.NoError(t, err)
		users.On("GetByID", ctx, "u1").Return(stored, nil)

		access, newRefresh, err := svc.Refresh(ctx, refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
	})

	t.Run("AccessTokenRejected", func(t *testing.T) {
		svc := NewAuthService(new(mockUserRepo), new(mockMembershipSvc), new(mockEmailSvc), tokens)
		access, err := tokens.GenerateAccessToken("u1", "ada@example.com")
		require.NoError(t, err)

		_, _, err = svc.Refresh(ctx, access)
		assert.ErrorIs(t, err, security.ErrWrongTokenType)
	})

	t.Run("DeletedUser", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewAuthService(users, new(mockMembershipSvc), new(mockEmailSvc), tokens)
		refresh, err := tokens.GenerateRefreshToken("gone", "gone@example.com")
		require.NoError(t, err)
		users.On("GetByID", ctx, "gone").Return(nil, nil)

		_, _, err = svc.Refresh(ctx, refresh)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		svc := NewAuthService(new(mockUserRepo), new(mockMembershipSvc), new(mockEmailSvc), tokens)
		_, _, err := svc.Refresh(ctx, "not-a-token")
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})
}
