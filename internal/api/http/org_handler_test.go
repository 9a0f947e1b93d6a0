package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/security"
	"foundly-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubMembershipSvc struct {
	mock.Mock
}

func (m *stubMembershipSvc) CreateWithOwner(ctx context.Context, ownerUserID string, attrs service.OrganizationAttributes) (*domain.Organization, error) {
	args := m.Called(ownerUserID, attrs)
	if o := args.Get(0); o != nil {
		return o.(*domain.Organization), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubMembershipSvc) Join(ctx context.Context, userID, joinCode string) (*domain.Organization, domain.JoinOutcome, error) {
	args := m.Called(userID, joinCode)
	if o := args.Get(0); o != nil {
		return o.(*domain.Organization), args.Get(1).(domain.JoinOutcome), args.Error(2)
	}
	return nil, "", args.Error(2)
}

func (m *stubMembershipSvc) Leave(ctx context.Context, userID, organizationID string) error {
	return m.Called(userID, organizationID).Error(0)
}

func (m *stubMembershipSvc) SetCurrent(ctx context.Context, userID, organizationID string) error {
	return m.Called(userID, organizationID).Error(0)
}

func (m *stubMembershipSvc) Reconcile(ctx context.Context, organizationID string) (*domain.RepairReport, error) {
	args := m.Called(organizationID)
	if r := args.Get(0); r != nil {
		return r.(*domain.RepairReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestRouter(t *testing.T, memberships service.MembershipService) (http.Handler, string) {
	t.Helper()
	tokens := security.NewTokenManager("test-secret", 60, 10080)
	access, err := tokens.GenerateAccessToken("u1", "ada@example.com")
	require.NoError(t, err)

	h := Handlers{
		Auth:    &AuthHandler{},
		User:    &UserHandler{},
		Org:     NewOrgHandler(memberships, nil),
		Hours:   &HoursHandler{},
		Project: &ProjectHandler{},
		Event:   &EventHandler{},
		Message: &MessageHandler{},
		Stats:   &StatsHandler{},
	}
	return NewRouter(h, tokens), access
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJoinEndpoint(t *testing.T) {
	t.Run("Joined", func(t *testing.T) {
		memberships := new(stubMembershipSvc)
		org := &domain.Organization{ID: "o1", Name: "Scouts", JoinCode: "ABC123"}
		memberships.On("Join", "u1", "abc123").Return(org, domain.JoinOutcomeJoined, nil)
		router, token := newTestRouter(t, memberships)

		rec := doJSON(t, router, http.MethodPost, "/api/orgs/join", token, map[string]string{"join_code": "abc123"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp joinResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, domain.JoinOutcomeJoined, resp.Outcome)
		assert.Equal(t, "o1", resp.Organization.ID)
	})

	t.Run("UnknownCodeIs404", func(t *testing.T) {
		memberships := new(stubMembershipSvc)
		memberships.On("Join", "u1", "ZZZZZZ").Return(nil, domain.JoinOutcome(""), service.ErrOrganizationNotFound)
		router, token := newTestRouter(t, memberships)

		rec := doJSON(t, router, http.MethodPost, "/api/orgs/join", token, map[string]string{"join_code": "ZZZZZZ"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("ConcurrentModificationIs409", func(t *testing.T) {
		memberships := new(stubMembershipSvc)
		memberships.On("Join", "u1", "ABC123").Return(nil, domain.JoinOutcome(""), service.ErrConcurrentModification)
		router, token := newTestRouter(t, memberships)

		rec := doJSON(t, router, http.MethodPost, "/api/orgs/join", token, map[string]string{"join_code": "ABC123"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("MissingTokenIs401", func(t *testing.T) {
		router, _ := newTestRouter(t, new(stubMembershipSvc))
		rec := doJSON(t, router, http.MethodPost, "/api/orgs/join", "", map[string]string{"join_code": "ABC123"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCreateOrgEndpoint(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		memberships := new(stubMembershipSvc)
		org := &domain.Organization{ID: "o1", Name: "Scouts", JoinCode: "ABC123"}
		memberships.On("CreateWithOwner", "u1", service.OrganizationAttributes{Name: "Scouts", JoinCode: "ABC123"}).Return(org, nil)
		router, token := newTestRouter(t, memberships)

		rec := doJSON(t, router, http.MethodPost, "/api/orgs", token, map[string]string{"name": "Scouts", "join_code": "ABC123"})
		require.Equal(t, http.StatusCreated, rec.Code)
		memberships.AssertExpectations(t)
	})

	t.Run("DuplicateCodeIs400", func(t *testing.T) {
		memberships := new(stubMembershipSvc)
		memberships.On("CreateWithOwner", "u1", mock.Anything).Return(nil, service.ErrDuplicateJoinCode)
		router, token := newTestRouter(t, memberships)

		rec := doJSON(t, router, http.MethodPost, "/api/orgs", token, map[string]string{"name": "Scouts", "join_code": "ABC123"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLeaveAndReconcileEndpoints(t *testing.T) {
	t.Run("Leave", func(t *testing.T) {
		memberships := new(stubMembershipSvc)
		memberships.On("Leave", "u1", "o1").Return(nil)
		router, token := newTestRouter(t, memberships)

		rec := doJSON(t, router, http.MethodPost, "/api/orgs/o1/leave", token, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		memberships.AssertExpectations(t)
	})

	t.Run("Reconcile", func(t *testing.T) {
		memberships := new(stubMembershipSvc)
		report := &domain.RepairReport{OrganizationID: "o1", MissingOnUser: []string{"u2"}, MissingOnOrganization: []string{}}
		memberships.On("Reconcile", "o1").Return(report, nil)
		router, token := newTestRouter(t, memberships)

		rec := doJSON(t, router, http.MethodPost, "/api/orgs/o1/reconcile", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got domain.RepairReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, []string{"u2"}, got.MissingOnUser)
	})

	t.Run("SetCurrentNotAMemberIs403", func(t *testing.T) {
		memberships := new(stubMembershipSvc)
		memberships.On("SetCurrent", "u1", "o9").Return(service.ErrNotAMember)
		router, token := newTestRouter(t, memberships)

		rec := doJSON(t, router, http.MethodPost, "/api/orgs/o9/current", token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
