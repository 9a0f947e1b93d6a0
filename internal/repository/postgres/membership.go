package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/logger"
	"foundly-backend/internal/repository"
)

// dbtx is the subset of *sql.DB and *sql.Tx the store uses, so the same
// queries run inside and outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type membershipStore struct {
	db *sql.DB
	q  dbtx
}

func NewMembershipStore(db *sql.DB) repository.MembershipStore {
	return &membershipStore{db: db, q: db}
}

const userColumns = `id, email, password_hash, name, COALESCE(avatar_url, ''), organizations, current_organization, version, created_on, updated_on`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	var orgsJSON []byte
	var current sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.AvatarURL, &orgsJSON, &current, &u.Version, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(orgsJSON, &u.Organizations); err != nil {
		return nil, fmt.Errorf("failed to decode organizations for user %s: %w", u.ID, err)
	}
	if current.Valid {
		u.CurrentOrganization = &current.String
	}
	return u, nil
}

const orgColumns = `id, name, COALESCE(description, ''), join_code, members, version, created_on, updated_on`

func scanOrganization(row interface{ Scan(...any) error }) (*domain.Organization, error) {
	o := &domain.Organization{}
	var membersJSON []byte
	err := row.Scan(&o.ID, &o.Name, &o.Description, &o.JoinCode, &membersJSON, &o.Version, &o.CreatedOn, &o.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(membersJSON, &o.Members); err != nil {
		return nil, fmt.Errorf("failed to decode members for organization %s: %w", o.ID, err)
	}
	return o, nil
}

func (s *membershipStore) FindOrganizationByID(ctx context.Context, id string) (*domain.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE id = $1`
	org, err := scanOrganization(s.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return org, err
}

func (s *membershipStore) FindOrganizationByJoinCode(ctx context.Context, code string) (*domain.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE join_code = UPPER($1)`
	org, err := scanOrganization(s.q.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return org, err
}

func (s *membershipStore) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(s.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

func (s *membershipStore) ListUsersReferencing(ctx context.Context, orgID string) ([]domain.User, error) {
	ref, err := json.Marshal([]map[string]string{{"organization_id": orgID}})
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE organizations @> $1::jsonb`
	rows, err := s.q.QueryContext(ctx, query, ref)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (s *membershipStore) CreateOrganization(ctx context.Context, org *domain.Organization) error {
	membersJSON, err := json.Marshal(org.Members)
	if err != nil {
		return err
	}
	now := time.Now()
	org.CreatedOn = now
	org.UpdatedOn = now
	org.Version = 1
	query := `INSERT INTO organizations (id, name, description, join_code, members, version, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = s.q.ExecContext(ctx, query, org.ID, org.Name, org.Description, org.JoinCode, membersJSON, org.Version, org.CreatedOn, org.UpdatedOn)
	return err
}

func (s *membershipStore) WriteOrganizationMembers(ctx context.Context, orgID string, members []domain.Member, expectedVersion int64) error {
	if members == nil {
		members = []domain.Member{}
	}
	membersJSON, err := json.Marshal(members)
	if err != nil {
		return err
	}
	query := `UPDATE organizations SET members = $1, version = version + 1, updated_on = $2 WHERE id = $3 AND version = $4`
	res, err := s.q.ExecContext(ctx, query, membersJSON, time.Now(), orgID, expectedVersion)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		logger.Warn("Organization members write hit version conflict", "org_id", orgID, "expected_version", expectedVersion)
		return repository.ErrVersionConflict
	}
	return nil
}

func (s *membershipStore) WriteUserOrganizations(ctx context.Context, userID string, orgs []domain.OrgMembership, current *string, expectedVersion int64) error {
	if orgs == nil {
		orgs = []domain.OrgMembership{}
	}
	orgsJSON, err := json.Marshal(orgs)
	if err != nil {
		return err
	}
	query := `UPDATE users SET organizations = $1, current_organization = $2, version = version + 1, updated_on = $3 WHERE id = $4 AND version = $5`
	res, err := s.q.ExecContext(ctx, query, orgsJSON, current, time.Now(), userID, expectedVersion)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		logger.Warn("User organizations write hit version conflict", "user_id", userID, "expected_version", expectedVersion)
		return repository.ErrVersionConflict
	}
	return nil
}

// RunTransaction runs fn against a store bound to one sql.Tx. A nested call
// on an already transactional store reuses the open transaction.
func (s *membershipStore) RunTransaction(ctx context.Context, fn func(repository.MembershipStore) error) error {
	if _, ok := s.q.(*sql.Tx); ok {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&membershipStore{db: s.db, q: tx}); err != nil {
		return err
	}
	return tx.Commit()
}
