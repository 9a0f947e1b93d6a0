package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.Organizations == nil {
		u.Organizations = []domain.OrgMembership{}
	}
	orgsJSON, err := json.Marshal(u.Organizations)
	if err != nil {
		return err
	}
	now := time.Now()
	u.CreatedOn = now
	u.UpdatedOn = now
	u.Version = 1
	query := `INSERT INTO users (id, email, password_hash, name, avatar_url, organizations, current_organization, version, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.db.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.Name, u.AvatarURL, orgsJSON, u.CurrentOrganization, u.Version, u.CreatedOn, u.UpdatedOn)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

// UpdateProfile writes the profile attributes only; membership fields are
// owned by the membership store and never touched here.
func (r *userRepository) UpdateProfile(ctx context.Context, u *domain.User) error {
	u.UpdatedOn = time.Now()
	query := `UPDATE users SET email = $1, name = $2, avatar_url = $3, updated_on = $4 WHERE id = $5`
	_, err := r.db.ExecContext(ctx, query, u.Email, u.Name, u.AvatarURL, u.UpdatedOn, u.ID)
	return err
}
