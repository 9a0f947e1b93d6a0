package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/repository"
)

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE id = $1`
	org, err := scanOrganization(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return org, err
}

func (r *organizationRepository) List(ctx context.Context) ([]domain.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, *o)
	}
	return orgs, rows.Err()
}

// UpdateAttributes writes name and description only; members and join code
// are owned by the membership store.
func (r *organizationRepository) UpdateAttributes(ctx context.Context, o *domain.Organization) error {
	o.UpdatedOn = time.Now()
	query := `UPDATE organizations SET name = $1, description = $2, updated_on = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, o.Name, o.Description, o.UpdatedOn, o.ID)
	return err
}
