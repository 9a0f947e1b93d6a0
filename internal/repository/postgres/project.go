package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/repository"
)

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `id, org_id, name, COALESCE(description, ''), status, created_by, start_date, end_date, created_on, updated_on`

func scanProject(row interface{ Scan(...any) error }) (*domain.Project, error) {
	p := &domain.Project{}
	var start, end sql.NullTime
	err := row.Scan(&p.ID, &p.OrganizationID, &p.Name, &p.Description, &p.Status, &p.CreatedBy, &start, &end, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if start.Valid {
		p.StartDate = &start.Time
	}
	if end.Valid {
		p.EndDate = &end.Time
	}
	return p, nil
}

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	now := time.Now()
	p.CreatedOn = now
	p.UpdatedOn = now
	query := `INSERT INTO projects (id, org_id, name, description, status, created_by, start_date, end_date, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.OrganizationID, p.Name, p.Description, p.Status, p.CreatedBy, p.StartDate, p.EndDate, p.CreatedOn, p.UpdatedOn)
	return err
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *projectRepository) Update(ctx context.Context, p *domain.Project) error {
	p.UpdatedOn = time.Now()
	query := `UPDATE projects SET name = $1, description = $2, status = $3, start_date = $4, end_date = $5, updated_on = $6 WHERE id = $7`
	_, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Status, p.StartDate, p.EndDate, p.UpdatedOn, p.ID)
	return err
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

func (r *projectRepository) ListByOrg(ctx context.Context, orgID string) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE org_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}
