package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/repository"
)

type hourLogRepository struct {
	db *sql.DB
}

func NewHourLogRepository(db *sql.DB) repository.HourLogRepository {
	return &hourLogRepository{db: db}
}

const hourLogColumns = `id, user_id, org_id, project_id, activity, COALESCE(description, ''), hours, date, status, reviewed_by, created_on`

func scanHourLog(row interface{ Scan(...any) error }) (*domain.HourLog, error) {
	l := &domain.HourLog{}
	var projectID, reviewedBy sql.NullString
	err := row.Scan(&l.ID, &l.UserID, &l.OrganizationID, &projectID, &l.Activity, &l.Description, &l.Hours, &l.Date, &l.Status, &reviewedBy, &l.CreatedOn)
	if err != nil {
		return nil, err
	}
	if projectID.Valid {
		l.ProjectID = &projectID.String
	}
	if reviewedBy.Valid {
		l.ReviewedBy = &reviewedBy.String
	}
	return l, nil
}

func (r *hourLogRepository) Create(ctx context.Context, l *domain.HourLog) error {
	l.CreatedOn = time.Now()
	query := `INSERT INTO hour_logs (id, user_id, org_id, project_id, activity, description, hours, date, status, reviewed_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query, l.ID, l.UserID, l.OrganizationID, l.ProjectID, l.Activity, l.Description, l.Hours, l.Date, l.Status, l.ReviewedBy, l.CreatedOn)
	return err
}

func (r *hourLogRepository) GetByID(ctx context.Context, id string) (*domain.HourLog, error) {
	query := `SELECT ` + hourLogColumns + ` FROM hour_logs WHERE id = $1`
	l, err := scanHourLog(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return l, err
}

func (r *hourLogRepository) Update(ctx context.Context, l *domain.HourLog) error {
	query := `UPDATE hour_logs SET activity = $1, description = $2, hours = $3, date = $4, status = $5, reviewed_by = $6 WHERE id = $7`
	_, err := r.db.ExecContext(ctx, query, l.Activity, l.Description, l.Hours, l.Date, l.Status, l.ReviewedBy, l.ID)
	return err
}

func (r *hourLogRepository) ListByUser(ctx context.Context, userID, orgID string) ([]domain.HourLog, error) {
	query := `SELECT ` + hourLogColumns + ` FROM hour_logs WHERE user_id = $1 AND org_id = $2 ORDER BY date DESC`
	return r.list(ctx, query, userID, orgID)
}

func (r *hourLogRepository) ListByOrg(ctx context.Context, orgID string, status string) ([]domain.HourLog, error) {
	if status != "" {
		query := `SELECT ` + hourLogColumns + ` FROM hour_logs WHERE org_id = $1 AND status = $2 ORDER BY date DESC`
		return r.list(ctx, query, orgID, status)
	}
	query := `SELECT ` + hourLogColumns + ` FROM hour_logs WHERE org_id = $1 ORDER BY date DESC`
	return r.list(ctx, query, orgID)
}

func (r *hourLogRepository) list(ctx context.Context, query string, args ...any) ([]domain.HourLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.HourLog
	for rows.Next() {
		l, err := scanHourLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}
