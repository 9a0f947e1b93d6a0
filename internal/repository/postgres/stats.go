package postgres

import (
	"context"
	"database/sql"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) OrgStats(ctx context.Context, orgID string) (*domain.OrgStats, error) {
	stats := &domain.OrgStats{OrganizationID: orgID}

	query := `SELECT jsonb_array_length(members) FROM organizations WHERE id = $1`
	if err := r.db.QueryRowContext(ctx, query, orgID).Scan(&stats.MemberCount); err != nil {
		return nil, err
	}

	query = `SELECT COALESCE(SUM(hours), 0), COALESCE(SUM(hours) FILTER (WHERE status = 'APPROVED'), 0) FROM hour_logs WHERE org_id = $1`
	if err := r.db.QueryRowContext(ctx, query, orgID).Scan(&stats.TotalHours, &stats.ApprovedHours); err != nil {
		return nil, err
	}

	query = `SELECT COUNT(*) FROM projects WHERE org_id = $1 AND status = 'ACTIVE'`
	if err := r.db.QueryRowContext(ctx, query, orgID).Scan(&stats.ActiveProjects); err != nil {
		return nil, err
	}

	query = `SELECT COUNT(*) FROM events WHERE org_id = $1 AND start_time > NOW()`
	if err := r.db.QueryRowContext(ctx, query, orgID).Scan(&stats.UpcomingEvents); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *statsRepository) UserStats(ctx context.Context, userID, orgID string) (*domain.UserStats, error) {
	stats := &domain.UserStats{UserID: userID, OrganizationID: orgID}
	query := `SELECT COALESCE(SUM(hours), 0), COALESCE(SUM(hours) FILTER (WHERE status = 'APPROVED'), 0), COUNT(*)
	          FROM hour_logs WHERE user_id = $1 AND org_id = $2`
	err := r.db.QueryRowContext(ctx, query, userID, orgID).Scan(&stats.TotalHours, &stats.ApprovedHours, &stats.LogCount)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
