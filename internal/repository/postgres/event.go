package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, org_id, title, COALESCE(description, ''), COALESCE(location, ''), start_time, end_time, created_by, attendees, created_on, updated_on`

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var attendeesJSON []byte
	err := row.Scan(&e.ID, &e.OrganizationID, &e.Title, &e.Description, &e.Location, &e.StartTime, &e.EndTime, &e.CreatedBy, &attendeesJSON, &e.CreatedOn, &e.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(attendeesJSON, &e.Attendees); err != nil {
		return nil, fmt.Errorf("failed to decode attendees for event %s: %w", e.ID, err)
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	if e.Attendees == nil {
		e.Attendees = []string{}
	}
	attendeesJSON, err := json.Marshal(e.Attendees)
	if err != nil {
		return err
	}
	now := time.Now()
	e.CreatedOn = now
	e.UpdatedOn = now
	query := `INSERT INTO events (id, org_id, title, description, location, start_time, end_time, created_by, attendees, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.db.ExecContext(ctx, query, e.ID, e.OrganizationID, e.Title, e.Description, e.Location, e.StartTime, e.EndTime, e.CreatedBy, attendeesJSON, e.CreatedOn, e.UpdatedOn)
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	if e.Attendees == nil {
		e.Attendees = []string{}
	}
	attendeesJSON, err := json.Marshal(e.Attendees)
	if err != nil {
		return err
	}
	e.UpdatedOn = time.Now()
	query := `UPDATE events SET title = $1, description = $2, location = $3, start_time = $4, end_time = $5, attendees = $6, updated_on = $7 WHERE id = $8`
	_, err = r.db.ExecContext(ctx, query, e.Title, e.Description, e.Location, e.StartTime, e.EndTime, attendeesJSON, e.UpdatedOn, e.ID)
	return err
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	return err
}

func (r *eventRepository) ListByOrg(ctx context.Context, orgID string) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE org_id = $1 ORDER BY start_time`
	return r.list(ctx, query, orgID)
}

func (r *eventRepository) ListUpcoming(ctx context.Context, orgID string, withinHours int) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE org_id = $1 AND start_time > NOW() AND start_time <= NOW() + make_interval(hours => $2) ORDER BY start_time`
	return r.list(ctx, query, orgID, withinHours)
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}
