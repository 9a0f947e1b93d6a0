package postgres

import (
	"context"
	"database/sql"
	"time"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/repository"
)

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, m *domain.Message) error {
	m.CreatedOn = time.Now()
	query := `INSERT INTO messages (id, org_id, author_id, body, created_on) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.OrganizationID, m.AuthorID, m.Body, m.CreatedOn)
	return err
}

func (r *messageRepository) ListByOrg(ctx context.Context, orgID string, limit, offset int32) ([]domain.Message, error) {
	query := `SELECT id, org_id, author_id, body, created_on FROM messages WHERE org_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.OrganizationID, &m.AuthorID, &m.Body, &m.CreatedOn); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// Delete removes a message only when authorID wrote it.
func (r *messageRepository) Delete(ctx context.Context, id, authorID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1 AND author_id = $2`, id, authorID)
	return err
}
