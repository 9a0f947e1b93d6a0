package postgres

import (
	"database/sql"

	"foundly-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.MembershipStore
	repository.UserRepository
	repository.OrganizationRepository
	repository.HourLogRepository
	repository.ProjectRepository
	repository.EventRepository
	repository.MessageRepository
	repository.StatsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		MembershipStore:        NewMembershipStore(db),
		UserRepository:         NewUserRepository(db),
		OrganizationRepository: NewOrganizationRepository(db),
		HourLogRepository:      NewHourLogRepository(db),
		ProjectRepository:      NewProjectRepository(db),
		EventRepository:        NewEventRepository(db),
		MessageRepository:      NewMessageRepository(db),
		StatsRepository:        NewStatsRepository(db),
	}
}
