package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "foundly-backend/internal/api/http"
	"foundly-backend/internal/config"
	"foundly-backend/internal/logger"
	"foundly-backend/internal/repository/postgres"
	"foundly-backend/internal/security"
	"foundly-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Foundly backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromAddress, cfg.Email.FromName)
	membershipSvc := service.NewMembershipService(store.MembershipStore)
	authSvc := service.NewAuthService(store.UserRepository, membershipSvc, emailSvc, tokenManager)
	userSvc := service.NewUserService(store.UserRepository, store.OrganizationRepository)
	orgSvc := service.NewOrganizationService(store.OrganizationRepository, store.UserRepository)
	hourSvc := service.NewHourService(store.HourLogRepository, store.OrganizationRepository)
	projectSvc := service.NewProjectService(store.ProjectRepository, store.OrganizationRepository)
	eventSvc := service.NewEventService(store.EventRepository, store.OrganizationRepository)
	messageSvc := service.NewMessageService(store.MessageRepository, store.OrganizationRepository)
	statsSvc := service.NewStatsService(store.StatsRepository, store.OrganizationRepository)

	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:    httpapi.NewAuthHandler(authSvc),
		User:    httpapi.NewUserHandler(userSvc),
		Org:     httpapi.NewOrgHandler(membershipSvc, orgSvc),
		Hours:   httpapi.NewHoursHandler(hourSvc),
		Project: httpapi.NewProjectHandler(projectSvc),
		Event:   httpapi.NewEventHandler(eventSvc),
		Message: httpapi.NewMessageHandler(messageSvc),
		Stats:   httpapi.NewStatsHandler(statsSvc),
	}, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		log.Fatalf("HTTP server failed: %v", err)
	}
}
