// Package server wires the UPark API together and runs it.
//
// NewServer connects to PostgreSQL, migrates the schema and builds the
// dependency graph in order: repositories, services, handlers, routes.
// Start blocks until the process receives SIGINT or SIGTERM and then shuts
// the HTTP server, the event publisher and the database pool down.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/upark/upark-api/internal/auth"
	"github.com/upark/upark-api/internal/config"
	"github.com/upark/upark-api/internal/constants"
	"github.com/upark/upark-api/internal/database"
	"github.com/upark/upark-api/internal/events"
	"github.com/upark/upark-api/internal/handlers"
	"github.com/upark/upark-api/internal/repository"
	"github.com/upark/upark-api/internal/service"
	"github.com/upark/upark-api/migrations"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	AuthHandler          *handlers.AuthHandler
	PasswordResetHandler *handlers.PasswordResetHandler
	UserHandler          *handlers.UserHandler
	ParkingHandler       *handlers.ParkingHandler
	ReviewHandler        *handlers.ReviewHandler
}

// Server represents the UPark API server.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Db provides database access
	Db *database.Pool

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	router     chi.Router
	publisher  events.Publisher
	httpServer *http.Server
}

// NewServer connects to the database, runs migrations and builds a server
// ready to Start.
func NewServer(ctx context.Context, cfg *config.AppConfig) (*Server, error) {
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := migrations.NewMigrator(db).RunMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	mailer, err := service.NewMailer(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up mailer: %w", err)
	}

	publisher, err := events.NewPublisher(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up event publisher: %w", err)
	}

	return New(cfg, db, mailer, publisher), nil
}

// New builds a server on top of already initialized infrastructure.
func New(cfg *config.AppConfig, db *database.Pool, mailer service.Mailer, publisher events.Publisher) *Server {
	s := &Server{
		Config:    cfg,
		Db:        db,
		publisher: publisher,
	}

	hasher := auth.HasherFromAppConfig(cfg)

	userRepo := repository.NewUserRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	parkingRepo := repository.NewParkingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	authService := service.NewAuthService(userRepo, hasher, publisher)
	resetService := service.NewPasswordResetService(
		resetRepo,
		hasher,
		auth.NewTokenIssuer(),
		mailer,
		cfg.Reset,
		publisher,
	)

	s.Handlers = &Handlers{
		AuthHandler:          handlers.NewAuthHandler(authService),
		PasswordResetHandler: handlers.NewPasswordResetHandler(resetService),
		UserHandler:          handlers.NewUserHandler(service.NewUserService(userRepo, hasher)),
		ParkingHandler:       handlers.NewParkingHandler(service.NewParkingService(parkingRepo)),
		ReviewHandler:        handlers.NewReviewHandler(service.NewReviewService(reviewRepo)),
	}

	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start serves HTTP until a shutdown signal arrives or the listener fails.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		s.closeResources()
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown waits for in-flight requests and then releases the publisher and
// the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.closeResources()
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")

	s.closeResources()
	return nil
}

func (s *Server) closeResources() {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close event publisher")
		}
	}
	s.Db.Close()
}
