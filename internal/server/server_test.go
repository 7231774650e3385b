package server

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upark/upark-api/internal/config"
	"github.com/upark/upark-api/internal/constants"
	"github.com/upark/upark-api/internal/database"
	"github.com/upark/upark-api/internal/events"
	"github.com/upark/upark-api/internal/service"
)

// closingPublisher records Close calls
type closingPublisher struct {
	events.NoopPublisher
	closed   int
	closeErr error
}

func (p *closingPublisher) Close() error {
	p.closed++
	return p.closeErr
}

func newTestConfig() *config.AppConfig {
	return &config.AppConfig{
		App: config.AppSettings{
			Name:        constants.DefaultAppName,
			Version:     "1.2.3",
			Environment: constants.EnvTesting,
		},
		Server: config.ServerSettings{
			Host: "127.0.0.1",
			Port: 0,
		},
		PasswordHash: config.HashSettings{Cost: 4},
		Reset: config.ResetSettings{
			BaseURL:  "http://localhost:3000",
			TokenTTL: constants.DefaultResetTokenTTL,
		},
	}
}

// newTestServer builds a server over a sqlmock pool
func newTestServer(t *testing.T, publisher events.Publisher) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	if publisher == nil {
		publisher = events.NoopPublisher{}
	}

	return New(newTestConfig(), &database.Pool{DB: db}, service.LogMailer{}, publisher), mock
}

func TestNew(t *testing.T) {
	s, _ := newTestServer(t, nil)

	require.NotNil(t, s.Handlers)
	assert.NotNil(t, s.Handlers.AuthHandler)
	assert.NotNil(t, s.Handlers.PasswordResetHandler)
	assert.NotNil(t, s.Handlers.UserHandler)
	assert.NotNil(t, s.Handlers.ParkingHandler)
	assert.NotNil(t, s.Handlers.ReviewHandler)
	assert.NotNil(t, s.Router())
	assert.Equal(t, "127.0.0.1:0", s.httpServer.Addr)
	assert.Equal(t, constants.DefaultIdleTimeout, s.httpServer.IdleTimeout)
}

func TestShutdown(t *testing.T) {
	t.Run("Closes publisher and database", func(t *testing.T) {
		publisher := &closingPublisher{}
		s, mock := newTestServer(t, publisher)
		mock.ExpectClose()

		err := s.Shutdown(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 1, publisher.closed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Publisher close failure does not fail shutdown", func(t *testing.T) {
		publisher := &closingPublisher{closeErr: errors.New("broker gone")}
		s, mock := newTestServer(t, publisher)
		mock.ExpectClose()

		assert.NoError(t, s.Shutdown(context.Background()))
		assert.Equal(t, 1, publisher.closed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNewServerUnreachableDatabase(t *testing.T) {
	cfg := newTestConfig()
	cfg.Database.URL = "postgres://upark@127.0.0.1:1/upark?sslmode=disable&connect_timeout=1"

	s, err := NewServer(context.Background(), cfg)

	assert.Nil(t, s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set up database")
}
