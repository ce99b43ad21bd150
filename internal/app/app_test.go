package app_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carsharing-backend/internal/app"
	"carsharing-backend/internal/config"
)

func validConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Server:   config.ServerConfig{Port: 8080},
		Database: config.DatabaseConfig{Host: "localhost", User: "cars", Database: "cars"},
		JWT:      config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
		Payment:  config.PaymentConfig{Domain: "http://localhost:8080"},
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestNew(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Run("Mock Provider And Log Sink", func(t *testing.T) {
		a, err := app.New(context.Background(), validConfig(t), db, nil)
		require.NoError(t, err)
		defer a.Close()

		assert.NotNil(t, a.MockProvider)
		assert.NotNil(t, a.Rentals)
		assert.NotNil(t, a.Payments)
	})

	t.Run("Unknown Sink", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Notification.Sink = "pigeon"

		_, err := app.New(context.Background(), cfg, db, nil)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
