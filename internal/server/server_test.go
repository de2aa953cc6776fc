package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubhouse/internal/config"
	"clubhouse/internal/email"
)

func TestServerShutdownBeforeStart(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	sqlxDB := sqlx.NewDb(db, "sqlmock")

	cfg := &config.Config{Port: "0", JWTSecret: "secret"}
	emailSvc := email.New("noreply@example.com", "Clubhouse", "localhost", "1025", "", "", "localhost:6379")
	defer emailSvc.Close()

	srv := New(sqlxDB, cfg, emailSvc)

	// Остановка до запуска помечает сервер закрытым, слушатель уже не поднимется
	require.NoError(t, srv.Shutdown(context.Background()))
	assert.ErrorIs(t, srv.Start(), http.ErrServerClosed)
}
