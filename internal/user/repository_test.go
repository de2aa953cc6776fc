package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewPostgresRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

var userCols = []string{"id", "name", "email", "password_hash", "created_at"}

func TestRepository_CreateAndFind(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("Pat", "pat@example.com", "hashed").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(userID, "Pat", "pat@example.com", "hashed", now))

	u, err := repo.Create(context.Background(), "Pat", "pat@example.com", "hashed")
	require.NoError(t, err)
	require.Equal(t, userID, u.ID)

	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(userID, "Pat", "pat@example.com", "hashed", now))

	got, err := repo.FindByID(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, "pat@example.com", got.Email)
}

func TestRepository_FindByEmailNotFound(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err := repo.FindByEmail(context.Background(), "missing@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepository_EmailExists(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("pat@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "pat@example.com")
	require.NoError(t, err)
	require.True(t, exists)
}
