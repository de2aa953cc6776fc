package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"clubhouse/internal/apperr"
	"clubhouse/internal/auth"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, name, email, passwordHash string) (*User, error) {
	args := m.Called(ctx, name, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

const testSecret = "test-secret-key"

func TestService_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("EmailExists", mock.Anything, "new@example.com").Return(false, nil)
		repo.On("Create", mock.Anything, "New User", "new@example.com", mock.AnythingOfType("string")).
			Return(&User{ID: uuid.New(), Name: "New User", Email: "new@example.com"}, nil)

		svc := NewService(repo, testSecret)
		user, access, refresh, err := svc.Register(context.Background(), RegisterRequest{
			Name:     "New User",
			Email:    "new@example.com",
			Password: "password123",
		})

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)

		// Токен должен валидироваться и нести UUID пользователя
		claims, err := auth.ValidateToken(access, testSecret)
		assert.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)

		svc := NewService(repo, testSecret)
		user, _, _, err := svc.Register(context.Background(), RegisterRequest{
			Name:     "Someone",
			Email:    "taken@example.com",
			Password: "password123",
		})

		assert.Nil(t, user)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})
}

func TestService_Login(t *testing.T) {
	hash, _ := auth.HashPassword("correct-password")
	stored := &User{ID: uuid.New(), Name: "Pat", Email: "pat@example.com", PasswordHash: hash}

	t.Run("success", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", mock.Anything, "pat@example.com").Return(stored, nil)

		svc := NewService(repo, testSecret)
		user, access, refresh, err := svc.Login(context.Background(), LoginRequest{
			Email:    "pat@example.com",
			Password: "correct-password",
		})

		assert.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", mock.Anything, "pat@example.com").Return(stored, nil)

		svc := NewService(repo, testSecret)
		_, _, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    "pat@example.com",
			Password: "wrong-password",
		})

		assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, ErrUserNotFound)

		svc := NewService(repo, testSecret)
		_, _, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})

		assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
	})
}

func TestService_RefreshToken(t *testing.T) {
	userID := uuid.New()
	stored := &User{ID: userID, Email: "pat@example.com"}

	t.Run("success", func(t *testing.T) {
		_, refresh, err := auth.GenerateTokens(userID.String(), stored.Email, testSecret, testSecret)
		assert.NoError(t, err)

		repo := new(MockUserRepo)
		repo.On("FindByID", mock.Anything, userID).Return(stored, nil)

		svc := NewService(repo, testSecret)
		newAccess, user, err := svc.RefreshToken(context.Background(), refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.Equal(t, userID, user.ID)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := NewService(new(MockUserRepo), testSecret)
		_, _, err := svc.RefreshToken(context.Background(), "not-a-token")

		assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
	})

	// Access-токен не годится для обновления
	t.Run("access token rejected", func(t *testing.T) {
		access, _, err := auth.GenerateTokens(userID.String(), stored.Email, testSecret, testSecret)
		assert.NoError(t, err)

		svc := NewService(new(MockUserRepo), testSecret)
		_, _, err = svc.RefreshToken(context.Background(), access)

		assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
	})
}
