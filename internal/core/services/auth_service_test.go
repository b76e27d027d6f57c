package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newAuth(repo *MockUserRepository) *AuthService {
	return NewAuthService(repo, NewTokenService("test-secret", "kanso-test", time.Hour, repo))
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	t.Run("Success: Should register a valid user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuth(mockRepo)
		ctx := context.Background()

		input := RegisterInput{
			Email:    "Test_Success@Kanso.app",
			Password: "StrongPassword123!",
		}

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := service.Register(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "test_success@kanso.app", user.Email)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, user.PasswordHash)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should return error for invalid email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuth(mockRepo)

		user, err := service.Register(context.Background(), RegisterInput{Email: "not-an-email", Password: "password123"})

		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return error for short password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuth(mockRepo)

		user, err := service.Register(context.Background(), RegisterInput{Email: "valid@email.com", Password: "short"})

		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should propagate repository error (Duplicate Email)", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuth(mockRepo)
		ctx := context.Background()

		mockRepo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailAlreadyExists)

		user, err := service.Register(ctx, RegisterInput{Email: "duplicate@email.com", Password: "StrongPassword123!"})

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
		assert.Nil(t, user)
		mockRepo.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	registered, err := domain.NewUser("user-1", "login@kanso.app")
	require.NoError(t, err)
	require.NoError(t, registered.SetPassword("CorrectHorse1"))

	t.Run("Success: Returns a token that validates back to the user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuth(mockRepo)
		ctx := context.Background()

		mockRepo.On("GetByEmail", ctx, "login@kanso.app").Return(registered, nil)
		mockRepo.On("GetByID", mock.Anything, "user-1").Return(registered, nil)

		token, err := service.Login(ctx, LoginInput{Email: "  LOGIN@kanso.app ", Password: "CorrectHorse1"})
		require.NoError(t, err)

		userID, err := service.tokens.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("Fail: Wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuth(mockRepo)
		ctx := context.Background()

		mockRepo.On("GetByEmail", ctx, "login@kanso.app").Return(registered, nil)

		token, err := service.Login(ctx, LoginInput{Email: "login@kanso.app", Password: "wrong-password"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Empty(t, token)
	})

	t.Run("Fail: Unknown email looks like a wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuth(mockRepo)
		ctx := context.Background()

		mockRepo.On("GetByEmail", ctx, "ghost@kanso.app").Return(nil, domain.ErrUserNotFound)

		_, err := service.Login(ctx, LoginInput{Email: "ghost@kanso.app", Password: "whatever1"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Fail: Repository failure is wrapped", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuth(mockRepo)
		ctx := context.Background()
		boom := errors.New("connection reset")

		mockRepo.On("GetByEmail", ctx, "login@kanso.app").Return(nil, boom)

		_, err := service.Login(ctx, LoginInput{Email: "login@kanso.app", Password: "CorrectHorse1"})

		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
