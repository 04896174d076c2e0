package users

import (
	"context"
	"testing"

	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) PersistUser(ctx context.Context, user models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUser(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewService(mockRepo)

		mockRepo.On("PersistUser", ctx, mock.MatchedBy(func(u models.User) bool {
			return u.Username == "admin" &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-password")) == nil
		})).Return(&models.User{ID: 1, Username: "admin"}, nil)

		user, err := service.CreateUser(ctx, CreateUserRequest{Username: " admin ", Password: "secret-password"})

		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate username", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewService(mockRepo)

		mockRepo.On("PersistUser", ctx, mock.Anything).Return(nil, ErrUsernameTaken)

		_, err := service.CreateUser(ctx, CreateUserRequest{Username: "admin", Password: "secret-password"})

		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("rejects short password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewService(mockRepo)

		_, err := service.CreateUser(ctx, CreateUserRequest{Username: "admin", Password: "short"})

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "PersistUser", mock.Anything, mock.Anything)
	})
}
