package security

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/reshxs/pocket-storage-backend/internal/users"
	custom_error "github.com/reshxs/pocket-storage-backend/pkg/errors"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestService(userRepo *MockUserRepository, sessions *MockSessionRepository, limiter *fakeLimiter) *AuthService {
	var l LoginLimiter
	if limiter != nil {
		l = limiter
	}
	service := NewAuthService(userRepo, sessions, l, 0, zap.NewNop())
	service.now = func() time.Time { return fixedNow }
	return service
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: 3, Username: "admin", PasswordHash: hashed(t, "password123"), FirstName: "Ada"}

	tests := []struct {
		name          string
		username      string
		password      string
		allowed       bool
		setupMocks    func(u *MockUserRepository, s *MockSessionRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "admin",
			password: "password123",
			allowed:  true,
			setupMocks: func(u *MockUserRepository, s *MockSessionRepository) {
				u.On("GetUserByUsername", ctx, "admin").Return(user, nil)
				s.On("PersistSession", ctx, mock.MatchedBy(func(session models.Session) bool {
					return session.UserID == 3 && session.ExpireDate.Equal(fixedNow.Add(DefaultSessionTTL))
				})).Return(nil)
			},
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "password123",
			allowed:  true,
			setupMocks: func(u *MockUserRepository, s *MockSessionRepository) {
				u.On("GetUserByUsername", ctx, "ghost").Return(nil, users.ErrUserNotFound)
			},
			expectedError: custom_error.ErrWrongCredentials,
		},
		{
			name:     "wrong password",
			username: "admin",
			password: "nope",
			allowed:  true,
			setupMocks: func(u *MockUserRepository, s *MockSessionRepository) {
				u.On("GetUserByUsername", ctx, "admin").Return(user, nil)
			},
			expectedError: custom_error.ErrWrongCredentials,
		},
		{
			name:          "too many attempts",
			username:      "admin",
			password:      "password123",
			allowed:       false,
			setupMocks:    func(u *MockUserRepository, s *MockSessionRepository) {},
			expectedError: custom_error.ErrTooManyLoginAttempts,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			sessions := new(MockSessionRepository)
			limiter := &fakeLimiter{allowed: tt.allowed}
			tt.setupMocks(userRepo, sessions)

			result, err := newTestService(userRepo, sessions, limiter).Login(ctx, "10.0.0.1", tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
				assert.Empty(t, limiter.resets)
			} else {
				require.NoError(t, err)
				assert.Equal(t, user, result.User)
				assert.NotEqual(t, uuid.Nil, result.Session.Key)
				assert.Equal(t, []string{"10.0.0.1"}, limiter.resets)
			}
			userRepo.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestLogin_UnknownUserStillComparesPassword(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	userRepo.On("GetUserByUsername", ctx, "ghost").Return(nil, users.ErrUserNotFound)

	var compared [][]byte
	service := newTestService(userRepo, new(MockSessionRepository), nil)
	service.compare = func(hash, password []byte) error {
		compared = append(compared, hash)
		return bcrypt.CompareHashAndPassword(hash, password)
	}

	result, err := service.Login(ctx, "10.0.0.1", "ghost", "password123")

	assert.ErrorIs(t, err, custom_error.ErrWrongCredentials)
	assert.Nil(t, result)
	require.Len(t, compared, 1)
	assert.Equal(t, dummyPasswordHash(), compared[0])
	cost, err := bcrypt.Cost(compared[0])
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	key := uuid.New()
	active := &models.Session{Key: key, UserID: 3, ExpireDate: fixedNow.Add(time.Hour)}
	expired := &models.Session{Key: key, UserID: 3, ExpireDate: fixedNow}

	tests := []struct {
		name          string
		header        string
		setupMocks    func(s *MockSessionRepository)
		expectedError error
	}{
		{
			name:          "missing header",
			setupMocks:    func(s *MockSessionRepository) {},
			expectedError: custom_error.ErrAccessDenied,
		},
		{
			name:          "malformed key",
			header:        "not-a-uuid",
			setupMocks:    func(s *MockSessionRepository) {},
			expectedError: custom_error.ErrAccessDenied,
		},
		{
			name:   "unknown key",
			header: key.String(),
			setupMocks: func(s *MockSessionRepository) {
				s.On("GetSession", ctx, key).Return(nil, ErrSessionNotFound)
			},
			expectedError: custom_error.ErrAccessDenied,
		},
		{
			name:   "expired session",
			header: key.String(),
			setupMocks: func(s *MockSessionRepository) {
				s.On("GetSession", ctx, key).Return(expired, nil)
			},
			expectedError: custom_error.ErrAccessDenied,
		},
		{
			name:   "active session",
			header: key.String(),
			setupMocks: func(s *MockSessionRepository) {
				s.On("GetSession", ctx, key).Return(active, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := new(MockSessionRepository)
			tt.setupMocks(sessions)

			header := http.Header{}
			if tt.header != "" {
				header.Set(SessionHeader, tt.header)
			}

			authCtx, err := newTestService(new(MockUserRepository), sessions, nil).Authenticate(ctx, header)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			session, ok := SessionFromContext(authCtx)
			require.True(t, ok)
			assert.Equal(t, active, session)
		})
	}
}

func TestAuthenticate_StoreFailureIsNotAccessDenied(t *testing.T) {
	ctx := context.Background()
	key := uuid.New()
	sessions := new(MockSessionRepository)
	sessions.On("GetSession", ctx, key).Return(nil, errors.New("connection refused"))

	header := http.Header{}
	header.Set(SessionHeader, key.String())

	_, err := newTestService(new(MockUserRepository), sessions, nil).Authenticate(ctx, header)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, custom_error.ErrAccessDenied)
}

func TestLogout(t *testing.T) {
	key := uuid.New()
	sessions := new(MockSessionRepository)
	service := newTestService(new(MockUserRepository), sessions, nil)

	err := service.Logout(context.Background())
	assert.ErrorIs(t, err, custom_error.ErrAccessDenied)

	ctx := withSession(context.Background(), &models.Session{Key: key})
	sessions.On("DeleteSession", ctx, key).Return(nil)

	assert.NoError(t, service.Logout(ctx))
	sessions.AssertExpectations(t)
}
