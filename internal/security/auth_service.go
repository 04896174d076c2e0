package security

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/reshxs/pocket-storage-backend/internal/users"
	custom_error "github.com/reshxs/pocket-storage-backend/pkg/errors"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	SessionHeader     = "X-session-key"
	DefaultSessionTTL = 3 * time.Hour
)

// dummyPasswordHash is compared against when the username is unknown so that
// both failure paths spend the same bcrypt time.
var dummyPasswordHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("pocket-storage-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
})

type LoginLimiter interface {
	IsAllowed(key string) bool
	Reset(key string)
}

type LoginResult struct {
	Session *models.Session
	User    *models.User
}

type AuthService struct {
	users    users.UserRepository
	sessions SessionRepository
	limiter  LoginLimiter
	ttl      time.Duration
	now      func() time.Time
	compare  func(hash, password []byte) error
	logger   *zap.Logger
}

func NewAuthService(userRepo users.UserRepository, sessions SessionRepository, limiter LoginLimiter, ttl time.Duration, logger *zap.Logger) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &AuthService{
		users:    userRepo,
		sessions: sessions,
		limiter:  limiter,
		ttl:      ttl,
		now:      time.Now,
		compare:  bcrypt.CompareHashAndPassword,
		logger:   logger,
	}
}

// Login checks the credentials and opens a new session. clientKey identifies
// the caller for attempt limiting.
func (s *AuthService) Login(ctx context.Context, clientKey, username, password string) (*LoginResult, error) {
	if s.limiter != nil && !s.limiter.IsAllowed(clientKey) {
		s.logger.Warn("Login attempts limit reached", zap.String("client", clientKey))
		return nil, custom_error.ErrTooManyLoginAttempts
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			_ = s.compare(dummyPasswordHash(), []byte(password))
			return nil, custom_error.ErrWrongCredentials
		}
		return nil, err
	}

	if err := s.compare([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, custom_error.ErrWrongCredentials
	}

	session := models.Session{
		Key:        uuid.New(),
		UserID:     user.ID,
		ExpireDate: s.now().Add(s.ttl),
	}
	if err := s.sessions.PersistSession(ctx, session); err != nil {
		return nil, err
	}

	if s.limiter != nil {
		s.limiter.Reset(clientKey)
	}

	return &LoginResult{Session: &session, User: user}, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	session, ok := SessionFromContext(ctx)
	if !ok {
		return custom_error.ErrAccessDenied
	}

	return s.sessions.DeleteSession(ctx, session.Key)
}

// Authenticate resolves the session header. Every failure, whatever its
// cause, is reported as access denied.
func (s *AuthService) Authenticate(ctx context.Context, header http.Header) (context.Context, error) {
	raw := header.Get(SessionHeader)
	if raw == "" {
		return nil, custom_error.ErrAccessDenied
	}

	key, err := uuid.Parse(raw)
	if err != nil {
		return nil, custom_error.ErrAccessDenied
	}

	session, err := s.sessions.GetSession(ctx, key)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, custom_error.ErrAccessDenied
		}
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if session.IsExpired(s.now()) {
		return nil, custom_error.ErrAccessDenied
	}

	return withSession(ctx, session), nil
}

// PurgeExpiredSessions removes sessions that can no longer authenticate.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpiredSessions(ctx, s.now())
}
