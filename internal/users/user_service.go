package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
}

type Service struct {
	repository UserRepository
}

func NewService(repository UserRepository) *Service {
	return &Service{repository: repository}
}

// CreateUser stores a back office account with a bcrypt password hash.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters long")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repository.PersistUser(ctx, models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
}
