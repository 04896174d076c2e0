package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/reshxs/pocket-storage-backend/internal/repository"
	custom_error "github.com/reshxs/pocket-storage-backend/pkg/errors"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username is already taken")
)

var userConstraints = custom_error.ConstraintMap{
	"users__unique_username": ErrUsernameTaken,
}

type UserRepository interface {
	PersistUser(ctx context.Context, user models.User) (*models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type userRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) UserRepository {
	return &userRepositoryImpl{repository: r}
}

func (r *userRepositoryImpl) PersistUser(ctx context.Context, user models.User) (*models.User, error) {
	query := r.repository.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"username":      user.Username,
			"password_hash": user.PasswordHash,
			"first_name":    user.FirstName,
			"last_name":     user.LastName,
		}).
		Returning("id")

	if _, err := query.Executor().ScanValContext(ctx, &user.ID); err != nil {
		if translated := userConstraints.Translate(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &user, nil
}

func (r *userRepositoryImpl) GetUser(ctx context.Context, id int) (*models.User, error) {
	return r.getUserWhere(ctx, goqu.Ex{"id": id})
}

func (r *userRepositoryImpl) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUserWhere(ctx, goqu.Ex{"username": username})
}

func (r *userRepositoryImpl) getUserWhere(ctx context.Context, where goqu.Ex) (*models.User, error) {
	var user models.User
	query := r.repository.GoquDBWrapper.
		Select("id", "username", "password_hash", "first_name", "last_name").
		From("users").
		Where(where)

	found, err := query.ScanStructContext(ctx, &user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return nil, ErrUserNotFound
	}

	return &user, nil
}
