package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reshxs/pocket-storage-backend/internal/repository"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	PersistSession(ctx context.Context, session models.Session) error
	GetSession(ctx context.Context, key uuid.UUID) (*models.Session, error)
	DeleteSession(ctx context.Context, key uuid.UUID) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepositoryImpl struct {
	repository *repository.Repository
}

func NewSessionRepository(r *repository.Repository) SessionRepository {
	return &sessionRepositoryImpl{repository: r}
}

func (r *sessionRepositoryImpl) PersistSession(ctx context.Context, session models.Session) error {
	query := r.repository.GoquDBWrapper.Insert("sessions").
		Rows(goqu.Record{
			"session_key": session.Key.String(),
			"user_id":     session.UserID,
			"expire_date": session.ExpireDate,
		})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

func (r *sessionRepositoryImpl) GetSession(ctx context.Context, key uuid.UUID) (*models.Session, error) {
	var session models.Session
	query := r.repository.GoquDBWrapper.
		Select("session_key", "user_id", "expire_date").
		From("sessions").
		Where(goqu.Ex{"session_key": key.String()})

	found, err := query.ScanStructContext(ctx, &session)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if !found {
		return nil, ErrSessionNotFound
	}

	return &session, nil
}

func (r *sessionRepositoryImpl) DeleteSession(ctx context.Context, key uuid.UUID) error {
	query := r.repository.GoquDBWrapper.Delete("sessions").
		Where(goqu.Ex{"session_key": key.String()})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (r *sessionRepositoryImpl) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	query := r.repository.GoquDBWrapper.Delete("sessions").
		Where(goqu.C("expire_date").Lte(now))

	result, err := query.Executor().ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	return result.RowsAffected()
}
