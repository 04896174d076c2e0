package staff

import (
	"context"
	"fmt"

	"github.com/reshxs/pocket-storage-backend/internal/repository"
	custom_error "github.com/reshxs/pocket-storage-backend/pkg/errors"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

var positionConstraints = custom_error.ConstraintMap{
	"employee_position__unique_name": custom_error.ErrEmployeePositionAlreadyExists,
}

type PositionRepository interface {
	PersistPosition(ctx context.Context, position models.EmployeePosition) error
	GetPositions(ctx context.Context) ([]models.EmployeePosition, error)
}

type positionRepositoryImpl struct {
	repository *repository.Repository
}

func NewPositionRepository(r *repository.Repository) PositionRepository {
	return &positionRepositoryImpl{repository: r}
}

func (r *positionRepositoryImpl) PersistPosition(ctx context.Context, position models.EmployeePosition) error {
	query := r.repository.GoquDBWrapper.Insert("employee_position").
		Rows(goqu.Record{
			"id":   position.ID.String(),
			"name": position.Name,
		})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return translate(positionConstraints, err, "failed to insert employee position")
	}

	return nil
}

func (r *positionRepositoryImpl) GetPositions(ctx context.Context) ([]models.EmployeePosition, error) {
	query := r.repository.GoquDBWrapper.
		Select("id", "name").
		From("employee_position").
		Order(goqu.C("name").Asc(), goqu.C("id").Asc())

	positions := []models.EmployeePosition{}
	if err := query.ScanStructsContext(ctx, &positions); err != nil {
		return nil, fmt.Errorf("failed to get employee positions: %w", err)
	}

	return positions, nil
}

func translate(constraints custom_error.ConstraintMap, err error, message string) error {
	if translated := constraints.Translate(err); translated != err {
		return translated
	}
	return fmt.Errorf("%s: %w", message, err)
}
