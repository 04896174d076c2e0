package storageunits

import (
	"context"
	"time"

	"github.com/reshxs/pocket-storage-backend/internal/pagination"
	"github.com/reshxs/pocket-storage-backend/internal/repository"
	custom_error "github.com/reshxs/pocket-storage-backend/pkg/errors"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

var operationConstraints = custom_error.ConstraintMap{
	"storage_unit_operation__employee_fk":     custom_error.ErrEmployeeNotFound,
	"storage_unit_operation__storage_unit_fk": custom_error.ErrStorageUnitNotFound,
}

var operationOrdering = pagination.Ordering[models.FlatStorageUnitOperationRecord]{
	{Expr: goqu.I("o.created_at"), Desc: true, Value: func(r models.FlatStorageUnitOperationRecord) interface{} {
		return r.CreatedAt.Format(time.RFC3339Nano)
	}, Parse: pagination.TimeValue},
	{Expr: goqu.I("o.id"), Desc: true, Value: func(r models.FlatStorageUnitOperationRecord) interface{} { return r.ID.String() }, Parse: pagination.UUIDValue},
}

// OperationRepository stores the history of a storage unit. Rows are only
// ever inserted.
type OperationRepository interface {
	PersistOperation(ctx context.Context, tx *goqu.TxDatabase, operation models.StorageUnitOperation) error
	GetOperations(ctx context.Context, storageUnitID uuid.UUID, req pagination.Request) (*pagination.Page[models.StorageUnitOperation], error)
}

type operationRepositoryImpl struct {
	repository *repository.Repository
}

func NewOperationRepository(r *repository.Repository) OperationRepository {
	return &operationRepositoryImpl{repository: r}
}

func (r *operationRepositoryImpl) PersistOperation(ctx context.Context, tx *goqu.TxDatabase, operation models.StorageUnitOperation) error {
	query := r.repository.Runner(tx).Insert("storage_unit_operation").
		Rows(goqu.Record{
			"id":              operation.ID.String(),
			"storage_unit_id": operation.StorageUnitID.String(),
			"employee_id":     operation.Employee.ID.String(),
			"initial_state":   operation.InitialState.String(),
			"final_state":     operation.FinalState.String(),
			"created_at":      operation.CreatedAt,
		})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return translate(operationConstraints, err, "failed to insert storage unit operation")
	}

	return nil
}

func (r *operationRepositoryImpl) GetOperations(ctx context.Context, storageUnitID uuid.UUID, req pagination.Request) (*pagination.Page[models.StorageUnitOperation], error) {
	query := r.repository.GoquDBWrapper.
		From(goqu.T("storage_unit_operation").As("o")).
		Join(goqu.T("employee").As("e"), goqu.On(goqu.I("e.id").Eq(goqu.I("o.employee_id")))).
		Join(goqu.T("employee_position").As("ep"), goqu.On(goqu.I("ep.id").Eq(goqu.I("e.position_id")))).
		Select(
			goqu.I("o.id").As("operation_id"),
			goqu.I("o.storage_unit_id").As("storage_unit_id"),
			goqu.I("o.initial_state").As("initial_state"),
			goqu.I("o.final_state").As("final_state"),
			goqu.I("o.created_at").As("created_at"),
			goqu.I("e.id").As("employee_id"),
			goqu.I("e.first_name").As("first_name"),
			goqu.I("e.last_name").As("last_name"),
			goqu.I("e.middle_name").As("middle_name"),
			goqu.I("ep.id").As("position_id"),
			goqu.I("ep.name").As("position_name"),
		).
		Where(goqu.I("o.storage_unit_id").Eq(storageUnitID.String()))

	return pagination.Paginate(ctx, query, operationOrdering, req, func(record models.FlatStorageUnitOperationRecord) models.StorageUnitOperation {
		return record.TransformToOperation()
	})
}
