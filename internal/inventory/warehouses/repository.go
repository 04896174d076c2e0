package warehouses

import (
	"context"
	"fmt"

	"github.com/reshxs/pocket-storage-backend/internal/repository"
	custom_error "github.com/reshxs/pocket-storage-backend/pkg/errors"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

var warehouseConstraints = custom_error.ConstraintMap{
	"warehouse__unique_name": custom_error.ErrWarehouseAlreadyExists,
}

type WarehouseRepository interface {
	PersistWarehouse(ctx context.Context, tx *goqu.TxDatabase, warehouse models.Warehouse) error
	GetWarehouse(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, forUpdate bool) (*models.Warehouse, error)
	GetWarehouses(ctx context.Context, tx *goqu.TxDatabase) ([]models.Warehouse, error)
	UpdateWarehouseName(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, name string) error
}

type warehouseRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) WarehouseRepository {
	return &warehouseRepositoryImpl{repository: r}
}

func (r *warehouseRepositoryImpl) PersistWarehouse(ctx context.Context, tx *goqu.TxDatabase, warehouse models.Warehouse) error {
	query := r.repository.Runner(tx).Insert("warehouse").
		Rows(goqu.Record{
			"id":   warehouse.ID.String(),
			"name": warehouse.Name,
		})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return translate(err, "failed to insert warehouse")
	}

	return nil
}

func (r *warehouseRepositoryImpl) GetWarehouse(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, forUpdate bool) (*models.Warehouse, error) {
	query := r.repository.Runner(tx).
		Select("id", "name").
		From("warehouse").
		Where(goqu.Ex{"id": id.String()})
	if forUpdate {
		query = query.ForUpdate(exp.Wait)
	}

	var warehouse models.Warehouse
	found, err := query.ScanStructContext(ctx, &warehouse)
	if err != nil {
		return nil, fmt.Errorf("failed to get warehouse: %w", err)
	}
	if !found {
		return nil, custom_error.ErrWarehouseNotFound
	}

	return &warehouse, nil
}

func (r *warehouseRepositoryImpl) GetWarehouses(ctx context.Context, tx *goqu.TxDatabase) ([]models.Warehouse, error) {
	warehouses := []models.Warehouse{}
	query := r.repository.Runner(tx).
		Select("id", "name").
		From("warehouse").
		Order(goqu.C("name").Asc(), goqu.C("id").Asc())

	if err := query.ScanStructsContext(ctx, &warehouses); err != nil {
		return nil, fmt.Errorf("failed to get warehouses: %w", err)
	}

	return warehouses, nil
}

func (r *warehouseRepositoryImpl) UpdateWarehouseName(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, name string) error {
	query := r.repository.Runner(tx).Update("warehouse").
		Set(goqu.Record{"name": name}).
		Where(goqu.Ex{"id": id.String()})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return translate(err, "failed to rename warehouse")
	}

	return nil
}

func translate(err error, message string) error {
	if translated := warehouseConstraints.Translate(err); translated != err {
		return translated
	}
	return fmt.Errorf("%s: %w", message, err)
}
