package warehouses

import (
	"context"
	"fmt"
	"strings"

	"github.com/reshxs/pocket-storage-backend/internal/repository"
	custom_error "github.com/reshxs/pocket-storage-backend/pkg/errors"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type Service struct {
	repository       WarehouseRepository
	transactor       repository.Transactor
	defaultWarehouse *uuid.UUID
}

// NewService creates the warehouse service. defaultWarehouse, when set, is
// used for new storage units that do not name a warehouse.
func NewService(repo WarehouseRepository, transactor repository.Transactor, defaultWarehouse *uuid.UUID) *Service {
	return &Service{
		repository:       repo,
		transactor:       transactor,
		defaultWarehouse: defaultWarehouse,
	}
}

func (s *Service) AddWarehouse(ctx context.Context, name string) (*models.Warehouse, error) {
	warehouse := models.Warehouse{ID: uuid.New(), Name: strings.TrimSpace(name)}

	if err := s.repository.PersistWarehouse(ctx, nil, warehouse); err != nil {
		return nil, err
	}

	return &warehouse, nil
}

func (s *Service) RenameWarehouse(ctx context.Context, id uuid.UUID, newName string) (*models.Warehouse, error) {
	var warehouse *models.Warehouse

	err := s.transactor.WithTransaction(ctx, func(tx *goqu.TxDatabase) error {
		var err error
		warehouse, err = s.repository.GetWarehouse(ctx, tx, id, true)
		if err != nil {
			return err
		}

		warehouse.Name = strings.TrimSpace(newName)
		return s.repository.UpdateWarehouseName(ctx, tx, id, warehouse.Name)
	})
	if err != nil {
		return nil, err
	}

	return warehouse, nil
}

func (s *Service) GetWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	return s.repository.GetWarehouses(ctx, nil)
}

// ResolveWarehouse picks the warehouse for a new storage unit: the explicit
// one, then the configured default, then the only existing warehouse.
func (s *Service) ResolveWarehouse(ctx context.Context, tx *goqu.TxDatabase, id *uuid.UUID) (*models.Warehouse, error) {
	if id != nil {
		return s.repository.GetWarehouse(ctx, tx, *id, false)
	}

	if s.defaultWarehouse != nil {
		warehouse, err := s.repository.GetWarehouse(ctx, tx, *s.defaultWarehouse, false)
		if err != nil {
			return nil, fmt.Errorf("configured default warehouse: %w", err)
		}
		return warehouse, nil
	}

	warehouses, err := s.repository.GetWarehouses(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(warehouses) != 1 {
		return nil, custom_error.ErrWarehouseNotFound
	}

	return &warehouses[0], nil
}
