package storageunits

import (
	"context"
	"fmt"
	"time"

	"github.com/reshxs/pocket-storage-backend/internal/pagination"
	"github.com/reshxs/pocket-storage-backend/internal/repository"
	"github.com/reshxs/pocket-storage-backend/pkg/metadata"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

// WarehouseResolver picks the warehouse a new unit goes to. It is satisfied
// by warehouses.Service.
type WarehouseResolver interface {
	ResolveWarehouse(ctx context.Context, tx *goqu.TxDatabase, id *uuid.UUID) (*models.Warehouse, error)
}

// QRRenderer produces the QR payload of a storage unit.
type QRRenderer interface {
	Encode(storageUnitID uuid.UUID) (string, error)
	PNG(storageUnitID uuid.UUID, size int) ([]byte, error)
}

// ProductRef points at a product either by id or by barcode.
type ProductRef struct {
	ID      *uuid.UUID
	Barcode *string
}

type CreateRequest struct {
	Product     ProductRef
	WarehouseID *uuid.UUID
	ExtID       *string
	EmployeeID  *uuid.UUID
}

type QRCode struct {
	Content string
	PNG     []byte
}

type Service struct {
	units      StorageUnitRepository
	operations OperationRepository
	products   ProductLookup
	warehouses WarehouseResolver
	qr         QRRenderer
	transactor repository.Transactor
	now        func() time.Time
}

func NewService(
	units StorageUnitRepository,
	operations OperationRepository,
	products ProductLookup,
	warehouses WarehouseResolver,
	qr QRRenderer,
	transactor repository.Transactor,
) *Service {
	return &Service{
		units:      units,
		operations: operations,
		products:   products,
		warehouses: warehouses,
		qr:         qr,
		transactor: transactor,
		now:        time.Now,
	}
}

func (s *Service) CreateStorageUnit(ctx context.Context, req CreateRequest) (*models.StorageUnit, error) {
	var unit *models.StorageUnit

	err := s.transactor.WithTransaction(ctx, func(tx *goqu.TxDatabase) error {
		product, err := s.resolveProduct(ctx, tx, req.Product)
		if err != nil {
			return err
		}

		warehouse, err := s.warehouses.ResolveWarehouse(ctx, tx, req.WarehouseID)
		if err != nil {
			return err
		}

		unit = &models.StorageUnit{
			ID:        uuid.New(),
			Product:   *product,
			Warehouse: *warehouse,
			ExtID:     req.ExtID,
			State:     metadata.StateNew,
			CreatedAt: s.now(),
		}
		if err := s.units.PersistStorageUnit(ctx, tx, *unit); err != nil {
			return err
		}

		return s.recordOperation(ctx, tx, unit, req.EmployeeID)
	})
	if err != nil {
		return nil, err
	}

	return unit, nil
}

func (s *Service) resolveProduct(ctx context.Context, tx *goqu.TxDatabase, ref ProductRef) (*models.Product, error) {
	switch {
	case ref.ID != nil:
		return s.products.GetProduct(ctx, tx, *ref.ID, false)
	case ref.Barcode != nil:
		return s.products.GetProductByBarcode(ctx, tx, *ref.Barcode)
	default:
		return nil, fmt.Errorf("product reference is empty")
	}
}

// RelocateStorageUnit moves a unit to another slot under a row lock and
// returns the stored result.
func (s *Service) RelocateStorageUnit(ctx context.Context, id uuid.UUID, extID *string, employeeID *uuid.UUID) (*models.StorageUnit, error) {
	var unit *models.StorageUnit

	err := s.transactor.WithTransaction(ctx, func(tx *goqu.TxDatabase) error {
		current, err := s.units.GetStorageUnit(ctx, tx, id, true)
		if err != nil {
			return err
		}

		if err := s.units.UpdateExtID(ctx, tx, id, extID, s.now()); err != nil {
			return err
		}
		if err := s.recordOperation(ctx, tx, current, employeeID); err != nil {
			return err
		}

		unit, err = s.units.GetStorageUnit(ctx, tx, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	return unit, nil
}

func (s *Service) DeleteStorageUnit(ctx context.Context, id uuid.UUID) error {
	return s.transactor.WithTransaction(ctx, func(tx *goqu.TxDatabase) error {
		if _, err := s.units.GetStorageUnit(ctx, tx, id, true); err != nil {
			return err
		}
		return s.units.DeleteStorageUnit(ctx, tx, id)
	})
}

// recordOperation appends a history entry when an acting employee is known.
// The state is carried over unchanged.
func (s *Service) recordOperation(ctx context.Context, tx *goqu.TxDatabase, unit *models.StorageUnit, employeeID *uuid.UUID) error {
	if employeeID == nil {
		return nil
	}

	return s.operations.PersistOperation(ctx, tx, models.StorageUnitOperation{
		ID:            uuid.New(),
		StorageUnitID: unit.ID,
		Employee:      models.Employee{ID: *employeeID},
		InitialState:  unit.State,
		FinalState:    unit.State,
		CreatedAt:     s.now(),
	})
}

func (s *Service) GetStorageUnits(ctx context.Context, filter MobileFilter, req pagination.Request) (*pagination.Page[models.StorageUnit], error) {
	return s.units.GetStorageUnits(ctx, filter, req)
}

func (s *Service) GetProductStorageUnits(ctx context.Context, productID uuid.UUID, filter WebFilter, req pagination.Request) (*pagination.Page[models.StorageUnit], error) {
	return s.units.GetProductStorageUnits(ctx, productID, filter, req)
}

func (s *Service) GetOperations(ctx context.Context, storageUnitID uuid.UUID, req pagination.Request) (*pagination.Page[models.StorageUnitOperation], error) {
	if _, err := s.units.GetStorageUnit(ctx, nil, storageUnitID, false); err != nil {
		return nil, err
	}
	return s.operations.GetOperations(ctx, storageUnitID, req)
}

// GetQRCode renders the QR payload of an existing unit.
func (s *Service) GetQRCode(ctx context.Context, id uuid.UUID, size int) (*QRCode, error) {
	if _, err := s.units.GetStorageUnit(ctx, nil, id, false); err != nil {
		return nil, err
	}

	content, err := s.qr.Encode(id)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr content: %w", err)
	}
	image, err := s.qr.PNG(id, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}

	return &QRCode{Content: content, PNG: image}, nil
}
