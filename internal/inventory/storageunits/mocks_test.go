package storageunits

import (
	"context"
	"time"

	"github.com/reshxs/pocket-storage-backend/internal/pagination"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockStorageUnitRepository struct {
	mock.Mock
}

func (m *MockStorageUnitRepository) PersistStorageUnit(ctx context.Context, tx *goqu.TxDatabase, unit models.StorageUnit) error {
	args := m.Called(ctx, tx, unit)
	return args.Error(0)
}

func (m *MockStorageUnitRepository) GetStorageUnit(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, forUpdate bool) (*models.StorageUnit, error) {
	args := m.Called(ctx, tx, id, forUpdate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StorageUnit), args.Error(1)
}

func (m *MockStorageUnitRepository) UpdateExtID(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, extID *string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, id, extID, updatedAt)
	return args.Error(0)
}

func (m *MockStorageUnitRepository) DeleteStorageUnit(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockStorageUnitRepository) GetStorageUnits(ctx context.Context, filter MobileFilter, req pagination.Request) (*pagination.Page[models.StorageUnit], error) {
	args := m.Called(ctx, filter, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[models.StorageUnit]), args.Error(1)
}

func (m *MockStorageUnitRepository) GetProductStorageUnits(ctx context.Context, productID uuid.UUID, filter WebFilter, req pagination.Request) (*pagination.Page[models.StorageUnit], error) {
	args := m.Called(ctx, productID, filter, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[models.StorageUnit]), args.Error(1)
}

type MockOperationRepository struct {
	mock.Mock
}

func (m *MockOperationRepository) PersistOperation(ctx context.Context, tx *goqu.TxDatabase, operation models.StorageUnitOperation) error {
	args := m.Called(ctx, tx, operation)
	return args.Error(0)
}

func (m *MockOperationRepository) GetOperations(ctx context.Context, storageUnitID uuid.UUID, req pagination.Request) (*pagination.Page[models.StorageUnitOperation], error) {
	args := m.Called(ctx, storageUnitID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[models.StorageUnitOperation]), args.Error(1)
}

type MockProductLookup struct {
	mock.Mock
}

func (m *MockProductLookup) GetProduct(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, forUpdate bool) (*models.Product, error) {
	args := m.Called(ctx, tx, id, forUpdate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductLookup) GetProductByBarcode(ctx context.Context, tx *goqu.TxDatabase, barcode string) (*models.Product, error) {
	args := m.Called(ctx, tx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

type MockWarehouseResolver struct {
	mock.Mock
}

func (m *MockWarehouseResolver) ResolveWarehouse(ctx context.Context, tx *goqu.TxDatabase, id *uuid.UUID) (*models.Warehouse, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithTransaction(ctx context.Context, fn func(tx *goqu.TxDatabase) error) error {
	f.calls++
	return fn(nil)
}

var noTx *goqu.TxDatabase
