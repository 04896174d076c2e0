package catalog

import (
	"context"
	"time"

	"github.com/reshxs/pocket-storage-backend/internal/pagination"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) PersistCategory(ctx context.Context, tx *goqu.TxDatabase, category models.ProductCategory) error {
	args := m.Called(ctx, tx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetCategory(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, forUpdate bool) (*models.ProductCategory, error) {
	args := m.Called(ctx, tx, id, forUpdate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductCategory), args.Error(1)
}

func (m *MockCategoryRepository) LockCategories(ctx context.Context, tx *goqu.TxDatabase, ids []uuid.UUID) ([]models.ProductCategory, error) {
	args := m.Called(ctx, tx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductCategory), args.Error(1)
}

func (m *MockCategoryRepository) GetCategories(ctx context.Context, parentID *uuid.UUID) ([]models.ProductCategory, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductCategory), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, tx *goqu.TxDatabase, category models.ProductCategory) error {
	args := m.Called(ctx, tx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) IsAncestor(ctx context.Context, tx *goqu.TxDatabase, ancestorID uuid.UUID, categoryID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, ancestorID, categoryID)
	return args.Bool(0), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) PersistProduct(ctx context.Context, tx *goqu.TxDatabase, product models.Product) error {
	args := m.Called(ctx, tx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetProduct(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, forUpdate bool) (*models.Product, error) {
	args := m.Called(ctx, tx, id, forUpdate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetProductByBarcode(ctx context.Context, tx *goqu.TxDatabase, barcode string) (*models.Product, error) {
	args := m.Called(ctx, tx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, changes models.ProductChanges, updatedAt time.Time) error {
	args := m.Called(ctx, tx, id, changes, updatedAt)
	return args.Error(0)
}

func (m *MockProductRepository) GetProducts(ctx context.Context, filter ProductFilter, req pagination.Request) (*pagination.Page[models.Product], error) {
	args := m.Called(ctx, filter, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[models.Product]), args.Error(1)
}

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithTransaction(ctx context.Context, fn func(tx *goqu.TxDatabase) error) error {
	f.calls++
	return fn(nil)
}

var noTx *goqu.TxDatabase
