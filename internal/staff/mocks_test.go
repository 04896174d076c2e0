package staff

import (
	"context"

	"github.com/reshxs/pocket-storage-backend/internal/pagination"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockPositionRepository struct {
	mock.Mock
}

func (m *MockPositionRepository) PersistPosition(ctx context.Context, position models.EmployeePosition) error {
	args := m.Called(ctx, position)
	return args.Error(0)
}

func (m *MockPositionRepository) GetPositions(ctx context.Context) ([]models.EmployeePosition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EmployeePosition), args.Error(1)
}

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) PersistEmployee(ctx context.Context, tx *goqu.TxDatabase, employee models.Employee) error {
	args := m.Called(ctx, tx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) GetEmployee(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, forUpdate bool) (*models.Employee, error) {
	args := m.Called(ctx, tx, id, forUpdate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) UpdateEmployee(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, changes models.EmployeeChanges) error {
	args := m.Called(ctx, tx, id, changes)
	return args.Error(0)
}

func (m *MockEmployeeRepository) GetEmployees(ctx context.Context, filter EmployeeFilter, req pagination.Request) (*pagination.Page[models.Employee], error) {
	args := m.Called(ctx, filter, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[models.Employee]), args.Error(1)
}

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithTransaction(ctx context.Context, fn func(tx *goqu.TxDatabase) error) error {
	f.calls++
	return fn(nil)
}

var noTx *goqu.TxDatabase
