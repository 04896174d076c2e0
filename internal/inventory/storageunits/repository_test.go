package storageunits

import (
	"context"
	"testing"
	"time"

	"github.com/reshxs/pocket-storage-backend/internal/pagination"
	"github.com/reshxs/pocket-storage-backend/internal/repository"
	custom_error "github.com/reshxs/pocket-storage-backend/pkg/errors"
	"github.com/reshxs/pocket-storage-backend/pkg/metadata"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storageUnitColumns = []string{
	"storage_unit_id", "ext_id", "state", "created_at", "updated_at", "warehouse_id", "warehouse_name",
	"product_id", "product_name", "product_sku", "product_barcode", "category_id", "category_name", "category_parent_id",
}

func newSQLMock(t *testing.T) (*repository.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return repository.NewRepository(db), mock
}

func TestPersistStorageUnit_SlotTaken(t *testing.T) {
	base, mock := newSQLMock(t)
	extID := "A1"

	mock.ExpectExec(`INSERT INTO "storage_unit"`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "storage_unit__unique_ext_id_in_warehouse"})

	err := NewRepository(base).PersistStorageUnit(context.Background(), nil, models.StorageUnit{
		ID:        uuid.New(),
		Product:   models.Product{ID: uuid.New()},
		Warehouse: models.Warehouse{ID: uuid.New()},
		ExtID:     &extID,
		State:     metadata.StateNew,
		CreatedAt: time.Now(),
	})

	assert.ErrorIs(t, err, custom_error.ErrStorageUnitAlreadyExists)
}

func TestGetStorageUnit_LocksOnlyStorageUnitRow(t *testing.T) {
	base, mock := newSQLMock(t)
	id := uuid.New()
	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "storage_unit" AS "su" .* WHERE \("su"\."id" = '` + id.String() + `'\) LIMIT 1 FOR UPDATE OF "su"`).
		WillReturnRows(sqlmock.NewRows(storageUnitColumns).AddRow(
			id.String(), "A1", "NEW", created, nil, uuid.NewString(), "W1",
			uuid.NewString(), "RedPaint", "SKU-1", "BC-1", nil, nil, nil))
	mock.ExpectCommit()

	err := base.WithTransaction(context.Background(), func(tx *goqu.TxDatabase) error {
		unit, err := NewRepository(base).GetStorageUnit(context.Background(), tx, id, true)
		if err == nil {
			assert.Equal(t, "A1", *unit.ExtID)
			assert.Equal(t, metadata.StateNew, unit.State)
			assert.Nil(t, unit.Product.Category)
		}
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteStorageUnit_Missing(t *testing.T) {
	base, mock := newSQLMock(t)

	mock.ExpectExec(`DELETE FROM "storage_unit"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewRepository(base).DeleteStorageUnit(context.Background(), nil, uuid.New())

	assert.ErrorIs(t, err, custom_error.ErrStorageUnitNotFound)
}

// A unit of RedPaint in slot A1 is found when listing by the Paint category.
func TestGetStorageUnits_ByCategory(t *testing.T) {
	base, mock := newSQLMock(t)
	categoryID := uuid.New()
	unitID := uuid.New()
	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`"p"\."category_id" IN \('` + categoryID.String() + `'\).*` +
		`ORDER BY "p"\."name" DESC, COALESCE\("su"\."ext_id", ?''\) DESC, "su"\."id" DESC LIMIT 51`).
		WillReturnRows(sqlmock.NewRows(storageUnitColumns).AddRow(
			unitID.String(), "A1", "NEW", created, nil, uuid.NewString(), "W1",
			uuid.NewString(), "RedPaint", "SKU-1", "BC-1", categoryID.String(), "Paint", nil))

	page, err := NewRepository(base).GetStorageUnits(context.Background(),
		MobileFilter{CategoryIDs: []uuid.UUID{categoryID}}, pagination.Request{})

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "RedPaint", page.Items[0].Product.Name)
	assert.Equal(t, "A1", *page.Items[0].ExtID)
	assert.Equal(t, "Paint", page.Items[0].Product.Category.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStorageUnits_SearchCoversSlot(t *testing.T) {
	base, mock := newSQLMock(t)

	mock.ExpectQuery(`"su"\."ext_id" ILIKE '%A1%'`).WillReturnRows(sqlmock.NewRows(storageUnitColumns))

	page, err := NewRepository(base).GetStorageUnits(context.Background(), MobileFilter{SearchQuery: "A1"}, pagination.Request{})

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductStorageUnits_Filters(t *testing.T) {
	base, mock := newSQLMock(t)
	productID := uuid.New()
	warehouseID := uuid.New()

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS "count" FROM "storage_unit" AS "su"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`"su"\."product_id" = '` + productID.String() + `'.*` +
		`"su"\."warehouse_id" IN \('` + warehouseID.String() + `'\).*"su"\."state" IN \('NEW'\).*"su"\."created_at" >= `).
		WillReturnRows(sqlmock.NewRows(storageUnitColumns))

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	page, err := NewRepository(base).GetProductStorageUnits(context.Background(), productID, WebFilter{
		WarehouseIDs: []uuid.UUID{warehouseID},
		States:       []metadata.StorageUnitState{metadata.StateNew},
		CreatedFrom:  &from,
	}, pagination.Request{Pagination: &pagination.PageParams{Count: true}})

	require.NoError(t, err)
	assert.Equal(t, int64(0), *page.TotalSize)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistOperation_UnknownEmployee(t *testing.T) {
	base, mock := newSQLMock(t)

	mock.ExpectExec(`INSERT INTO "storage_unit_operation"`).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "storage_unit_operation__employee_fk"})

	err := NewOperationRepository(base).PersistOperation(context.Background(), nil, models.StorageUnitOperation{
		ID:            uuid.New(),
		StorageUnitID: uuid.New(),
		Employee:      models.Employee{ID: uuid.New()},
		InitialState:  metadata.StateNew,
		FinalState:    metadata.StateNew,
		CreatedAt:     time.Now(),
	})

	assert.ErrorIs(t, err, custom_error.ErrEmployeeNotFound)
}

func TestGetOperations_NewestFirst(t *testing.T) {
	base, mock := newSQLMock(t)
	unitID := uuid.New()

	mock.ExpectQuery(`JOIN "employee_position" AS "ep" .*ORDER BY "o"\."created_at" DESC, "o"\."id" DESC`).
		WillReturnRows(sqlmock.NewRows([]string{
			"operation_id", "storage_unit_id", "initial_state", "final_state", "created_at",
			"employee_id", "first_name", "last_name", "middle_name", "position_id", "position_name",
		}).AddRow(uuid.NewString(), unitID.String(), "NEW", "NEW", time.Now(),
			uuid.NewString(), "Ivan", "Petrov", nil, uuid.NewString(), "Storekeeper"))

	page, err := NewOperationRepository(base).GetOperations(context.Background(), unitID, pagination.Request{})

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Petrov", page.Items[0].Employee.LastName)
	assert.Equal(t, "Storekeeper", page.Items[0].Employee.Position.Name)
}
