package storageunits

import (
	"context"
	"fmt"
	"time"

	"github.com/reshxs/pocket-storage-backend/internal/pagination"
	"github.com/reshxs/pocket-storage-backend/internal/repository"
	custom_error "github.com/reshxs/pocket-storage-backend/pkg/errors"
	"github.com/reshxs/pocket-storage-backend/pkg/metadata"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

var storageUnitConstraints = custom_error.ConstraintMap{
	"storage_unit__unique_ext_id_in_warehouse": custom_error.ErrStorageUnitAlreadyExists,
	"storage_unit__product_fk":                 custom_error.ErrProductNotFound,
	"storage_unit__warehouse_fk":               custom_error.ErrWarehouseNotFound,
}

var storageUnitAliases = map[string]string{
	"product_name":    "p.name",
	"product_sku":     "p.sku",
	"product_barcode": "p.barcode",
	"category_id":     "p.category_id",
	"product_id":      "su.product_id",
	"warehouse_id":    "su.warehouse_id",
	"ext_id":          "su.ext_id",
	"state":           "su.state",
	"created_at":      "su.created_at",
	"updated_at":      "su.updated_at",
}

// Mobile listings put units of the same product next to each other. Units
// without a slot sort as an empty ext_id.
var mobileOrdering = pagination.Ordering[models.FlatStorageUnitRecord]{
	{Expr: goqu.I("p.name"), Desc: true, Value: func(r models.FlatStorageUnitRecord) interface{} { return r.ProductName }},
	{Expr: goqu.COALESCE(goqu.I("su.ext_id"), ""), Desc: true, Value: func(r models.FlatStorageUnitRecord) interface{} {
		if r.ExtID == nil {
			return ""
		}
		return *r.ExtID
	}},
	{Expr: goqu.I("su.id"), Desc: true, Value: func(r models.FlatStorageUnitRecord) interface{} { return r.ID.String() }, Parse: pagination.UUIDValue},
}

var webOrdering = pagination.Ordering[models.FlatStorageUnitRecord]{
	{Expr: goqu.I("su.created_at"), Desc: true, Value: func(r models.FlatStorageUnitRecord) interface{} {
		return r.CreatedAt.Format(time.RFC3339Nano)
	}, Parse: pagination.TimeValue},
	{Expr: goqu.I("su.id"), Desc: true, Value: func(r models.FlatStorageUnitRecord) interface{} { return r.ID.String() }, Parse: pagination.UUIDValue},
}

// MobileFilter narrows the operational listing.
type MobileFilter struct {
	SearchQuery string
	CategoryIDs []uuid.UUID
}

func (f MobileFilter) conditions() *repository.QueryBuilder {
	return repository.NewQueryBuilder().
		AnyContains(f.SearchQuery, "product_name", "product_sku", "product_barcode", "ext_id").
		InIDs("category_id", f.CategoryIDs)
}

// WebFilter narrows the administrative listing of one product's units.
type WebFilter struct {
	WarehouseIDs []uuid.UUID
	States       []metadata.StorageUnitState
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	UpdatedFrom  *time.Time
	UpdatedTo    *time.Time
}

func (f WebFilter) conditions(productID uuid.UUID) *repository.QueryBuilder {
	states := make([]string, 0, len(f.States))
	for _, state := range f.States {
		states = append(states, state.String())
	}

	qb := repository.NewQueryBuilder().
		Eq("product_id", productID.String()).
		InIDs("warehouse_id", f.WarehouseIDs).
		In("state", states)
	if f.CreatedFrom != nil {
		qb.Gte("created_at", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		qb.Lte("created_at", *f.CreatedTo)
	}
	if f.UpdatedFrom != nil {
		qb.Gte("updated_at", *f.UpdatedFrom)
	}
	if f.UpdatedTo != nil {
		qb.Lte("updated_at", *f.UpdatedTo)
	}
	return qb
}

type StorageUnitRepository interface {
	PersistStorageUnit(ctx context.Context, tx *goqu.TxDatabase, unit models.StorageUnit) error
	GetStorageUnit(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, forUpdate bool) (*models.StorageUnit, error)
	UpdateExtID(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, extID *string, updatedAt time.Time) error
	DeleteStorageUnit(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID) error
	GetStorageUnits(ctx context.Context, filter MobileFilter, req pagination.Request) (*pagination.Page[models.StorageUnit], error)
	GetProductStorageUnits(ctx context.Context, productID uuid.UUID, filter WebFilter, req pagination.Request) (*pagination.Page[models.StorageUnit], error)
}

type storageUnitRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) StorageUnitRepository {
	return &storageUnitRepositoryImpl{repository: r}
}

func (r *storageUnitRepositoryImpl) storageUnitsQuery(tx *goqu.TxDatabase) *goqu.SelectDataset {
	return r.repository.Runner(tx).
		From(goqu.T("storage_unit").As("su")).
		Join(goqu.T("warehouse").As("w"), goqu.On(goqu.I("w.id").Eq(goqu.I("su.warehouse_id")))).
		Join(goqu.T("product").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("su.product_id")))).
		LeftJoin(goqu.T("product_category").As("pc"), goqu.On(goqu.I("pc.id").Eq(goqu.I("p.category_id")))).
		Select(
			goqu.I("su.id").As("storage_unit_id"),
			goqu.I("su.ext_id").As("ext_id"),
			goqu.I("su.state").As("state"),
			goqu.I("su.created_at").As("created_at"),
			goqu.I("su.updated_at").As("updated_at"),
			goqu.I("w.id").As("warehouse_id"),
			goqu.I("w.name").As("warehouse_name"),
			goqu.I("p.id").As("product_id"),
			goqu.I("p.name").As("product_name"),
			goqu.I("p.sku").As("product_sku"),
			goqu.I("p.barcode").As("product_barcode"),
			goqu.I("pc.id").As("category_id"),
			goqu.I("pc.name").As("category_name"),
			goqu.I("pc.parent_id").As("category_parent_id"),
		)
}

func (r *storageUnitRepositoryImpl) PersistStorageUnit(ctx context.Context, tx *goqu.TxDatabase, unit models.StorageUnit) error {
	query := r.repository.Runner(tx).Insert("storage_unit").
		Rows(goqu.Record{
			"id":           unit.ID.String(),
			"product_id":   unit.Product.ID.String(),
			"warehouse_id": unit.Warehouse.ID.String(),
			"ext_id":       nullableString(unit.ExtID),
			"state":        unit.State.String(),
			"created_at":   unit.CreatedAt,
		})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return translate(storageUnitConstraints, err, "failed to insert storage unit")
	}

	return nil
}

// GetStorageUnit reads a unit with its product and warehouse. With forUpdate
// only the storage_unit row is locked.
func (r *storageUnitRepositoryImpl) GetStorageUnit(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, forUpdate bool) (*models.StorageUnit, error) {
	query := r.storageUnitsQuery(tx).Where(goqu.I("su.id").Eq(id.String()))
	if forUpdate {
		query = query.ForUpdate(exp.Wait, goqu.T("su"))
	}

	var record models.FlatStorageUnitRecord
	found, err := query.ScanStructContext(ctx, &record)
	if err != nil {
		return nil, fmt.Errorf("failed to get storage unit: %w", err)
	}
	if !found {
		return nil, custom_error.ErrStorageUnitNotFound
	}

	unit := record.TransformToStorageUnit()
	return &unit, nil
}

func (r *storageUnitRepositoryImpl) UpdateExtID(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, extID *string, updatedAt time.Time) error {
	query := r.repository.Runner(tx).Update("storage_unit").
		Set(goqu.Record{
			"ext_id":     nullableString(extID),
			"updated_at": updatedAt,
		}).
		Where(goqu.Ex{"id": id.String()})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return translate(storageUnitConstraints, err, "failed to update storage unit")
	}

	return nil
}

func (r *storageUnitRepositoryImpl) DeleteStorageUnit(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID) error {
	query := r.repository.Runner(tx).Delete("storage_unit").
		Where(goqu.Ex{"id": id.String()})

	result, err := query.Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete storage unit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted storage unit: %w", err)
	}
	if affected == 0 {
		return custom_error.ErrStorageUnitNotFound
	}

	return nil
}

func (r *storageUnitRepositoryImpl) GetStorageUnits(ctx context.Context, filter MobileFilter, req pagination.Request) (*pagination.Page[models.StorageUnit], error) {
	return r.paginate(ctx, filter.conditions(), mobileOrdering, req)
}

func (r *storageUnitRepositoryImpl) GetProductStorageUnits(ctx context.Context, productID uuid.UUID, filter WebFilter, req pagination.Request) (*pagination.Page[models.StorageUnit], error) {
	return r.paginate(ctx, filter.conditions(productID), webOrdering, req)
}

func (r *storageUnitRepositoryImpl) paginate(ctx context.Context, conditions *repository.QueryBuilder, ordering pagination.Ordering[models.FlatStorageUnitRecord], req pagination.Request) (*pagination.Page[models.StorageUnit], error) {
	query := r.storageUnitsQuery(nil)
	if !conditions.IsEmpty() {
		query = query.Where(conditions.BuildConditions(storageUnitAliases))
	}

	return pagination.Paginate(ctx, query, ordering, req, func(record models.FlatStorageUnitRecord) models.StorageUnit {
		return record.TransformToStorageUnit()
	})
}

func nullableString(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

func translate(constraints custom_error.ConstraintMap, err error, message string) error {
	if translated := constraints.Translate(err); translated != err {
		return translated
	}
	return fmt.Errorf("%s: %w", message, err)
}
