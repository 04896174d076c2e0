package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/reshxs/pocket-storage-backend/internal/pagination"
	"github.com/reshxs/pocket-storage-backend/internal/repository"
	custom_error "github.com/reshxs/pocket-storage-backend/pkg/errors"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

var productConstraints = custom_error.ConstraintMap{
	"product__unique_sku":     custom_error.ErrProductAlreadyExists,
	"product__unique_barcode": custom_error.ErrProductAlreadyExists,
	"product__category_fk":    custom_error.ErrProductCategoryNotFound,
}

var productAliases = map[string]string{
	"name":        "p.name",
	"sku":         "p.sku",
	"barcode":     "p.barcode",
	"category_id": "p.category_id",
}

var productOrdering = pagination.Ordering[models.FlatProductRecord]{
	{Expr: goqu.I("p.name"), Value: func(r models.FlatProductRecord) interface{} { return r.Name }},
	{Expr: goqu.I("p.id"), Value: func(r models.FlatProductRecord) interface{} { return r.ID.String() }, Parse: pagination.UUIDValue},
}

type ProductFilter struct {
	Search     string
	CategoryID *uuid.UUID
}

func (f ProductFilter) conditions() *repository.QueryBuilder {
	qb := repository.NewQueryBuilder().AnyContains(f.Search, "name", "sku", "barcode")
	if f.CategoryID != nil {
		qb.Eq("category_id", f.CategoryID.String())
	}
	return qb
}

type ProductRepository interface {
	PersistProduct(ctx context.Context, tx *goqu.TxDatabase, product models.Product) error
	GetProduct(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, forUpdate bool) (*models.Product, error)
	GetProductByBarcode(ctx context.Context, tx *goqu.TxDatabase, barcode string) (*models.Product, error)
	UpdateProduct(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, changes models.ProductChanges, updatedAt time.Time) error
	GetProducts(ctx context.Context, filter ProductFilter, req pagination.Request) (*pagination.Page[models.Product], error)
}

type productRepositoryImpl struct {
	repository *repository.Repository
}

func NewProductRepository(r *repository.Repository) ProductRepository {
	return &productRepositoryImpl{repository: r}
}

func (r *productRepositoryImpl) productsQuery(tx *goqu.TxDatabase) *goqu.SelectDataset {
	return r.repository.Runner(tx).
		From(goqu.T("product").As("p")).
		LeftJoin(goqu.T("product_category").As("pc"), goqu.On(goqu.I("pc.id").Eq(goqu.I("p.category_id")))).
		Select(
			goqu.I("p.id").As("product_id"),
			goqu.I("p.name").As("product_name"),
			goqu.I("p.sku").As("product_sku"),
			goqu.I("p.barcode").As("product_barcode"),
			goqu.I("p.updated_at").As("product_updated_at"),
			goqu.I("p.created_at").As("product_created_at"),
			goqu.I("pc.id").As("category_id"),
			goqu.I("pc.name").As("category_name"),
			goqu.I("pc.parent_id").As("category_parent_id"),
		)
}

func (r *productRepositoryImpl) PersistProduct(ctx context.Context, tx *goqu.TxDatabase, product models.Product) error {
	query := r.repository.Runner(tx).Insert("product").
		Rows(goqu.Record{
			"id":          product.ID.String(),
			"name":        product.Name,
			"sku":         product.SKU,
			"barcode":     nullableString(product.Barcode),
			"category_id": nullableID(product.CategoryID),
			"created_at":  product.CreatedAt,
		})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return translate(productConstraints, err, "failed to insert product")
	}

	return nil
}

func (r *productRepositoryImpl) GetProduct(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, forUpdate bool) (*models.Product, error) {
	query := r.productsQuery(tx).Where(goqu.I("p.id").Eq(id.String()))
	if forUpdate {
		query = query.ForUpdate(exp.Wait, goqu.T("p"))
	}

	return r.scanProduct(ctx, query)
}

func (r *productRepositoryImpl) GetProductByBarcode(ctx context.Context, tx *goqu.TxDatabase, barcode string) (*models.Product, error) {
	return r.scanProduct(ctx, r.productsQuery(tx).Where(goqu.I("p.barcode").Eq(barcode)))
}

func (r *productRepositoryImpl) scanProduct(ctx context.Context, query *goqu.SelectDataset) (*models.Product, error) {
	var record models.FlatProductRecord
	found, err := query.ScanStructContext(ctx, &record)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if !found {
		return nil, custom_error.ErrProductNotFound
	}

	product := record.TransformToProduct()
	return &product, nil
}

func (r *productRepositoryImpl) UpdateProduct(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, changes models.ProductChanges, updatedAt time.Time) error {
	record := goqu.Record{"updated_at": updatedAt}
	if changes.Name != nil {
		record["name"] = *changes.Name
	}
	if changes.SKU != nil {
		record["sku"] = *changes.SKU
	}
	if changes.Barcode != nil {
		record["barcode"] = *changes.Barcode
	} else if changes.ClearBarcode {
		record["barcode"] = nil
	}
	if changes.CategoryID != nil {
		record["category_id"] = changes.CategoryID.String()
	}

	query := r.repository.Runner(tx).Update("product").
		Set(record).
		Where(goqu.Ex{"id": id.String()})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return translate(productConstraints, err, "failed to update product")
	}

	return nil
}

func (r *productRepositoryImpl) GetProducts(ctx context.Context, filter ProductFilter, req pagination.Request) (*pagination.Page[models.Product], error) {
	query := r.productsQuery(nil)
	if conditions := filter.conditions(); !conditions.IsEmpty() {
		query = query.Where(conditions.BuildConditions(productAliases))
	}

	return pagination.Paginate(ctx, query, productOrdering, req, func(record models.FlatProductRecord) models.Product {
		return record.TransformToProduct()
	})
}
