package catalog

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

var categoryConstraints = custom_error.ConstraintMap{
	"product_category__unique_name_in_parent_scope": custom_error.ErrProductCategoryAlreadyExists,
	"product_category__unique_name_in_root_scope":   custom_error.ErrProductCategoryAlreadyExists,
	"product_category__parent_fk":                   custom_error.ErrProductCategoryNotFound,
}

// Deleting a category cascades to its subtree; products block the delete.
var categoryDeleteConstraints = custom_error.ConstraintMap{
	"product__category_fk": custom_error.ErrProductCategoryInUse,
}

type CategoryRepository interface {
	PersistCategory(ctx context.Context, tx *goqu.TxDatabase, category models.ProductCategory) error
	GetCategory(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, forUpdate bool) (*models.ProductCategory, error)
	LockCategories(ctx context.Context, tx *goqu.TxDatabase, ids []uuid.UUID) ([]models.ProductCategory, error)
	GetCategories(ctx context.Context, parentID *uuid.UUID) ([]models.ProductCategory, error)
	UpdateCategory(ctx context.Context, tx *goqu.TxDatabase, category models.ProductCategory) error
	DeleteCategory(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID) error
	IsAncestor(ctx context.Context, tx *goqu.TxDatabase, ancestorID uuid.UUID, categoryID uuid.UUID) (bool, error)
}

type categoryRepositoryImpl struct {
	repository *repository.Repository
}

func NewCategoryRepository(r *repository.Repository) CategoryRepository {
	return &categoryRepositoryImpl{repository: r}
}

func (r *categoryRepositoryImpl) PersistCategory(ctx context.Context, tx *goqu.TxDatabase, category models.ProductCategory) error {
	query := r.repository.Runner(tx).Insert("product_category").
		Rows(goqu.Record{
			"id":        category.ID.String(),
			"name":      category.Name,
			"parent_id": nullableID(category.ParentID),
		})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return translate(categoryConstraints, err, "failed to insert product category")
	}

	return nil
}

func (r *categoryRepositoryImpl) GetCategory(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, forUpdate bool) (*models.ProductCategory, error) {
	query := r.repository.Runner(tx).
		Select("id", "name", "parent_id").
		From("product_category").
		Where(goqu.Ex{"id": id.String()})
	if forUpdate {
		query = query.ForUpdate(exp.Wait)
	}

	var category models.ProductCategory
	found, err := query.ScanStructContext(ctx, &category)
	if err != nil {
		return nil, fmt.Errorf("failed to get product category: %w", err)
	}
	if !found {
		return nil, custom_error.ErrProductCategoryNotFound
	}

	return &category, nil
}

// LockCategories locks the given rows in id order within one statement, so
// concurrent callers always acquire them in the same sequence. Missing ids
// are simply absent from the result.
func (r *categoryRepositoryImpl) LockCategories(ctx context.Context, tx *goqu.TxDatabase, ids []uuid.UUID) ([]models.ProductCategory, error) {
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, id.String())
	}

	query := r.repository.Runner(tx).
		Select("id", "name", "parent_id").
		From("product_category").
		Where(goqu.C("id").In(values)).
		Order(goqu.C("id").Asc()).
		ForUpdate(exp.Wait)

	categories := []models.ProductCategory{}
	if err := query.ScanStructsContext(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to lock product categories: %w", err)
	}

	return categories, nil
}

// GetCategories lists direct children of parentID, or every category when
// parentID is nil.
func (r *categoryRepositoryImpl) GetCategories(ctx context.Context, parentID *uuid.UUID) ([]models.ProductCategory, error) {
	query := r.repository.GoquDBWrapper.
		Select("id", "name", "parent_id").
		From("product_category").
		Order(goqu.C("name").Asc(), goqu.C("id").Asc())

	if parentID != nil {
		query = query.Where(goqu.Ex{"parent_id": parentID.String()})
	}

	categories := []models.ProductCategory{}
	if err := query.ScanStructsContext(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to get product categories: %w", err)
	}

	return categories, nil
}

func (r *categoryRepositoryImpl) UpdateCategory(ctx context.Context, tx *goqu.TxDatabase, category models.ProductCategory) error {
	query := r.repository.Runner(tx).Update("product_category").
		Set(goqu.Record{
			"name":      category.Name,
			"parent_id": nullableID(category.ParentID),
		}).
		Where(goqu.Ex{"id": category.ID.String()})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return translate(categoryConstraints, err, "failed to update product category")
	}

	return nil
}

func (r *categoryRepositoryImpl) DeleteCategory(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID) error {
	query := r.repository.Runner(tx).Delete("product_category").
		Where(goqu.Ex{"id": id.String()})

	result, err := query.Executor().ExecContext(ctx)
	if err != nil {
		return translate(categoryDeleteConstraints, err, "failed to delete product category")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted product category: %w", err)
	}
	if affected == 0 {
		return custom_error.ErrProductCategoryNotFound
	}

	return nil
}

// IsAncestor walks up from categoryID to its root and reports whether
// ancestorID is on the way. A category counts as its own ancestor.
func (r *categoryRepositoryImpl) IsAncestor(ctx context.Context, tx *goqu.TxDatabase, ancestorID uuid.UUID, categoryID uuid.UUID) (bool, error) {
	dialect := goqu.Dialect("postgres")

	start := dialect.From("product_category").
		Select("id", "parent_id").
		Where(goqu.Ex{"id": categoryID.String()})
	step := dialect.From(goqu.T("product_category").As("pc")).
		Join(goqu.T("ancestors").As("a"), goqu.On(goqu.I("pc.id").Eq(goqu.I("a.parent_id")))).
		Select(goqu.I("pc.id"), goqu.I("pc.parent_id"))

	query := r.repository.Runner(tx).
		From("ancestors").
		WithRecursive("ancestors(id, parent_id)", start.UnionAll(step)).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.Ex{"id": ancestorID.String()})

	var count int64
	if _, err := query.ScanValContext(ctx, &count); err != nil {
		return false, fmt.Errorf("failed to walk product category ancestors: %w", err)
	}

	return count > 0, nil
}

func nullableID(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return id.String()
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
