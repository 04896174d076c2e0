package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/reshxs/pocket-storage-backend/internal/pagination"
	"github.com/reshxs/pocket-storage-backend/internal/repository"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type ProductData struct {
	Name       string
	SKU        string
	Barcode    *string
	CategoryID *uuid.UUID
}

type ProductService struct {
	products   ProductRepository
	transactor repository.Transactor
	now        func() time.Time
}

func NewProductService(products ProductRepository, transactor repository.Transactor) *ProductService {
	return &ProductService{products: products, transactor: transactor, now: time.Now}
}

func (s *ProductService) AddProduct(ctx context.Context, data ProductData) (*models.Product, error) {
	product := models.Product{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(data.Name),
		SKU:        strings.TrimSpace(data.SKU),
		Barcode:    normalizeBarcode(data.Barcode),
		CategoryID: data.CategoryID,
		CreatedAt:  s.now(),
	}

	if err := s.products.PersistProduct(ctx, nil, product); err != nil {
		return nil, err
	}

	return &product, nil
}

// UpdateProduct applies a partial update under a row lock and stamps
// updated_at. An empty change set leaves the product untouched.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, changes models.ProductChanges) (*models.Product, error) {
	if changes.Barcode != nil {
		changes.Barcode = normalizeBarcode(changes.Barcode)
		changes.ClearBarcode = changes.Barcode == nil
	}

	var product *models.Product

	err := s.transactor.WithTransaction(ctx, func(tx *goqu.TxDatabase) error {
		var err error
		product, err = s.products.GetProduct(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if !changes.HasChanges() {
			return nil
		}

		if err := s.products.UpdateProduct(ctx, tx, id, changes, s.now()); err != nil {
			return err
		}

		product, err = s.products.GetProduct(ctx, tx, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.products.GetProduct(ctx, nil, id, false)
}

// GetProductByBarcode resolves a scanned barcode into a product.
func (s *ProductService) GetProductByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	return s.products.GetProductByBarcode(ctx, nil, barcode)
}

func (s *ProductService) GetProducts(ctx context.Context, filter ProductFilter, req pagination.Request) (*pagination.Page[models.Product], error) {
	return s.products.GetProducts(ctx, filter, req)
}

// normalizeBarcode stores a blank barcode as NULL so that products without
// one never collide on the unique barcode constraint.
func normalizeBarcode(barcode *string) *string {
	if barcode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*barcode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
