package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	SKU        string           `json:"SKU"`
	Barcode    *string          `json:"barcode"`
	CategoryID *uuid.UUID       `json:"category_id"`
	Category   *ProductCategory `json:"category"`
	UpdatedAt  *time.Time       `json:"updated_at"`
	CreatedAt  time.Time        `json:"created_at"`
}

// ProductChanges holds the fields of a partial product update. Nil fields are
// left untouched; ClearBarcode sets the barcode to NULL.
type ProductChanges struct {
	Name         *string
	SKU          *string
	Barcode      *string
	ClearBarcode bool
	CategoryID   *uuid.UUID
}

func (c *ProductChanges) HasChanges() bool {
	return c.Name != nil || c.SKU != nil || c.Barcode != nil || c.ClearBarcode || c.CategoryID != nil
}

type FlatProductRecord struct {
	ID             uuid.UUID  `db:"product_id"`
	Name           string     `db:"product_name"`
	SKU            string     `db:"product_sku"`
	Barcode        *string    `db:"product_barcode"`
	UpdatedAt      *time.Time `db:"product_updated_at"`
	CreatedAt      time.Time  `db:"product_created_at"`
	CategoryID     *uuid.UUID `db:"category_id"`
	CategoryName   *string    `db:"category_name"`
	CategoryParent *uuid.UUID `db:"category_parent_id"`
}

func (fp *FlatProductRecord) TransformToProduct() Product {
	product := Product{
		ID:         fp.ID,
		Name:       fp.Name,
		SKU:        fp.SKU,
		Barcode:    fp.Barcode,
		CategoryID: fp.CategoryID,
		UpdatedAt:  fp.UpdatedAt,
		CreatedAt:  fp.CreatedAt,
	}

	if fp.CategoryID != nil {
		category := ProductCategory{ID: *fp.CategoryID, ParentID: fp.CategoryParent}
		if fp.CategoryName != nil {
			category.Name = *fp.CategoryName
		}
		product.Category = &category
	}

	return product
}
