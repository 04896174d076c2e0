package storageunits

import (
	"context"

	custom_error "github.com/reshxs/pocket-storage-backend/pkg/errors"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

// ProductLookup is the part of the catalog the storage units need. It is
// satisfied by catalog.ProductRepository.
type ProductLookup interface {
	GetProduct(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, forUpdate bool) (*models.Product, error)
	GetProductByBarcode(ctx context.Context, tx *goqu.TxDatabase, barcode string) (*models.Product, error)
}

// TokenDecoder turns QR content back into a storage unit id.
type TokenDecoder interface {
	Decode(content string) (uuid.UUID, error)
}

// Resolver turns external references (ids, QR content, barcodes) into
// entities. It never writes.
type Resolver struct {
	units    StorageUnitRepository
	products ProductLookup
	decoder  TokenDecoder
}

func NewResolver(units StorageUnitRepository, products ProductLookup, decoder TokenDecoder) *Resolver {
	return &Resolver{units: units, products: products, decoder: decoder}
}

// ResolveByID accepts the raw identifier so that malformed ids are reported
// the same way as unknown ones.
func (r *Resolver) ResolveByID(ctx context.Context, rawID string) (*models.StorageUnit, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, custom_error.ErrStorageUnitNotFound
	}

	return r.units.GetStorageUnit(ctx, nil, id, false)
}

// ResolveByQRCode hides every decoding failure behind a plain not found.
func (r *Resolver) ResolveByQRCode(ctx context.Context, content string) (*models.StorageUnit, error) {
	id, err := r.decoder.Decode(content)
	if err != nil {
		return nil, custom_error.ErrStorageUnitNotFound
	}

	return r.units.GetStorageUnit(ctx, nil, id, false)
}

func (r *Resolver) ResolveProductByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	return r.products.GetProductByBarcode(ctx, nil, barcode)
}
