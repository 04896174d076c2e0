package storageunits

import (
	"context"
	"testing"

	custom_error "github.com/reshxs/pocket-storage-backend/pkg/errors"
	"github.com/reshxs/pocket-storage-backend/pkg/models"
	"github.com/reshxs/pocket-storage-backend/pkg/qrcode"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) (*Resolver, *MockStorageUnitRepository, *MockProductLookup, *qrcode.Codec) {
	t.Helper()
	codec, err := qrcode.NewCodec("test-secret")
	require.NoError(t, err)

	units := new(MockStorageUnitRepository)
	products := new(MockProductLookup)
	return NewResolver(units, products, codec), units, products, codec
}

func TestResolveByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		resolver, units, _, _ := newTestResolver(t)
		units.On("GetStorageUnit", ctx, noTx, id, false).Return(&models.StorageUnit{ID: id}, nil)

		unit, err := resolver.ResolveByID(ctx, id.String())

		require.NoError(t, err)
		assert.Equal(t, id, unit.ID)
	})

	t.Run("malformed id", func(t *testing.T) {
		resolver, units, _, _ := newTestResolver(t)

		_, err := resolver.ResolveByID(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, custom_error.ErrStorageUnitNotFound)
		units.AssertNotCalled(t, "GetStorageUnit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestResolveByQRCode(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	foreign, err := qrcode.NewCodec("another-secret")
	require.NoError(t, err)
	foreignContent, err := foreign.Encode(id)
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		resolver, units, _, codec := newTestResolver(t)
		content, err := codec.Encode(id)
		require.NoError(t, err)
		units.On("GetStorageUnit", ctx, noTx, id, false).Return(&models.StorageUnit{ID: id}, nil)

		unit, err := resolver.ResolveByQRCode(ctx, content)

		require.NoError(t, err)
		assert.Equal(t, id, unit.ID)
	})

	t.Run("well formed but unknown unit", func(t *testing.T) {
		resolver, units, _, codec := newTestResolver(t)
		content, err := codec.Encode(id)
		require.NoError(t, err)
		units.On("GetStorageUnit", ctx, noTx, id, false).Return(nil, custom_error.ErrStorageUnitNotFound)

		_, err = resolver.ResolveByQRCode(ctx, content)

		assert.ErrorIs(t, err, custom_error.ErrStorageUnitNotFound)
	})

	for name, content := range map[string]string{
		"garbage":     "test",
		"foreign key": foreignContent,
		"empty":       "",
	} {
		t.Run(name, func(t *testing.T) {
			resolver, units, _, _ := newTestResolver(t)

			_, err := resolver.ResolveByQRCode(ctx, content)

			assert.ErrorIs(t, err, custom_error.ErrStorageUnitNotFound)
			units.AssertNotCalled(t, "GetStorageUnit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestResolveProductByBarcode(t *testing.T) {
	ctx := context.Background()
	resolver, _, products, _ := newTestResolver(t)
	products.On("GetProductByBarcode", ctx, noTx, "missing").Return(nil, custom_error.ErrProductNotFound)

	_, err := resolver.ResolveProductByBarcode(ctx, "missing")

	assert.ErrorIs(t, err, custom_error.ErrProductNotFound)
}
