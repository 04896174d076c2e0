package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/reshxs/pocket-storage-backend/pkg/metadata"
)

// StorageUnit is a tracked physical inventory item stored in a warehouse slot.
type StorageUnit struct {
	ID        uuid.UUID                 `json:"id"`
	Product   Product                   `json:"product"`
	Warehouse Warehouse                 `json:"warehouse"`
	ExtID     *string                   `json:"ext_id"`
	State     metadata.StorageUnitState `json:"state"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt *time.Time                `json:"updated_at"`
}

type FlatStorageUnitRecord struct {
	ID                  uuid.UUID  `db:"storage_unit_id"`
	ExtID               *string    `db:"ext_id"`
	State               string     `db:"state"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           *time.Time `db:"updated_at"`
	WarehouseID         uuid.UUID  `db:"warehouse_id"`
	WarehouseName       string     `db:"warehouse_name"`
	ProductID           uuid.UUID  `db:"product_id"`
	ProductName         string     `db:"product_name"`
	ProductSKU          string     `db:"product_sku"`
	ProductBarcode      *string    `db:"product_barcode"`
	ProductCategoryID   *uuid.UUID `db:"category_id"`
	ProductCategoryName *string    `db:"category_name"`
	ProductCategoryPID  *uuid.UUID `db:"category_parent_id"`
}

func (fs *FlatStorageUnitRecord) TransformToStorageUnit() StorageUnit {
	product := FlatProductRecord{
		ID:             fs.ProductID,
		Name:           fs.ProductName,
		SKU:            fs.ProductSKU,
		Barcode:        fs.ProductBarcode,
		CategoryID:     fs.ProductCategoryID,
		CategoryName:   fs.ProductCategoryName,
		CategoryParent: fs.ProductCategoryPID,
	}

	return StorageUnit{
		ID:      fs.ID,
		Product: product.TransformToProduct(),
		Warehouse: Warehouse{
			ID:   fs.WarehouseID,
			Name: fs.WarehouseName,
		},
		ExtID:     fs.ExtID,
		State:     metadata.StorageUnitState(fs.State),
		CreatedAt: fs.CreatedAt,
		UpdatedAt: fs.UpdatedAt,
	}
}

// StorageUnitOperation is an append-only history entry for a storage unit.
type StorageUnitOperation struct {
	ID            uuid.UUID                 `json:"id"`
	StorageUnitID uuid.UUID                 `json:"storage_unit_id"`
	Employee      Employee                  `json:"employee"`
	InitialState  metadata.StorageUnitState `json:"initial_state"`
	FinalState    metadata.StorageUnitState `json:"final_state"`
	CreatedAt     time.Time                 `json:"created_at"`
}

type FlatStorageUnitOperationRecord struct {
	ID            uuid.UUID `db:"operation_id"`
	StorageUnitID uuid.UUID `db:"storage_unit_id"`
	InitialState  string    `db:"initial_state"`
	FinalState    string    `db:"final_state"`
	CreatedAt     time.Time `db:"created_at"`
	FlatEmployeeRecord
}

func (fo *FlatStorageUnitOperationRecord) TransformToOperation() StorageUnitOperation {
	return StorageUnitOperation{
		ID:            fo.ID,
		StorageUnitID: fo.StorageUnitID,
		Employee:      fo.FlatEmployeeRecord.TransformToEmployee(),
		InitialState:  metadata.StorageUnitState(fo.InitialState),
		FinalState:    metadata.StorageUnitState(fo.FinalState),
		CreatedAt:     fo.CreatedAt,
	}
}
