package storageunits

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/reshxs/pocket-storage-backend/internal/jsonrpc"
	"github.com/reshxs/pocket-storage-backend/internal/pagination"
	"github.com/reshxs/pocket-storage-backend/pkg/metadata"
	"github.com/reshxs/pocket-storage-backend/pkg/models"
	"github.com/reshxs/pocket-storage-backend/pkg/qrcode"

	"github.com/google/uuid"
)

type mobileFiltersParams struct {
	SearchQuery string      `json:"search_query"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

type getStorageUnitsParams struct {
	Filters mobileFiltersParams `json:"filters"`
	pagination.Request
}

type webFiltersParams struct {
	WarehouseIDs []uuid.UUID                 `json:"warehouse_ids"`
	States       []metadata.StorageUnitState `json:"states" validate:"dive,oneof=NEW"`
	CreatedGte   *time.Time                  `json:"created_at__gte"`
	CreatedLte   *time.Time                  `json:"created_at__lte"`
	UpdatedGte   *time.Time                  `json:"updated_at__gte"`
	UpdatedLte   *time.Time                  `json:"updated_at__lte"`
}

type getProductStorageUnitsParams struct {
	ProductID uuid.UUID        `json:"product_id" validate:"required"`
	Filters   webFiltersParams `json:"filters"`
	pagination.Request
}

type getByIDParams struct {
	ID string `json:"id" validate:"required"`
}

type getByQRCodeParams struct {
	QRCodeContent string `json:"qrcode_content" validate:"required"`
}

type createWithProductIDParams struct {
	ProductID   uuid.UUID  `json:"product_id" validate:"required"`
	ExtID       *string    `json:"ext_id" validate:"omitempty,max=64"`
	WarehouseID *uuid.UUID `json:"warehouse_id"`
	EmployeeID  *uuid.UUID `json:"employee_id"`
}

type createWithBarcodeParams struct {
	Barcode     string     `json:"barcode" validate:"required"`
	ExtID       *string    `json:"ext_id" validate:"omitempty,max=64"`
	WarehouseID *uuid.UUID `json:"warehouse_id"`
	EmployeeID  *uuid.UUID `json:"employee_id"`
}

type updateExtIDParams struct {
	StorageUnitID uuid.UUID  `json:"storage_unit_id" validate:"required"`
	ExtID         *string    `json:"ext_id" validate:"omitempty,max=64"`
	EmployeeID    *uuid.UUID `json:"employee_id"`
}

type storageUnitIDParams struct {
	StorageUnitID uuid.UUID `json:"storage_unit_id" validate:"required"`
}

type getOperationsParams struct {
	StorageUnitID uuid.UUID `json:"storage_unit_id" validate:"required"`
	pagination.Request
}

type getQRCodeParams struct {
	StorageUnitID uuid.UUID `json:"storage_unit_id" validate:"required"`
	Size          int       `json:"size" validate:"omitempty,min=64,max=2048"`
}

// MobileStorageUnit is the flat shape scanners work with.
type MobileStorageUnit struct {
	ID                  uuid.UUID  `json:"id"`
	ProductID           uuid.UUID  `json:"product_id"`
	ProductName         string     `json:"product_name"`
	ProductSKU          string     `json:"product_SKU"`
	ProductBarcode      *string    `json:"product_barcode"`
	ProductCategoryID   *uuid.UUID `json:"product_category_id"`
	ProductCategoryName *string    `json:"product_category_name"`
	ExtID               *string    `json:"ext_id"`
}

func NewMobileStorageUnit(unit *models.StorageUnit) MobileStorageUnit {
	response := MobileStorageUnit{
		ID:             unit.ID,
		ProductID:      unit.Product.ID,
		ProductName:    unit.Product.Name,
		ProductSKU:     unit.Product.SKU,
		ProductBarcode: unit.Product.Barcode,
		ExtID:          unit.ExtID,
	}
	if category := unit.Product.Category; category != nil {
		response.ProductCategoryID = &category.ID
		response.ProductCategoryName = &category.Name
	}
	return response
}

type shortProduct struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type WebStorageUnit struct {
	ID        uuid.UUID                 `json:"id"`
	Product   shortProduct              `json:"product"`
	Warehouse models.Warehouse          `json:"warehouse"`
	State     metadata.StorageUnitState `json:"state"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt *time.Time                `json:"updated_at"`
}

func NewWebStorageUnit(unit *models.StorageUnit) WebStorageUnit {
	return WebStorageUnit{
		ID:        unit.ID,
		Product:   shortProduct{ID: unit.Product.ID, Name: unit.Product.Name},
		Warehouse: unit.Warehouse,
		State:     unit.State,
		CreatedAt: unit.CreatedAt,
		UpdatedAt: unit.UpdatedAt,
	}
}

type qrCodeResponse struct {
	StorageUnitID uuid.UUID `json:"storage_unit_id"`
	Content       string    `json:"content"`
	Image         string    `json:"image"`
}

type Handler struct {
	service  *Service
	resolver *Resolver
}

func NewHandler(service *Service, resolver *Resolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

func (h *Handler) RegisterMobileMethods(mobile *jsonrpc.Endpoint) {
	mobile.Register("get_storage_units", h.GetStorageUnits, jsonrpc.Params("filters", "pagination", "infinite_scroll"))
	mobile.Register("get_storage_unit_with_id", h.GetStorageUnitWithID, jsonrpc.Params("id"))
	mobile.Register("get_storage_unit_with_qrcode", h.GetStorageUnitWithQRCode, jsonrpc.Params("qrcode_content"))
	mobile.Register("create_storage_unit_with_product_id", h.CreateWithProductID,
		jsonrpc.Params("product_id", "ext_id", "warehouse_id", "employee_id"))
	mobile.Register("create_storage_unit_with_product_barcode", h.CreateWithProductBarcode,
		jsonrpc.Params("barcode", "ext_id", "warehouse_id", "employee_id"))
	mobile.Register("update_storage_unit_ext_id", h.UpdateExtID, jsonrpc.Params("storage_unit_id", "ext_id", "employee_id"))
	mobile.Register("delete_storage_unit", h.DeleteStorageUnit, jsonrpc.Params("storage_unit_id"))
}

func (h *Handler) RegisterWebMethods(web *jsonrpc.Endpoint) {
	web.Register("get_storage_units", h.GetProductStorageUnits,
		jsonrpc.Params("product_id", "filters", "pagination", "infinite_scroll"))
	web.Register("get_storage_unit_operations", h.GetOperations,
		jsonrpc.Params("storage_unit_id", "pagination", "infinite_scroll"))
	web.Register("get_storage_unit_qrcode", h.GetQRCode, jsonrpc.Params("storage_unit_id", "size"))
}

func (h *Handler) GetStorageUnits(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params getStorageUnitsParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	filter := MobileFilter{SearchQuery: params.Filters.SearchQuery, CategoryIDs: params.Filters.CategoryIDs}
	page, err := h.service.GetStorageUnits(ctx, filter, params.Request)
	if err != nil {
		return nil, err
	}

	return pagination.Map(page, func(unit models.StorageUnit) MobileStorageUnit {
		return NewMobileStorageUnit(&unit)
	}), nil
}

func (h *Handler) GetStorageUnitWithID(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params getByIDParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	unit, err := h.resolver.ResolveByID(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	return NewMobileStorageUnit(unit), nil
}

func (h *Handler) GetStorageUnitWithQRCode(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params getByQRCodeParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	unit, err := h.resolver.ResolveByQRCode(ctx, params.QRCodeContent)
	if err != nil {
		return nil, err
	}

	return NewMobileStorageUnit(unit), nil
}

func (h *Handler) CreateWithProductID(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params createWithProductIDParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	return h.create(ctx, CreateRequest{
		Product:     ProductRef{ID: &params.ProductID},
		WarehouseID: params.WarehouseID,
		ExtID:       params.ExtID,
		EmployeeID:  params.EmployeeID,
	})
}

func (h *Handler) CreateWithProductBarcode(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params createWithBarcodeParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	return h.create(ctx, CreateRequest{
		Product:     ProductRef{Barcode: &params.Barcode},
		WarehouseID: params.WarehouseID,
		ExtID:       params.ExtID,
		EmployeeID:  params.EmployeeID,
	})
}

func (h *Handler) create(ctx context.Context, req CreateRequest) (interface{}, error) {
	unit, err := h.service.CreateStorageUnit(ctx, req)
	if err != nil {
		return nil, err
	}

	return NewMobileStorageUnit(unit), nil
}

func (h *Handler) UpdateExtID(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params updateExtIDParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	unit, err := h.service.RelocateStorageUnit(ctx, params.StorageUnitID, params.ExtID, params.EmployeeID)
	if err != nil {
		return nil, err
	}

	return NewMobileStorageUnit(unit), nil
}

func (h *Handler) DeleteStorageUnit(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params storageUnitIDParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	if err := h.service.DeleteStorageUnit(ctx, params.StorageUnitID); err != nil {
		return nil, err
	}
	return true, nil
}

func (h *Handler) GetProductStorageUnits(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params getProductStorageUnitsParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	filter := WebFilter{
		WarehouseIDs: params.Filters.WarehouseIDs,
		States:       params.Filters.States,
		CreatedFrom:  params.Filters.CreatedGte,
		CreatedTo:    params.Filters.CreatedLte,
		UpdatedFrom:  params.Filters.UpdatedGte,
		UpdatedTo:    params.Filters.UpdatedLte,
	}
	page, err := h.service.GetProductStorageUnits(ctx, params.ProductID, filter, params.Request)
	if err != nil {
		return nil, err
	}

	return pagination.Map(page, func(unit models.StorageUnit) WebStorageUnit {
		return NewWebStorageUnit(&unit)
	}), nil
}

func (h *Handler) GetOperations(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params getOperationsParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	return h.service.GetOperations(ctx, params.StorageUnitID, params.Request)
}

func (h *Handler) GetQRCode(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params getQRCodeParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	size := params.Size
	if size == 0 {
		size = qrcode.DefaultImageSize
	}

	code, err := h.service.GetQRCode(ctx, params.StorageUnitID, size)
	if err != nil {
		return nil, err
	}

	return qrCodeResponse{
		StorageUnitID: params.StorageUnitID,
		Content:       code.Content,
		Image:         base64.StdEncoding.EncodeToString(code.PNG),
	}, nil
}
