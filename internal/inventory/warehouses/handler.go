package warehouses

import (
	"context"

	"github.com/reshxs/pocket-storage-backend/internal/jsonrpc"

	"github.com/google/uuid"
)

type addWarehouseParams struct {
	Name string `json:"name" validate:"required,max=128"`
}

type renameWarehouseParams struct {
	ID      uuid.UUID `json:"id" validate:"required"`
	NewName string    `json:"new_name" validate:"required,max=128"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterMethods(web *jsonrpc.Endpoint) {
	web.Register("add_warehouse", h.AddWarehouse, jsonrpc.Params("name"))
	web.Register("rename_warehouse", h.RenameWarehouse, jsonrpc.Params("id", "new_name"))
	web.Register("get_warehouses", h.GetWarehouses)
}

func (h *Handler) AddWarehouse(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params addWarehouseParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	return h.service.AddWarehouse(ctx, params.Name)
}

func (h *Handler) RenameWarehouse(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params renameWarehouseParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	return h.service.RenameWarehouse(ctx, params.ID, params.NewName)
}

func (h *Handler) GetWarehouses(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	return h.service.GetWarehouses(ctx)
}
