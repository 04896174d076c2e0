package catalog

import (
	"context"

	"github.com/reshxs/pocket-storage-backend/internal/jsonrpc"
	"github.com/reshxs/pocket-storage-backend/internal/pagination"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/google/uuid"
)

type addCategoryParams struct {
	Name     string     `json:"name" validate:"required,max=32"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type renameCategoryParams struct {
	ID      uuid.UUID `json:"id" validate:"required"`
	NewName string    `json:"new_name" validate:"required,max=32"`
}

type moveCategoryParams struct {
	ID       uuid.UUID  `json:"id" validate:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type categoryIDParams struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

type getCategoriesParams struct {
	ParentID *uuid.UUID `json:"parent_id"`
}

type productCreateData struct {
	Name       string     `json:"name" validate:"required,max=256"`
	SKU        string     `json:"SKU" validate:"required,max=24"`
	Barcode    *string    `json:"barcode" validate:"omitempty,max=24"`
	CategoryID *uuid.UUID `json:"category_id"`
}

type productUpdateData struct {
	Name       *string    `json:"name" validate:"omitempty,min=1,max=256"`
	SKU        *string    `json:"SKU" validate:"omitempty,min=1,max=24"`
	Barcode    *string    `json:"barcode" validate:"omitempty,max=24"`
	CategoryID *uuid.UUID `json:"category_id"`
}

type addProductParams struct {
	ProductData productCreateData `json:"product_data" validate:"required"`
}

type updateProductParams struct {
	ID          uuid.UUID         `json:"id" validate:"required"`
	ProductData productUpdateData `json:"product_data"`
}

type productIDParams struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

type barcodeParams struct {
	Barcode string `json:"barcode" validate:"required"`
}

type getProductsParams struct {
	Search     string     `json:"search"`
	CategoryID *uuid.UUID `json:"category_id"`
	pagination.Request
}

type createdProductResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	SKU        string     `json:"SKU"`
	Barcode    *string    `json:"barcode"`
	CategoryID *uuid.UUID `json:"category_id"`
}

type ProductResponse struct {
	ID       uuid.UUID               `json:"id"`
	Name     string                  `json:"name"`
	SKU      string                  `json:"SKU"`
	Barcode  *string                 `json:"barcode"`
	Category *models.ProductCategory `json:"category"`
}

func NewProductResponse(product *models.Product) ProductResponse {
	return ProductResponse{
		ID:       product.ID,
		Name:     product.Name,
		SKU:      product.SKU,
		Barcode:  product.Barcode,
		Category: product.Category,
	}
}

type Handler struct {
	categories *CategoryService
	products   *ProductService
}

func NewHandler(categories *CategoryService, products *ProductService) *Handler {
	return &Handler{categories: categories, products: products}
}

func (h *Handler) RegisterWebMethods(web *jsonrpc.Endpoint) {
	web.Register("add_product_category", h.AddProductCategory, jsonrpc.Params("name", "parent_id"))
	web.Register("rename_product_category", h.RenameProductCategory, jsonrpc.Params("id", "new_name"))
	web.Register("move_product_category", h.MoveProductCategory, jsonrpc.Params("id", "parent_id"))
	web.Register("delete_product_category", h.DeleteProductCategory, jsonrpc.Params("id"))
	web.Register("get_product_categories", h.GetProductCategories, jsonrpc.Params("parent_id"))
	web.Register("add_product", h.AddProduct, jsonrpc.Params("product_data"))
	web.Register("update_product", h.UpdateProduct, jsonrpc.Params("id", "product_data"))
	web.Register("get_product", h.GetProduct, jsonrpc.Params("id"))
	web.Register("get_products", h.GetProducts)
}

func (h *Handler) RegisterMobileMethods(mobile *jsonrpc.Endpoint) {
	mobile.Register("get_product_categories", h.GetProductCategories, jsonrpc.Params("parent_id"))
	mobile.Register("get_product_with_barcode", h.GetProductWithBarcode, jsonrpc.Params("barcode"))
	mobile.Register("get_products", h.GetProducts)
}

func (h *Handler) AddProductCategory(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params addCategoryParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	return h.categories.AddCategory(ctx, params.Name, params.ParentID)
}

func (h *Handler) RenameProductCategory(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params renameCategoryParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	return h.categories.RenameCategory(ctx, params.ID, params.NewName)
}

func (h *Handler) MoveProductCategory(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params moveCategoryParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	return h.categories.MoveCategory(ctx, params.ID, params.ParentID)
}

func (h *Handler) DeleteProductCategory(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params categoryIDParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	if err := h.categories.DeleteCategory(ctx, params.ID); err != nil {
		return nil, err
	}
	return true, nil
}

func (h *Handler) GetProductCategories(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params getCategoriesParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	return h.categories.GetCategories(ctx, params.ParentID)
}

func (h *Handler) AddProduct(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params addProductParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	product, err := h.products.AddProduct(ctx, ProductData{
		Name:       params.ProductData.Name,
		SKU:        params.ProductData.SKU,
		Barcode:    params.ProductData.Barcode,
		CategoryID: params.ProductData.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	return createdProductResponse{
		ID:         product.ID,
		Name:       product.Name,
		SKU:        product.SKU,
		Barcode:    product.Barcode,
		CategoryID: product.CategoryID,
	}, nil
}

func (h *Handler) UpdateProduct(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params updateProductParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	product, err := h.products.UpdateProduct(ctx, params.ID, models.ProductChanges{
		Name:       params.ProductData.Name,
		SKU:        params.ProductData.SKU,
		Barcode:    params.ProductData.Barcode,
		CategoryID: params.ProductData.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	return NewProductResponse(product), nil
}

func (h *Handler) GetProduct(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params productIDParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	product, err := h.products.GetProduct(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	return NewProductResponse(product), nil
}

func (h *Handler) GetProductWithBarcode(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params barcodeParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	product, err := h.products.GetProductByBarcode(ctx, params.Barcode)
	if err != nil {
		return nil, err
	}

	return NewProductResponse(product), nil
}

func (h *Handler) GetProducts(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params getProductsParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	page, err := h.products.GetProducts(ctx, ProductFilter{Search: params.Search, CategoryID: params.CategoryID}, params.Request)
	if err != nil {
		return nil, err
	}

	return pagination.Map(page, func(product models.Product) ProductResponse {
		return NewProductResponse(&product)
	}), nil
}
