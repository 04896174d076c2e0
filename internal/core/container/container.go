package container

import (
	"database/sql"
	"fmt"

	"github.com/reshxs/pocket-storage-backend/internal/core/config"
	"github.com/reshxs/pocket-storage-backend/internal/inventory/catalog"
	"github.com/reshxs/pocket-storage-backend/internal/inventory/storageunits"
	"github.com/reshxs/pocket-storage-backend/internal/inventory/warehouses"
	"github.com/reshxs/pocket-storage-backend/internal/jsonrpc"
	"github.com/reshxs/pocket-storage-backend/internal/rate_limiter"
	"github.com/reshxs/pocket-storage-backend/internal/repository"
	"github.com/reshxs/pocket-storage-backend/internal/security"
	"github.com/reshxs/pocket-storage-backend/internal/staff"
	"github.com/reshxs/pocket-storage-backend/internal/users"
	"github.com/reshxs/pocket-storage-backend/pkg/qrcode"

	"go.uber.org/zap"
)

type Container struct {
	Repository *repository.Repository
	Limiter    *rate_limiter.RateLimiter
	QRCodec    *qrcode.Codec

	UserService        *users.Service
	AuthService        *security.AuthService
	WarehouseService   *warehouses.Service
	CategoryService    *catalog.CategoryService
	ProductService     *catalog.ProductService
	StorageUnitService *storageunits.Service
	StaffService       *staff.Service

	WebEndpoint    *jsonrpc.Endpoint
	MobileEndpoint *jsonrpc.Endpoint
}

func NewAppContainer(db *sql.DB, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	repo := repository.NewRepository(db)

	codec, err := qrcode.NewCodec(cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("init qrcode codec: %w", err)
	}

	limiter := rate_limiter.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)

	userRepo := users.NewRepository(repo)
	userService := users.NewService(userRepo)
	authService := security.NewAuthService(userRepo, security.NewSessionRepository(repo), limiter, cfg.SessionTTL, logger)

	warehouseService := warehouses.NewService(warehouses.NewRepository(repo), repo, cfg.DefaultWarehouseID)

	productRepo := catalog.NewProductRepository(repo)
	categoryService := catalog.NewCategoryService(catalog.NewCategoryRepository(repo), repo)
	productService := catalog.NewProductService(productRepo, repo)

	unitRepo := storageunits.NewRepository(repo)
	unitService := storageunits.NewService(
		unitRepo,
		storageunits.NewOperationRepository(repo),
		productRepo,
		warehouseService,
		codec,
		repo,
	)
	resolver := storageunits.NewResolver(unitRepo, productRepo, codec)

	staffService := staff.NewService(staff.NewPositionRepository(repo), staff.NewEmployeeRepository(repo), repo)

	web := jsonrpc.NewEndpoint("web", authService, logger)
	mobile := jsonrpc.NewEndpoint("mobile", nil, logger)

	security.NewHandler(authService).RegisterMethods(web)
	warehouses.NewHandler(warehouseService).RegisterMethods(web)
	staff.NewHandler(staffService).RegisterMethods(web)

	catalogHandler := catalog.NewHandler(categoryService, productService)
	catalogHandler.RegisterWebMethods(web)
	catalogHandler.RegisterMobileMethods(mobile)

	unitHandler := storageunits.NewHandler(unitService, resolver)
	unitHandler.RegisterWebMethods(web)
	unitHandler.RegisterMobileMethods(mobile)

	return &Container{
		Repository:         repo,
		Limiter:            limiter,
		QRCodec:            codec,
		UserService:        userService,
		AuthService:        authService,
		WarehouseService:   warehouseService,
		CategoryService:    categoryService,
		ProductService:     productService,
		StorageUnitService: unitService,
		StaffService:       staffService,
		WebEndpoint:        web,
		MobileEndpoint:     mobile,
	}, nil
}

func (c *Container) Close() {
	c.Limiter.Close()
}
