package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/reshxs/pocket-storage-backend/internal/inventory/catalog"
	"github.com/reshxs/pocket-storage-backend/internal/inventory/storageunits"
	"github.com/reshxs/pocket-storage-backend/internal/staff"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WarehouseCreator interface {
	AddWarehouse(ctx context.Context, name string) (*models.Warehouse, error)
}

type CategoryCreator interface {
	AddCategory(ctx context.Context, name string, parentID *uuid.UUID) (*models.ProductCategory, error)
}

type ProductCreator interface {
	AddProduct(ctx context.Context, data catalog.ProductData) (*models.Product, error)
}

type StaffCreator interface {
	AddPosition(ctx context.Context, name string) (*models.EmployeePosition, error)
	AddEmployee(ctx context.Context, data staff.EmployeeData) (*models.Employee, error)
}

type StorageUnitCreator interface {
	CreateStorageUnit(ctx context.Context, req storageunits.CreateRequest) (*models.StorageUnit, error)
}

type Options struct {
	Warehouses      int
	Categories      int
	Products        int
	UnitsPerProduct int
	Employees       int
}

type Summary struct {
	Warehouses   int
	Categories   int
	Products     int
	StorageUnits int
	Employees    int
}

// Generator fills an empty database with fake but consistent data. Every
// record goes through the regular services so domain rules apply.
type Generator struct {
	warehouses WarehouseCreator
	categories CategoryCreator
	products   ProductCreator
	staff      StaffCreator
	units      StorageUnitCreator
	logger     *zap.Logger
	rand       *rand.Rand
}

func NewGenerator(
	warehouses WarehouseCreator,
	categories CategoryCreator,
	products ProductCreator,
	staff StaffCreator,
	units StorageUnitCreator,
	logger *zap.Logger,
) *Generator {
	return &Generator{
		warehouses: warehouses,
		categories: categories,
		products:   products,
		staff:      staff,
		units:      units,
		logger:     logger,
		rand:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

func (g *Generator) Run(ctx context.Context, opts Options) (*Summary, error) {
	summary := &Summary{}
	suffix := uuid.NewString()[:6]

	warehouseIDs := make([]uuid.UUID, 0, opts.Warehouses)
	for i := 0; i < opts.Warehouses; i++ {
		warehouse, err := g.warehouses.AddWarehouse(ctx, fmt.Sprintf("W%d-%s", i+1, suffix))
		if err != nil {
			return summary, fmt.Errorf("add warehouse: %w", err)
		}
		warehouseIDs = append(warehouseIDs, warehouse.ID)
		summary.Warehouses++
	}

	categoryIDs := make([]uuid.UUID, 0, opts.Categories)
	for i := 0; i < opts.Categories; i++ {
		var parentID *uuid.UUID
		if len(categoryIDs) > 0 && g.rand.IntN(2) == 0 {
			parent := categoryIDs[g.rand.IntN(len(categoryIDs))]
			parentID = &parent
		}

		name := fmt.Sprintf("%s %d", capitalize(faker.Word()), i+1)
		category, err := g.categories.AddCategory(ctx, name, parentID)
		if err != nil {
			return summary, fmt.Errorf("add category: %w", err)
		}
		categoryIDs = append(categoryIDs, category.ID)
		summary.Categories++
	}

	employeeIDs, err := g.employees(ctx, opts.Employees, summary)
	if err != nil {
		return summary, err
	}

	for i := 0; i < opts.Products; i++ {
		data := catalog.ProductData{
			Name: fmt.Sprintf("%s %s", capitalize(faker.Word()), faker.Word()),
			SKU:  fmt.Sprintf("SKU-%s-%04d", strings.ToUpper(suffix), i+1),
		}
		if g.rand.IntN(4) != 0 {
			barcode := fmt.Sprintf("%013d", g.rand.Int64N(1e13))
			data.Barcode = &barcode
		}
		if len(categoryIDs) > 0 {
			categoryID := categoryIDs[g.rand.IntN(len(categoryIDs))]
			data.CategoryID = &categoryID
		}

		product, err := g.products.AddProduct(ctx, data)
		if err != nil {
			return summary, fmt.Errorf("add product: %w", err)
		}
		summary.Products++

		for j := 0; j < opts.UnitsPerProduct && len(warehouseIDs) > 0; j++ {
			warehouseID := warehouseIDs[g.rand.IntN(len(warehouseIDs))]
			extID := fmt.Sprintf("%c%d-%d", 'A'+rune(g.rand.IntN(26)), i+1, j+1)
			req := storageunits.CreateRequest{
				Product:     storageunits.ProductRef{ID: &product.ID},
				WarehouseID: &warehouseID,
				ExtID:       &extID,
			}
			if len(employeeIDs) > 0 {
				employeeID := employeeIDs[g.rand.IntN(len(employeeIDs))]
				req.EmployeeID = &employeeID
			}

			if _, err := g.units.CreateStorageUnit(ctx, req); err != nil {
				return summary, fmt.Errorf("create storage unit: %w", err)
			}
			summary.StorageUnits++
		}
	}

	g.logger.Info("Test data generated",
		zap.Int("warehouses", summary.Warehouses),
		zap.Int("categories", summary.Categories),
		zap.Int("products", summary.Products),
		zap.Int("storage_units", summary.StorageUnits),
		zap.Int("employees", summary.Employees),
	)

	return summary, nil
}

func (g *Generator) employees(ctx context.Context, count int, summary *Summary) ([]uuid.UUID, error) {
	if count == 0 {
		return nil, nil
	}

	position, err := g.staff.AddPosition(ctx, fmt.Sprintf("Storekeeper %s", uuid.NewString()[:6]))
	if err != nil {
		return nil, fmt.Errorf("add position: %w", err)
	}

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		employee, err := g.staff.AddEmployee(ctx, staff.EmployeeData{
			FirstName:  faker.FirstName(),
			LastName:   faker.LastName(),
			PositionID: position.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("add employee: %w", err)
		}
		ids = append(ids, employee.ID)
		summary.Employees++
	}

	return ids, nil
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
