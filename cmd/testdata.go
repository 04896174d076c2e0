package cmd

import (
	"fmt"

	"github.com/reshxs/pocket-storage-backend/internal/seed"

	"github.com/spf13/cobra"
)

var GenerateTestDataCmd = &cobra.Command{
	Use:   "generate-test-data",
	Short: "Fill the database with fake warehouses, products, staff and storage units.",
	Long:  `Command that exists and should be used only for development purposes.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		var opts seed.Options
		opts.Warehouses, _ = cmd.Flags().GetInt("warehouses")
		opts.Categories, _ = cmd.Flags().GetInt("categories")
		opts.Products, _ = cmd.Flags().GetInt("products")
		opts.UnitsPerProduct, _ = cmd.Flags().GetInt("units-per-product")
		opts.Employees, _ = cmd.Flags().GetInt("employees")

		c := a.container
		generator := seed.NewGenerator(
			c.WarehouseService,
			c.CategoryService,
			c.ProductService,
			c.StaffService,
			c.StorageUnitService,
			a.logger,
		)

		summary, err := generator.Run(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("generate test data: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "warehouses: %d, categories: %d, products: %d, storage units: %d, employees: %d\n",
			summary.Warehouses, summary.Categories, summary.Products, summary.StorageUnits, summary.Employees)
		return nil
	},
}
