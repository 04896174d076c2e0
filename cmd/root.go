package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/reshxs/pocket-storage-backend/internal/core/config"
	"github.com/reshxs/pocket-storage-backend/internal/core/container"
	"github.com/reshxs/pocket-storage-backend/internal/core/logger"
	"github.com/reshxs/pocket-storage-backend/internal/core/routes"
	"github.com/reshxs/pocket-storage-backend/internal/database"
	"github.com/reshxs/pocket-storage-backend/internal/middleware"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "1.0.0"

type app struct {
	cfg       *config.Config
	db        *sql.DB
	logger    *zap.Logger
	container *container.Container
	close     func()
}

func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.NewLogger(cfg.IsProduction())

	db, err := database.NewPostgresConnection(cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}

	c, err := container.NewAppContainer(db, cfg, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &app{
		cfg:       cfg,
		db:        db,
		logger:    log,
		container: c,
		close: func() {
			c.Close()
			db.Close()
			_ = log.Sync()
		},
	}, nil
}

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the JSON-RPC server.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		migrate, _ := cmd.Flags().GetBool("migrate")
		return serve(cmd.Context(), migrate)
	},
}

func serve(ctx context.Context, migrate bool) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	if migrate {
		if err := database.RunMigrations(a.cfg.DatabaseURL, "", a.logger); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	router := routes.NewRouter(a.cfg, a.logger)
	routes.RegisterRPCRoutes(router, a.container)
	health := middleware.NewHealthChecker(a.db, version, a.logger)
	routes.RegisterUtilityRoutes(router, health, a.logger)

	server := &http.Server{
		Addr:              a.cfg.AppHost,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go purgeSessions(ctx, a)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting server", zap.String("addr", a.cfg.AppHost), zap.String("env", a.cfg.AppEnv))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func purgeSessions(ctx context.Context, a *app) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := a.container.AuthService.PurgeExpiredSessions(ctx)
			if err != nil {
				a.logger.Warn("Failed to purge expired sessions", zap.Error(err))
				continue
			}
			a.logger.Debug("Expired sessions purged", zap.Int64("count", purged))
		}
	}
}

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run migrations manually.",
	Long:  `Applies pending migrations. Without --dir the migrations compiled into the binary are used.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		migrationDir, _ := cmd.Flags().GetString("dir")

		if err := database.RunMigrations(cfg.DatabaseURL, migrationDir, logger.NewLogger(cfg.IsProduction())); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		return nil
	},
}

func Execute(ctx context.Context) {
	rootCmd := &cobra.Command{
		Use:   "pocket-storage",
		Short: "Pocket storage warehouse service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), false)
		},
		SilenceUsage: true,
	}

	ServeCmd.Flags().Bool("migrate", false, "Apply pending migrations before starting")
	MigrateCmd.Flags().String("dir", "", "Directory containing the migration files")
	CreateUserCmd.Flags().String("username", "", "Login of the new account")
	CreateUserCmd.Flags().String("password", "", "Password of the new account")
	CreateUserCmd.Flags().String("first-name", "", "First name")
	CreateUserCmd.Flags().String("last-name", "", "Last name")
	_ = CreateUserCmd.MarkFlagRequired("username")
	_ = CreateUserCmd.MarkFlagRequired("password")
	GenerateTestDataCmd.Flags().Int("warehouses", 2, "Number of warehouses")
	GenerateTestDataCmd.Flags().Int("categories", 8, "Number of product categories")
	GenerateTestDataCmd.Flags().Int("products", 30, "Number of products")
	GenerateTestDataCmd.Flags().Int("units-per-product", 3, "Storage units created for every product")
	GenerateTestDataCmd.Flags().Int("employees", 5, "Number of employees")
	QRCodeCmd.Flags().String("out", "", "PNG file to write, defaults to <storage-unit-id>.png")
	QRCodeCmd.Flags().Int("size", 0, "Image size in pixels")

	rootCmd.AddCommand(ServeCmd, MigrateCmd, CreateUserCmd, GenerateTestDataCmd, QRCodeCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
