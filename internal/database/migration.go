package database

import (
	"fmt"
	"path/filepath"

	"github.com/reshxs/pocket-storage-backend/internal/database/migration"

	"go.uber.org/zap"
)

// RunMigrations applies the schema. migrationsDir overrides the migrations
// embedded into the binary.
func RunMigrations(dbURL string, migrationsDir string, logger *zap.Logger) error {
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	migrationsURL := ""
	if migrationsDir != "" {
		absPath, err := filepath.Abs(migrationsDir)
		if err != nil {
			return fmt.Errorf("failed to get absolute path: %w", err)
		}
		migrationsURL = "file://" + absPath
	}

	return migration.Migrate(dbURL, migrationsURL, true, logger)
}
