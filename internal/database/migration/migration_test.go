package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	files, err := fs.Glob(embedded, "sql/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, name := range files {
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file %s", name)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestInitialSchemaDeclaresNamedConstraints(t *testing.T) {
	schema, err := fs.ReadFile(embedded, "sql/000001_init.up.sql")
	require.NoError(t, err)

	for _, constraint := range []string{
		"product_category__unique_name_in_parent_scope",
		"product_category__unique_name_in_root_scope",
		"product__unique_sku",
		"product__unique_barcode",
		"storage_unit__unique_ext_id_in_warehouse",
		"warehouse__unique_name",
		"employee_position__unique_name",
	} {
		assert.Contains(t, string(schema), constraint)
	}
}

func TestLogger(t *testing.T) {
	logger := NewLogger(zap.NewNop(), true)

	assert.True(t, logger.Verbose())
	assert.NotPanics(t, func() { logger.Printf("applied %d", 1) })
}
