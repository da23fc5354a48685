package usecase

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
plans:
  - slug: basic
    name: Básico
    price_id: price_basic
    interval: month
    employees_max: 5
  - slug: pro
    price_id: price_pro
`), 0o600))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog.Plans(), 2)

	basic := catalog.PlanByPrice("price_basic")
	require.NotNil(t, basic)
	assert.Equal(t, "Básico", basic.Name)
	assert.Equal(t, 5, basic.EmployeesMax)
	assert.Equal(t, "pro", catalog.PlanBySlug("pro").Name)

	assert.True(t, catalog.AllowsPrice("price_pro"))
	assert.False(t, catalog.AllowsPrice("price_other"))
}

func TestLoadCatalog_Missing(t *testing.T) {
	catalog, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, catalog.Plans())
	assert.True(t, catalog.AllowsPrice("price_anything"))
}

func TestNewCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		plans   []entity.Plan
		wantErr string
	}{
		{"missing slug", []entity.Plan{{PriceID: "price_a"}}, "slug is required"},
		{"missing price", []entity.Plan{{Slug: "a"}}, "price_id is required"},
		{"duplicate price", []entity.Plan{{Slug: "a", PriceID: "price_a"}, {Slug: "b", PriceID: "price_a"}}, `plans[1]: duplicate price_id "price_a"`},
		{"duplicate price after trim", []entity.Plan{{Slug: "a", PriceID: "price_a"}, {Slug: "b", PriceID: " price_a "}}, "duplicate price_id"},
		{"duplicate slug", []entity.Plan{{Slug: "a", PriceID: "price_a"}, {Slug: "a", PriceID: "price_b"}}, `plans[1]: duplicate slug "a"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := NewCatalog(tt.plans)
			assert.ErrorContains(t, err, tt.wantErr)
			assert.Nil(t, catalog)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "119.00", FormatAmount(11900, "brl"))
	assert.Equal(t, "0.50", FormatAmount(50, "BRL"))
	assert.Equal(t, "1500", FormatAmount(1500, "jpy"))
}
