package catalog

import (
	"testing"

	"github.com/aaushop/storefront/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct() Product {
	return Product{
		ID:       "p1",
		Name:     "Test Product",
		Price:    decimal.NewFromInt(100),
		Currency: valueobject.ETB,
		Category: CategoryElectronics,
		Tags:     []string{"test", "gadget"},
	}
}

func TestProductValidate(t *testing.T) {
	t.Run("accepts valid product", func(t *testing.T) {
		p := validProduct()
		require.NoError(t, p.Validate())
	})

	t.Run("rejects empty id", func(t *testing.T) {
		p := validProduct()
		p.ID = ""
		assert.Error(t, p.Validate())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		p := validProduct()
		p.Name = ""
		assert.Error(t, p.Validate())
	})

	t.Run("rejects negative price", func(t *testing.T) {
		p := validProduct()
		p.Price = decimal.NewFromInt(-1)
		assert.Error(t, p.Validate())
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		p := validProduct()
		p.Category = Category("Vehicles")
		assert.Error(t, p.Validate())
	})
}

func TestMatchesQuery(t *testing.T) {
	p := validProduct()

	t.Run("empty query matches", func(t *testing.T) {
		assert.True(t, p.MatchesQuery(""))
		assert.True(t, p.MatchesQuery("   "))
	})

	t.Run("matches name substring case-insensitively", func(t *testing.T) {
		assert.True(t, p.MatchesQuery("test prod"))
		assert.True(t, p.MatchesQuery("TEST"))
	})

	t.Run("matches tag substring", func(t *testing.T) {
		assert.True(t, p.MatchesQuery("gadg"))
	})

	t.Run("no match for unrelated query", func(t *testing.T) {
		assert.False(t, p.MatchesQuery("banana"))
	})
}

func TestFilter(t *testing.T) {
	products := SeedProducts()

	t.Run("empty category and query keeps everything", func(t *testing.T) {
		assert.Len(t, Filter(products, "", ""), len(products))
	})

	t.Run("All category keeps everything", func(t *testing.T) {
		assert.Len(t, Filter(products, "All", ""), len(products))
	})

	t.Run("narrows by category", func(t *testing.T) {
		filtered := Filter(products, string(CategoryElectronics), "")
		require.NotEmpty(t, filtered)
		for _, p := range filtered {
			assert.Equal(t, CategoryElectronics, p.Category)
		}
	})

	t.Run("narrows by query", func(t *testing.T) {
		filtered := Filter(products, "", "infinix")
		require.Len(t, filtered, 3)
	})

	t.Run("combines category and query", func(t *testing.T) {
		filtered := Filter(products, string(CategoryElectronics), "zero")
		require.Len(t, filtered, 1)
		assert.Equal(t, "inf-2", filtered[0].ID)
	})

	t.Run("preserves input order", func(t *testing.T) {
		filtered := Filter(products, string(CategoryElectronics), "")
		require.Len(t, filtered, 3)
		assert.Equal(t, "inf-1", filtered[0].ID)
		assert.Equal(t, "inf-2", filtered[1].ID)
		assert.Equal(t, "inf-3", filtered[2].ID)
	})
}

func TestSeedProducts(t *testing.T) {
	products := SeedProducts()
	require.NotEmpty(t, products)

	seen := make(map[string]bool)
	for _, p := range products {
		require.NoError(t, p.Validate(), "seed product %s must be valid", p.ID)
		assert.False(t, seen[p.ID], "duplicate seed product id %s", p.ID)
		seen[p.ID] = true
	}
}
