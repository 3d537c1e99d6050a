package cart

import (
	"testing"

	"github.com/aaushop/storefront/internal/domain/catalog"
	"github.com/aaushop/storefront/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id string, price int64, currency valueobject.Currency) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    decimal.NewFromInt(price),
		Currency: currency,
		Category: catalog.CategoryElectronics,
	}
}

func TestAdd(t *testing.T) {
	phone := testProduct("p1", 100, valueobject.ETB)
	lamp := testProduct("p2", 50, valueobject.USD)

	t.Run("appends new item with quantity 1", func(t *testing.T) {
		c := Add(Cart{}, phone)
		require.Len(t, c, 1)
		assert.Equal(t, "p1", c[0].ID)
		assert.Equal(t, 1, c[0].Quantity)
	})

	t.Run("increments quantity for existing product", func(t *testing.T) {
		c := Add(Add(Cart{}, phone), phone)
		require.Len(t, c, 1)
		assert.Equal(t, 2, c[0].Quantity)
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		c := Add(Add(Cart{}, phone), lamp)
		c = Add(c, phone)
		require.Len(t, c, 2)
		assert.Equal(t, "p1", c[0].ID)
		assert.Equal(t, "p2", c[1].ID)
		assert.Equal(t, 2, c[0].Quantity)
	})

	t.Run("does not mutate the input cart", func(t *testing.T) {
		original := Add(Cart{}, phone)
		_ = Add(original, phone)
		assert.Equal(t, 1, original[0].Quantity)
	})

	t.Run("re-adding after remove starts back at quantity 1", func(t *testing.T) {
		c := Add(Cart{}, phone)
		c = AdjustQuantity(c, "p1", 2) // quantity 3
		c = Add(Remove(c, "p1"), phone)
		require.Len(t, c, 1)
		assert.Equal(t, 1, c[0].Quantity)
	})
}

func TestRemove(t *testing.T) {
	phone := testProduct("p1", 100, valueobject.ETB)
	lamp := testProduct("p2", 50, valueobject.USD)

	t.Run("excises the matching item", func(t *testing.T) {
		c := Add(Add(Cart{}, phone), lamp)
		c = Remove(c, "p1")
		require.Len(t, c, 1)
		assert.Equal(t, "p2", c[0].ID)
	})

	t.Run("is a no-op for absent product", func(t *testing.T) {
		c := Add(Cart{}, phone)
		next := Remove(c, "missing")
		assert.True(t, Equal(c, next))
	})

	t.Run("does not mutate the input cart", func(t *testing.T) {
		original := Add(Add(Cart{}, phone), lamp)
		_ = Remove(original, "p1")
		assert.Len(t, original, 2)
	})
}

func TestAdjustQuantity(t *testing.T) {
	phone := testProduct("p1", 100, valueobject.ETB)

	t.Run("increments by delta", func(t *testing.T) {
		c := Add(Cart{}, phone)
		c = AdjustQuantity(c, "p1", 3)
		assert.Equal(t, 4, c[0].Quantity)
	})

	t.Run("floors at quantity 1", func(t *testing.T) {
		c := Add(Cart{}, phone)
		c = AdjustQuantity(c, "p1", -5)
		require.Len(t, c, 1)
		assert.Equal(t, 1, c[0].Quantity)
	})

	t.Run("never removes the item", func(t *testing.T) {
		c := Add(Cart{}, phone)
		for i := 0; i < 10; i++ {
			c = AdjustQuantity(c, "p1", -1)
		}
		require.Len(t, c, 1)
		assert.Equal(t, 1, c[0].Quantity)
	})

	t.Run("is a no-op for absent product", func(t *testing.T) {
		c := Add(Cart{}, phone)
		next := AdjustQuantity(c, "missing", 2)
		assert.True(t, Equal(c, next))
	})
}

func TestItemCount(t *testing.T) {
	phone := testProduct("p1", 100, valueobject.ETB)
	lamp := testProduct("p2", 50, valueobject.USD)

	assert.Equal(t, 0, ItemCount(Cart{}))

	c := Add(Add(Add(Cart{}, phone), phone), lamp)
	assert.Equal(t, 3, ItemCount(c))
}

func TestCurrencyTotals(t *testing.T) {
	phone := testProduct("p1", 100, valueobject.ETB)
	tablet := testProduct("p2", 200, valueobject.ETB)
	lamp := testProduct("p3", 50, valueobject.USD)

	t.Run("sums per currency", func(t *testing.T) {
		c := Add(Add(Cart{}, phone), tablet)
		c = Add(c, phone) // 2x p1
		c = Add(c, lamp)

		totals := CurrencyTotals(c)
		require.Len(t, totals, 2)
		assert.True(t, totals[valueobject.ETB].Amount().Equal(decimal.NewFromInt(400)))
		assert.True(t, totals[valueobject.USD].Amount().Equal(decimal.NewFromInt(50)))
		assert.Equal(t, valueobject.ETB, totals[valueobject.ETB].Currency())
	})

	t.Run("omits absent currencies", func(t *testing.T) {
		c := Add(Cart{}, phone)
		totals := CurrencyTotals(c)
		_, hasUSD := totals[valueobject.USD]
		assert.False(t, hasUSD)
	})

	t.Run("empty cart yields empty totals", func(t *testing.T) {
		assert.Empty(t, CurrencyTotals(Cart{}))
	})
}

func TestCurrencies(t *testing.T) {
	phone := testProduct("p1", 100, valueobject.ETB)
	lamp := testProduct("p2", 50, valueobject.USD)
	tablet := testProduct("p3", 200, valueobject.ETB)

	c := Add(Add(Add(Cart{}, phone), lamp), tablet)
	assert.Equal(t, []valueobject.Currency{valueobject.ETB, valueobject.USD}, Currencies(c))
}

func TestFind(t *testing.T) {
	phone := testProduct("p1", 100, valueobject.ETB)
	c := Add(Cart{}, phone)

	item, found := Find(c, "p1")
	require.True(t, found)
	assert.Equal(t, "p1", item.ID)

	_, found = Find(c, "missing")
	assert.False(t, found)
}

func TestEqual(t *testing.T) {
	phone := testProduct("p1", 100, valueobject.ETB)
	lamp := testProduct("p2", 50, valueobject.USD)

	a := Add(Add(Cart{}, phone), lamp)
	b := Add(Add(Cart{}, phone), lamp)
	assert.True(t, Equal(a, b))

	assert.False(t, Equal(a, Add(a, phone)))
	assert.False(t, Equal(a, Remove(a, "p2")))

	// same items, different order
	c := Add(Add(Cart{}, lamp), phone)
	assert.False(t, Equal(a, c))
}
