package cart

import (
	"github.com/aaushop/storefront/internal/domain/catalog"
	"github.com/aaushop/storefront/internal/domain/shared/valueobject"
)

// Item is a catalog product plus the quantity held in a cart.
// Product fields are flattened in JSON so the persisted and wire shapes
// stay compatible with the backend's cart documents.
type Item struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Cart is an ordered sequence of items. Order is insertion order: the first
// add wins the position and quantity bumps never reorder. At most one item
// exists per product id, and no item ever has quantity below 1.
//
// All operations in this package are pure - they return a new Cart and never
// mutate their input. They are total for well-formed input; keeping prices
// non-negative and quantities integral is the caller's concern.
type Cart []Item

// Add returns a cart with the product added. If an item with the same
// product id already exists its quantity is incremented by one; otherwise a
// new item is appended with quantity 1.
func Add(c Cart, product catalog.Product) Cart {
	next := make(Cart, len(c), len(c)+1)
	copy(next, c)
	for i := range next {
		if next[i].ID == product.ID {
			next[i].Quantity++
			return next
		}
	}
	return append(next, Item{Product: product, Quantity: 1})
}

// Remove returns a cart with the matching item excised. Removing an absent
// product id returns the cart unchanged.
func Remove(c Cart, productID string) Cart {
	next := make(Cart, 0, len(c))
	for _, item := range c {
		if item.ID != productID {
			next = append(next, item)
		}
	}
	return next
}

// AdjustQuantity returns a cart with the matching item's quantity changed by
// delta, floored at 1. Decrementing below 1 keeps the item at quantity 1;
// removal is only ever explicit via Remove. An absent product id is a no-op.
func AdjustQuantity(c Cart, productID string, delta int) Cart {
	next := make(Cart, len(c))
	copy(next, c)
	for i := range next {
		if next[i].ID == productID {
			next[i].Quantity = max(1, next[i].Quantity+delta)
			break
		}
	}
	return next
}

// ItemCount returns the sum of quantities across all items
func ItemCount(c Cart) int {
	count := 0
	for _, item := range c {
		count += item.Quantity
	}
	return count
}

// CurrencyTotals returns the cart value as Money summed per currency,
// iterating items in insertion order so repeated calls over the same cart
// build the result identically. Currencies with no items are absent from
// the map - never present with a zero total.
func CurrencyTotals(c Cart) map[valueobject.Currency]valueobject.Money {
	totals := make(map[valueobject.Currency]valueobject.Money)
	for _, item := range c {
		line := item.PriceMoney().MultiplyByInt(int64(item.Quantity))
		if existing, ok := totals[item.Currency]; ok {
			totals[item.Currency] = existing.MustAdd(line)
		} else {
			totals[item.Currency] = line
		}
	}
	return totals
}

// Currencies returns the distinct currencies present in the cart in
// first-seen order. Combined with CurrencyTotals this gives a deterministic
// ordering for display.
func Currencies(c Cart) []valueobject.Currency {
	seen := make(map[valueobject.Currency]bool, 2)
	order := make([]valueobject.Currency, 0, 2)
	for _, item := range c {
		if !seen[item.Currency] {
			seen[item.Currency] = true
			order = append(order, item.Currency)
		}
	}
	return order
}

// Find returns the item for a product id and whether it exists
func Find(c Cart, productID string) (Item, bool) {
	for _, item := range c {
		if item.ID == productID {
			return item, true
		}
	}
	return Item{}, false
}

// Equal reports whether two carts hold the same products at the same
// quantities in the same order.
func Equal(a, b Cart) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Quantity != b[i].Quantity {
			return false
		}
	}
	return true
}
