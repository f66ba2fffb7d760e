package domain

import "strings"

// CartItem is a snapshot line sent by the client at checkout time. Carts are
// never persisted server-side.
type CartItem struct {
	ID              string
	Name            string
	Quantity        int64
	Tier            string
	UnitPriceMicros int64
}

// IsKit reports whether the item is a fixed-quantity starter kit SKU.
// Kits are identified by name; everything else is bulk dowels.
func (i CartItem) IsKit() bool {
	return strings.Contains(strings.ToLower(i.Name), "kit")
}

// DowelQuantity sums quantities across all bulk-dowel lines. Kit lines are
// quantity-exempt and do not count.
func DowelQuantity(items []CartItem) int64 {
	var total int64
	for _, item := range items {
		if !item.IsKit() {
			total += item.Quantity
		}
	}
	return total
}
