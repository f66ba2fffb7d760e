package domain

import "fmt"

// GuestDowelLimit is the largest dowel quantity a guest may check out with.
// Anything above it requires a signed-in account.
const GuestDowelLimit = 5_000

// GuestValidation classifies a cart snapshot against the guest checkout
// rules. Computed fresh per snapshot, never stored.
type GuestValidation struct {
	Allowed            bool     `json:"isAllowed"`
	RequiresAuth       bool     `json:"requiresAuth"`
	TotalDowelQuantity int64    `json:"totalDowelQuantity"`
	HasKits            bool     `json:"hasKits"`
	RestrictedItems    []string `json:"restrictedItems"`
	Reason             string   `json:"reason,omitempty"`
}

// ValidateGuestCheckout decides whether a cart may check out without an
// account. Kits impose no restriction at any quantity; dowel lines are summed
// and compared against GuestDowelLimit (the limit itself is allowed).
func ValidateGuestCheckout(items []CartItem) GuestValidation {
	v := GuestValidation{
		TotalDowelQuantity: DowelQuantity(items),
		RestrictedItems:    []string{},
	}

	for _, item := range items {
		if item.IsKit() {
			v.HasKits = true
			break
		}
	}

	if v.TotalDowelQuantity <= GuestDowelLimit {
		v.Allowed = true
		return v
	}

	v.RequiresAuth = true
	v.Reason = fmt.Sprintf(
		"cart contains %d dowels, which exceeds the %d guest checkout limit; please sign in to order larger quantities",
		v.TotalDowelQuantity, int64(GuestDowelLimit),
	)
	for _, item := range items {
		if !item.IsKit() {
			v.RestrictedItems = append(v.RestrictedItems,
				fmt.Sprintf("%s (quantity %d)", item.Name, item.Quantity))
		}
	}

	return v
}
