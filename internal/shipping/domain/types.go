package domain

import cart "github.com/forcedowels/storefront/internal/cart/domain"

const (
	CarrierParcel  = "usps"
	CarrierFreight = "freight"
)

type Destination struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country,omitempty"`
}

type RateRequest struct {
	Destination Destination
	Items       []cart.CartItem
}

type RateOption struct {
	Carrier       string `json:"carrier"`
	Service       string `json:"service"`
	AmountCents   int64  `json:"amountCents"`
	EstimatedDays int    `json:"estimatedDays,omitempty"`
}

// Quote is what the rate endpoint returns: the carrier class the weight
// selected plus that carrier's options.
type Quote struct {
	Carrier      string       `json:"carrier"`
	WeightPounds int64        `json:"weightPounds"`
	Options      []RateOption `json:"options"`
}

// Packaged shipping weights. Dowels ship loose at roughly a hundred per
// pound; kits are boxed individually.
const (
	dowelsPerPound = 100
	kitPounds      = 2
)

// EstimateWeightPounds converts a cart snapshot into billable pounds,
// rounding dowel weight up to the next pound.
func EstimateWeightPounds(items []cart.CartItem) int64 {
	var dowels, kits int64
	for _, item := range items {
		if item.IsKit() {
			kits += item.Quantity
		} else {
			dowels += item.Quantity
		}
	}

	pounds := kits * kitPounds
	if dowels > 0 {
		pounds += (dowels + dowelsPerPound - 1) / dowelsPerPound
	}
	return pounds
}

// SelectCarrier picks parcel service below the freight threshold and freight
// at or above it.
func SelectCarrier(weightPounds, freightMinPounds int64) string {
	if weightPounds >= freightMinPounds {
		return CarrierFreight
	}
	return CarrierParcel
}
