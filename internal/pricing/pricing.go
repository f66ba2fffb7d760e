// Package pricing holds the tiered price schedule for bulk dowels. The table
// is immutable process-wide configuration; unit prices are integer
// micro-dollars so four-decimal rates stay exact.
package pricing

import "fmt"

const MicrosPerDollar = 1_000_000

type Tier struct {
	Range           string
	Min             int64
	Max             int64
	UnitPriceMicros int64
}

// UnitPrice returns the per-unit price in dollars, for display.
func (t Tier) UnitPrice() float64 {
	return float64(t.UnitPriceMicros) / MicrosPerDollar
}

// Result is the outcome of a tier lookup. Clamped is set when the quantity
// exceeded the top tier's max and was priced at the top tier's rate.
type Result struct {
	Tier    Tier
	Found   bool
	Clamped bool
}

type Table struct {
	tiers []Tier
}

// DefaultTable is the published Force Dowels bulk schedule.
func DefaultTable() *Table {
	t, err := NewTable([]Tier{
		{Range: "5,000-20,000", Min: 5_000, Max: 20_000, UnitPriceMicros: 72_000},
		{Range: "20,001-160,000", Min: 20_001, Max: 160_000, UnitPriceMicros: 67_500},
		{Range: "160,001-960,000", Min: 160_001, Max: 960_000, UnitPriceMicros: 63_000},
	})
	if err != nil {
		panic(err)
	}
	return t
}

// NewTable validates that tiers are ascending, contiguous, and positively
// priced before freezing them into a Table.
func NewTable(tiers []Tier) (*Table, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("pricing: empty tier table")
	}

	for i, tier := range tiers {
		if tier.Min <= 0 || tier.Max < tier.Min {
			return nil, fmt.Errorf("pricing: tier %q has invalid bounds [%d, %d]", tier.Range, tier.Min, tier.Max)
		}
		if tier.UnitPriceMicros <= 0 {
			return nil, fmt.Errorf("pricing: tier %q has non-positive price", tier.Range)
		}
		if i > 0 && tier.Min != tiers[i-1].Max+1 {
			return nil, fmt.Errorf("pricing: tier %q is not contiguous with %q", tier.Range, tiers[i-1].Range)
		}
	}

	frozen := make([]Tier, len(tiers))
	copy(frozen, tiers)
	return &Table{tiers: frozen}, nil
}

// Tiers returns a copy of the schedule.
func (t *Table) Tiers() []Tier {
	out := make([]Tier, len(t.tiers))
	copy(out, t.tiers)
	return out
}

// Min returns the lowest orderable quantity.
func (t *Table) Min() int64 {
	return t.tiers[0].Min
}

// Lookup finds the tier for quantity. Below the lowest min there is no tier.
// Above the top tier's max the top tier applies, flagged as clamped.
func (t *Table) Lookup(quantity int64) Result {
	if quantity < t.tiers[0].Min {
		return Result{}
	}

	for _, tier := range t.tiers {
		if quantity >= tier.Min && quantity <= tier.Max {
			return Result{Tier: tier, Found: true}
		}
	}

	top := t.tiers[len(t.tiers)-1]
	return Result{Tier: top, Found: true, Clamped: true}
}

// CentsTotal prices quantity units at the given micro-dollar rate, rounding
// half-up to whole cents. This is the only micros-to-cents conversion site.
func CentsTotal(quantity, unitPriceMicros int64) int64 {
	micros := quantity * unitPriceMicros
	return (micros + 5_000) / 10_000
}
