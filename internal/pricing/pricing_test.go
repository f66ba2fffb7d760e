package pricing

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLookupBelowMinimum(t *testing.T) {
	table := DefaultTable()

	for _, q := range []int64{1, 100, 4999} {
		res := table.Lookup(q)
		if res.Found {
			t.Fatalf("quantity %d: expected no tier, got %q", q, res.Tier.Range)
		}
	}
}

func TestLookupFirstTierBounds(t *testing.T) {
	table := DefaultTable()

	for _, q := range []int64{5000, 12345, 20000} {
		res := table.Lookup(q)
		if !res.Found || res.Clamped {
			t.Fatalf("quantity %d: expected first tier match, got %+v", q, res)
		}
		if res.Tier.Range != "5,000-20,000" {
			t.Fatalf("quantity %d: wrong tier %q", q, res.Tier.Range)
		}
		if res.Tier.UnitPriceMicros != 72_000 {
			t.Fatalf("quantity %d: wrong price %d", q, res.Tier.UnitPriceMicros)
		}
	}
}

func TestLookupMiddleTier(t *testing.T) {
	table := DefaultTable()

	res := table.Lookup(20001)
	if !res.Found || res.Tier.Range != "20,001-160,000" {
		t.Fatalf("expected middle tier at 20001, got %+v", res)
	}
	if res.Tier.UnitPriceMicros != 67_500 {
		t.Fatalf("wrong middle tier price %d", res.Tier.UnitPriceMicros)
	}
}

func TestLookupClampsAboveTopTier(t *testing.T) {
	table := DefaultTable()

	res := table.Lookup(960_001)
	if !res.Found {
		t.Fatal("expected clamp to top tier, got no tier")
	}
	if !res.Clamped {
		t.Fatal("expected Clamped flag")
	}
	if res.Tier.UnitPriceMicros != 63_000 {
		t.Fatalf("expected top tier price, got %d", res.Tier.UnitPriceMicros)
	}

	far := table.Lookup(5_000_000)
	if !far.Found || !far.Clamped || far.Tier.Range != res.Tier.Range {
		t.Fatalf("expected same clamp far above max, got %+v", far)
	}
}

func TestNewTableRejectsGaps(t *testing.T) {
	_, err := NewTable([]Tier{
		{Range: "a", Min: 100, Max: 200, UnitPriceMicros: 10},
		{Range: "b", Min: 300, Max: 400, UnitPriceMicros: 10},
	})
	if err == nil {
		t.Fatal("expected error for non-contiguous tiers")
	}
}

func TestNewTableRejectsBadBounds(t *testing.T) {
	_, err := NewTable([]Tier{{Range: "a", Min: 200, Max: 100, UnitPriceMicros: 10}})
	if err == nil {
		t.Fatal("expected error for max < min")
	}
}

func TestCentsTotal(t *testing.T) {
	// 5,000 dowels at $0.0720 = $360.00
	if got := CentsTotal(5000, 72_000); got != 36_000 {
		t.Fatalf("expected 36000 cents, got %d", got)
	}
	// 20,001 at $0.0675 = $1350.0675, rounds to $1350.07
	if got := CentsTotal(20_001, 67_500); got != 135_007 {
		t.Fatalf("expected 135007 cents, got %d", got)
	}
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiers.yaml")
	data := `tiers:
  - range: "1,000-2,000"
    min: 1000
    max: 2000
    unit_price: 0.08
  - range: "2,001-5,000"
    min: 2001
    max: 5000
    unit_price: 0.075
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	res := table.Lookup(1500)
	if !res.Found || res.Tier.UnitPriceMicros != 80_000 {
		t.Fatalf("unexpected lookup result %+v", res)
	}
}

func TestLoadTableRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiers.yaml")
	data := `tiers:
  - range: "bad"
    min: 1000
    max: 500
    unit_price: 0.08
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadTable(path); err == nil {
		t.Fatal("expected validation error")
	}
}
