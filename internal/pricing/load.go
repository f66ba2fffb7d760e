package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type tierFile struct {
	Tiers []struct {
		Range     string  `yaml:"range"`
		Min       int64   `yaml:"min"`
		Max       int64   `yaml:"max"`
		UnitPrice float64 `yaml:"unit_price"`
	} `yaml:"tiers"`
}

// LoadTable reads a tier schedule from a YAML file. It goes through the same
// validation as the built-in table, so a bad override fails at startup rather
// than at checkout time.
func LoadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pricing: read %s: %w", path, err)
	}

	var f tierFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("pricing: parse %s: %w", path, err)
	}

	tiers := make([]Tier, 0, len(f.Tiers))
	for _, t := range f.Tiers {
		tiers = append(tiers, Tier{
			Range:           t.Range,
			Min:             t.Min,
			Max:             t.Max,
			UnitPriceMicros: int64(t.UnitPrice*MicrosPerDollar + 0.5),
		})
	}

	return NewTable(tiers)
}
