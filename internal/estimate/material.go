package estimate

import "strings"

// MaterialKind identifies the stock material of a part.
type MaterialKind string

const (
	Steel          MaterialKind = "steel"
	Aluminum       MaterialKind = "aluminum"
	StainlessSteel MaterialKind = "stainless_steel"
	Brass          MaterialKind = "brass"
	Copper         MaterialKind = "copper"
)

// DefaultMaterial is used when no keyword matches.
const DefaultMaterial = Steel

// MaterialKinds lists every supported material.
var MaterialKinds = []MaterialKind{Aluminum, StainlessSteel, Steel, Brass, Copper}

// MaterialSpec holds the physical and commercial properties of a material.
// Density is in g/cm³, which equals kg per (mm³/1000) as used by the volume formulas.
type MaterialSpec struct {
	Density    float64 `json:"density"`
	PricePerKg float64 `json:"pricePerKg"`
}

// DefaultMaterials returns the compiled-in density and price table.
func DefaultMaterials() map[MaterialKind]MaterialSpec {
	return map[MaterialKind]MaterialSpec{
		Aluminum:       {Density: 2.7, PricePerKg: 7},
		StainlessSteel: {Density: 7.9, PricePerKg: 6.5},
		Steel:          {Density: 7.85, PricePerKg: 1.5},
		Brass:          {Density: 8.4, PricePerKg: 8},
		Copper:         {Density: 8.9, PricePerKg: 10},
	}
}

type materialRule struct {
	kind     MaterialKind
	keywords []string
}

// materialRules is evaluated in priority order; "edelstahl" loses to "alu"
// when both appear.
var materialRules = []materialRule{
	{kind: Aluminum, keywords: []string{"alu", "6082"}},
	{kind: StainlessSteel, keywords: []string{"edelstahl", "1.4301"}},
	{kind: Brass, keywords: []string{"messing", "ms58"}},
	{kind: Copper, keywords: []string{"kupfer"}},
}

// ClassifyMaterial infers the material from keywords in the lower-cased text.
func ClassifyMaterial(doc Document) MaterialKind {
	text := doc.Lower()
	for _, rule := range materialRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.kind
			}
		}
	}
	return DefaultMaterial
}
