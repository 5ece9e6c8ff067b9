package estimate

import "github.com/Starkspan/Final5/internal/pricing"

// Catalog holds the material table and machining rates an estimate is priced with.
type Catalog struct {
	Materials map[MaterialKind]MaterialSpec `json:"materials"`
	Rates     pricing.Rates                 `json:"rates"`
}

// DefaultCatalog returns the compiled-in materials and rates.
func DefaultCatalog() Catalog {
	return Catalog{
		Materials: DefaultMaterials(),
		Rates:     pricing.DefaultRates(),
	}
}

// Material returns the spec for kind, falling back to the compiled-in entry
// when the catalog does not carry it.
func (c Catalog) Material(kind MaterialKind) MaterialSpec {
	if spec, ok := c.Materials[kind]; ok {
		return spec
	}
	return DefaultMaterials()[kind]
}
