package estimate

// Advisories returned instead of a full estimate.
const (
	AdvisoryInsufficient = "not enough valid measurements recognized"
	AdvisoryOversize     = "part too large — manual check required"
	AdvisoryOverpriced   = "price too high — manual check required"
)

const (
	// OversizeWeight is the weight (kg) above which large parts go to manual review.
	OversizeWeight = 50.0
	// OversizeDimension is the largest dimension (mm) above which heavy parts go to manual review.
	OversizeDimension = 100.0
	// MaxUnitPrice is the highest final unit price returned without review.
	MaxUnitPrice = 10000.0
)

// IsOversize reports whether a part is both heavy and large. Checked before costing.
func IsOversize(weight float64, dims DimensionSet) bool {
	return weight > OversizeWeight && dims.Max() > OversizeDimension
}

// IsOverpriced reports whether the final unit price is implausibly high.
func IsOverpriced(unitPriceFinal float64) bool {
	return unitPriceFinal > MaxUnitPrice
}
