package estimate

import (
	"errors"
	"fmt"
	"math"

	"github.com/Starkspan/Final5/internal/pricing"
)

// ErrNonFinite is returned when an intermediate value overflows or is not a number.
var ErrNonFinite = errors.New("estimate produced a non-finite value")

// Outcome tells how far the pipeline got for a document.
type Outcome string

const (
	OutcomeInsufficient Outcome = "insufficient"
	OutcomeOversize     Outcome = "oversize"
	OutcomeOverpriced   Outcome = "overpriced"
	OutcomeEstimated    Outcome = "estimated"
)

// Estimate is the result of one pipeline run. Fields past the stage that
// stopped the run are left zero.
type Estimate struct {
	Outcome        Outcome
	Advisory       string
	Dimensions     DimensionSet
	DiameterMarker bool
	Shape          Shape
	Material       MaterialKind
	Physical       PhysicalEstimate
	Cost           pricing.Breakdown
	Quantity       int
}

// NeedsReview reports whether the estimate ended in an advisory.
func (e Estimate) NeedsReview() bool {
	return e.Advisory != ""
}

// Run estimates a part from the text of its drawing. Advisories are normal
// results; an error means the computation itself failed.
func Run(text string, quantity int, catalog Catalog) (Estimate, error) {
	doc := NewDocument(text)
	est := Estimate{Shape: ShapeUnknown, Quantity: NormalizeQuantity(quantity)}

	dims, ok := ExtractDimensions(doc)
	if !ok {
		est.Outcome = OutcomeInsufficient
		est.Advisory = AdvisoryInsufficient
		return est, nil
	}
	est.Dimensions = dims
	est.DiameterMarker = doc.HasDiameterMarker()

	shape, volume := ClassifyShape(dims, est.DiameterMarker)
	est.Shape = shape
	est.Material = ClassifyMaterial(doc)

	explicit, hasExplicit := ExtractWeight(doc)
	est.Physical = EstimatePhysical(volume, catalog.Material(est.Material), explicit, hasExplicit)
	if err := checkFinite("weight", est.Physical.Weight); err != nil {
		return est, err
	}

	if IsOversize(est.Physical.Weight, dims) {
		est.Outcome = OutcomeOversize
		est.Advisory = AdvisoryOversize
		return est, nil
	}

	est.Cost = pricing.Calculate(pricing.ItemInput{
		WeightKg:  est.Physical.Weight,
		CostPerKg: catalog.Material(est.Material).PricePerKg,
		Quantity:  est.Quantity,
	}, catalog.Rates)
	if err := checkFinite("unit price", est.Cost.UnitPriceFinal); err != nil {
		return est, err
	}

	if IsOverpriced(est.Cost.UnitPriceFinal) {
		est.Outcome = OutcomeOverpriced
		est.Advisory = AdvisoryOverpriced
		return est, nil
	}

	est.Outcome = OutcomeEstimated
	return est, nil
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s: %w", name, ErrNonFinite)
	}
	return nil
}
