package estimate

// PhysicalEstimate is the derived size of a part.
type PhysicalEstimate struct {
	// Volume in mm³/1000.
	Volume float64
	// Weight in kilograms.
	Weight float64
	// FromDrawing is set when the weight was printed on the drawing.
	FromDrawing bool
}

// EstimatePhysical derives the weight from volume and density unless the
// drawing states one. A stated weight of zero counts as absent.
func EstimatePhysical(volume float64, spec MaterialSpec, explicitWeight float64, hasExplicit bool) PhysicalEstimate {
	if hasExplicit && explicitWeight != 0 {
		return PhysicalEstimate{Volume: volume, Weight: explicitWeight, FromDrawing: true}
	}
	return PhysicalEstimate{Volume: volume, Weight: volume * spec.Density}
}
