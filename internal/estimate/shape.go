package estimate

import "math"

// Shape is the geometry class used to pick a volume formula.
type Shape string

const (
	ShapeUnknown       Shape = "unknown"
	ShapeCylinder      Shape = "cylinder"
	ShapeProfileOrTube Shape = "profile_or_tube"
	ShapePlateOrBlock  Shape = "plate_or_block"
	ShapeStandard      Shape = "standard"
)

const (
	// CylinderMaxDiameter is the largest x1 (mm) still treated as turned stock.
	CylinderMaxDiameter = 50.0
	// ProfileRatio is how many times x2 the length must exceed for a profile.
	ProfileRatio = 3.0
	// BlockCloseness is the largest gap (mm) between neighbouring dimensions of a block.
	BlockCloseness = 100.0
)

type shapeRule struct {
	shape   Shape
	matches func(d DimensionSet, diameterMarker bool) bool
	volume  func(d DimensionSet) float64
}

// shapeRules is evaluated top to bottom; the first match wins and the last
// rule always matches.
var shapeRules = []shapeRule{
	{
		shape: ShapeCylinder,
		matches: func(d DimensionSet, diameterMarker bool) bool {
			return diameterMarker || d.X1 <= CylinderMaxDiameter
		},
		volume: cylinderVolume,
	},
	{
		shape: ShapeProfileOrTube,
		matches: func(d DimensionSet, _ bool) bool {
			return d.X1 > ProfileRatio*d.X2
		},
		volume: boxVolume,
	},
	{
		shape: ShapePlateOrBlock,
		matches: func(d DimensionSet, _ bool) bool {
			return math.Abs(d.X1-d.X2) < BlockCloseness && math.Abs(d.X2-d.X3) < BlockCloseness
		},
		volume: boxVolume,
	},
	{
		shape:   ShapeStandard,
		matches: func(DimensionSet, bool) bool { return true },
		volume:  boxVolume,
	},
}

// ClassifyShape returns the geometry class and the volume (mm³/1000) of the part.
func ClassifyShape(dims DimensionSet, diameterMarker bool) (Shape, float64) {
	for _, rule := range shapeRules {
		if rule.matches(dims, diameterMarker) {
			return rule.shape, rule.volume(dims)
		}
	}
	return ShapeUnknown, 0
}

// cylinderVolume reads x1 as the diameter and x2 as the length.
func cylinderVolume(d DimensionSet) float64 {
	radius := d.X1 / 2
	return math.Pi * radius * radius * d.X2 / 1000
}

func boxVolume(d DimensionSet) float64 {
	return d.X1 * d.X2 * d.X3 / 1000
}
