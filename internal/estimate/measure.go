package estimate

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

const (
	// MinDimension is the exclusive lower bound for a plausible dimension in mm.
	MinDimension = 0.2
	// MaxDimension is the inclusive upper bound for a plausible dimension in mm.
	MaxDimension = 1500.0
	// DefaultThirdDimension replaces x3 when only two dimensions were found.
	DefaultThirdDimension = 10.0
	// MinDimensionCount is the number of values needed to classify a part.
	MinDimensionCount = 2
)

// unitGap is the optional blank between a number and its unit. PDF text
// layers often use a no-break space there.
const unitGap = `[\s\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

// Every numeric token counts, whether or not it sits on a dimension line.
var measurementPattern = regexp.MustCompile(`(?i)(Ø?\d+[.,]?\d*)` + unitGap + `?(mm)?`)

// MeasurementCandidate is a numeric token found in the drawing text. The
// diameter marker is stripped; whether the drawing carries one is a property
// of the whole Document.
type MeasurementCandidate struct {
	Value float64
}

// DimensionSet holds the three largest plausible dimensions, largest first.
type DimensionSet struct {
	X1 float64
	X2 float64
	X3 float64
}

// Max returns the largest of the three values. X3 may be the default and
// exceed X1 when the drawing only carries small numbers.
func (d DimensionSet) Max() float64 {
	return math.Max(d.X1, math.Max(d.X2, d.X3))
}

// ExtractCandidates returns every numeric token in document order.
func ExtractCandidates(doc Document) []MeasurementCandidate {
	matches := measurementPattern.FindAllStringSubmatch(doc.Raw(), -1)
	candidates := make([]MeasurementCandidate, 0, len(matches))
	for _, m := range matches {
		token := m[1]
		value, err := parseDecimal(strings.TrimLeft(token, "Øø"))
		if err != nil {
			continue
		}
		candidates = append(candidates, MeasurementCandidate{Value: value})
	}
	return candidates
}

// ExtractDimensions ranks the plausible candidates and returns the top three.
// It reports false when fewer than MinDimensionCount values are in range.
func ExtractDimensions(doc Document) (DimensionSet, bool) {
	return rankDimensions(ExtractCandidates(doc))
}

func rankDimensions(candidates []MeasurementCandidate) (DimensionSet, bool) {
	values := make([]float64, 0, len(candidates))
	for _, c := range candidates {
		if c.Value > MinDimension && c.Value <= MaxDimension {
			values = append(values, c.Value)
		}
	}
	if len(values) < MinDimensionCount {
		return DimensionSet{}, false
	}

	slices.Sort(values)
	slices.Reverse(values)

	dims := DimensionSet{X1: values[0], X2: values[1], X3: DefaultThirdDimension}
	if len(values) > 2 {
		dims.X3 = values[2]
	}
	return dims, true
}

// parseDecimal accepts either a comma or a dot as decimal separator.
func parseDecimal(s string) (float64, error) {
	s = strings.Replace(s, ",", ".", 1)
	s = strings.TrimSuffix(s, ".")
	return strconv.ParseFloat(s, 64)
}
