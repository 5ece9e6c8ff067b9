package estimate

import "math/big"

// InsufficientResponse is returned when the drawing carries too few dimensions.
type InsufficientResponse struct {
	Advisory string `json:"advisory"`
}

// EscalatedResponse is returned when a review gate stopped the estimate.
type EscalatedResponse struct {
	Shape    Shape        `json:"shape"`
	X1       float64      `json:"x1"`
	X2       float64      `json:"x2"`
	X3       float64      `json:"x3"`
	Material MaterialKind `json:"material"`
	Weight   string       `json:"weight"`
	Price    string       `json:"price,omitempty"`
	Advisory string       `json:"advisory"`
}

// FullResponse is returned for a trusted estimate.
type FullResponse struct {
	Shape          Shape        `json:"shape"`
	Material       MaterialKind `json:"material"`
	X1             float64      `json:"x1"`
	X2             float64      `json:"x2"`
	X3             float64      `json:"x3"`
	Weight         string       `json:"weight"`
	RuntimeMinutes string       `json:"runtimeMinutes"`
	MaterialCost   string       `json:"materialCost"`
	UnitPriceFinal string       `json:"unitPriceFinal"`
	TargetPrice    any          `json:"targetPrice"`
	Quantity       int          `json:"quantity"`
}

// Response builds the JSON payload for the estimate. targetPrice is echoed
// unchanged in a full estimate and never used in the computation.
func (e Estimate) Response(targetPrice any) any {
	switch e.Outcome {
	case OutcomeInsufficient:
		return InsufficientResponse{Advisory: e.Advisory}
	case OutcomeOversize, OutcomeOverpriced:
		resp := EscalatedResponse{
			Shape:    e.Shape,
			X1:       e.Dimensions.X1,
			X2:       e.Dimensions.X2,
			X3:       e.Dimensions.X3,
			Material: e.Material,
			Weight:   formatFixed(e.Physical.Weight, 2),
			Advisory: e.Advisory,
		}
		if e.Outcome == OutcomeOverpriced {
			resp.Price = formatFixed(e.Cost.UnitPriceFinal, 2)
		}
		return resp
	default:
		return FullResponse{
			Shape:          e.Shape,
			Material:       e.Material,
			X1:             e.Dimensions.X1,
			X2:             e.Dimensions.X2,
			X3:             e.Dimensions.X3,
			Weight:         formatFixed(e.Physical.Weight, 2),
			RuntimeMinutes: formatFixed(e.Cost.RuntimeMinutes, 1),
			MaterialCost:   formatFixed(e.Cost.MaterialCost, 2),
			UnitPriceFinal: formatFixed(e.Cost.UnitPriceFinal, 2),
			TargetPrice:    targetPrice,
			Quantity:       e.Quantity,
		}
	}
}

// formatFixed rounds the exact binary value of v to decimals places, halves
// away from zero, so 1.125 prints as "1.13" while 1.005 (stored just below)
// prints as "1.00". v must be finite.
func formatFixed(v float64, decimals int) string {
	return new(big.Rat).SetFloat64(v).FloatString(decimals)
}
