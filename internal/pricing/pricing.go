package pricing

// Default machining rates applied when no catalog overrides them.
const (
	DefaultMachineHourlyRate = 35.0
	DefaultMinutesPerKg      = 2.0
	DefaultSetupCost         = 60.0
	DefaultProgrammingCost   = 30.0
	DefaultMarginPercent     = 15.0
)

// ItemInput represents the part-level inputs of a machining estimate.
type ItemInput struct {
	WeightKg  float64
	CostPerKg float64
	Quantity  int
}

// Rates holds the shop-wide machining parameters shared by every estimate.
type Rates struct {
	MachineHourlyRate float64 `json:"machineHourlyRate"`
	MinutesPerKg      float64 `json:"minutesPerKg"`
	SetupCost         float64 `json:"setupCost"`
	ProgrammingCost   float64 `json:"programmingCost"`
	MarginPercent     float64 `json:"marginPercent"`
}

// DefaultRates returns the compiled-in machining rates.
func DefaultRates() Rates {
	return Rates{
		MachineHourlyRate: DefaultMachineHourlyRate,
		MinutesPerKg:      DefaultMinutesPerKg,
		SetupCost:         DefaultSetupCost,
		ProgrammingCost:   DefaultProgrammingCost,
		MarginPercent:     DefaultMarginPercent,
	}
}

// Breakdown contains all intermediate and line-item values of a machining estimate.
// Values are unrounded; presentation rounding belongs to the response layer.
type Breakdown struct {
	MaterialCost   float64
	RuntimeMinutes float64
	MachiningCost  float64
	FixedCost      float64
	UnitPriceRaw   float64
	UnitPriceFinal float64
}

// Calculate computes the per-unit price of a part. A quantity below one is
// treated as one.
func Calculate(item ItemInput, rates Rates) Breakdown {
	quantity := item.Quantity
	if quantity < 1 {
		quantity = 1
	}

	materialCost := item.WeightKg * item.CostPerKg
	runtimeMinutes := item.WeightKg * rates.MinutesPerKg
	machiningCost := (runtimeMinutes / 60.0) * rates.MachineHourlyRate
	fixedCost := rates.SetupCost + rates.ProgrammingCost

	unitPriceRaw := (materialCost + machiningCost + fixedCost) / float64(quantity)
	unitPriceFinal := unitPriceRaw * (1.0 + rates.MarginPercent/100.0)

	return Breakdown{
		MaterialCost:   materialCost,
		RuntimeMinutes: runtimeMinutes,
		MachiningCost:  machiningCost,
		FixedCost:      fixedCost,
		UnitPriceRaw:   unitPriceRaw,
		UnitPriceFinal: unitPriceFinal,
	}
}
