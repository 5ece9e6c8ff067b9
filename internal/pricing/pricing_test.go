package pricing

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestCalculate_AluminumPartWithExplicitWeight(t *testing.T) {
	item := ItemInput{WeightKg: 2.5, CostPerKg: 7, Quantity: 1}

	result := Calculate(item, DefaultRates())

	nearlyEqual(t, "materialCost", result.MaterialCost, 17.5)
	nearlyEqual(t, "runtimeMinutes", result.RuntimeMinutes, 5)
	nearlyEqual(t, "machiningCost", result.MachiningCost, 5.0/60.0*35.0)
	nearlyEqual(t, "fixedCost", result.FixedCost, 90)
	nearlyEqual(t, "unitPriceRaw", result.UnitPriceRaw, 17.5+5.0/60.0*35.0+90)
	nearlyEqual(t, "unitPriceFinal", result.UnitPriceFinal, (17.5+5.0/60.0*35.0+90)*1.15)

	if got := math.Round(result.UnitPriceFinal*100) / 100; got != 126.98 {
		t.Fatalf("rounded unitPriceFinal = %v, want 126.98", got)
	}
}

func TestCalculate_QuantitySplitsFixedCost(t *testing.T) {
	single := Calculate(ItemInput{WeightKg: 1, CostPerKg: 1.5, Quantity: 1}, DefaultRates())
	batch := Calculate(ItemInput{WeightKg: 1, CostPerKg: 1.5, Quantity: 10}, DefaultRates())

	nearlyEqual(t, "batch unitPriceRaw", batch.UnitPriceRaw, single.UnitPriceRaw/10)
	nearlyEqual(t, "batch materialCost", batch.MaterialCost, single.MaterialCost)
	nearlyEqual(t, "batch fixedCost", batch.FixedCost, 90)
}

func TestCalculate_QuantityBelowOneBehavesAsOne(t *testing.T) {
	item := ItemInput{WeightKg: 3, CostPerKg: 8}
	want := Calculate(ItemInput{WeightKg: 3, CostPerKg: 8, Quantity: 1}, DefaultRates())

	for _, q := range []int{0, -4} {
		item.Quantity = q
		got := Calculate(item, DefaultRates())
		nearlyEqual(t, "unitPriceFinal", got.UnitPriceFinal, want.UnitPriceFinal)
	}
}

func TestCalculate_MarginPercent_ZeroAndFifteen(t *testing.T) {
	item := ItemInput{WeightKg: 0, Quantity: 1}

	withoutMargin := DefaultRates()
	withoutMargin.MarginPercent = 0

	nearlyEqual(t, "withoutMargin final", Calculate(item, withoutMargin).UnitPriceFinal, 90)
	nearlyEqual(t, "withMargin final", Calculate(item, DefaultRates()).UnitPriceFinal, 103.5)
}

func TestCalculate_ZeroWeightLeavesOnlyFixedCost(t *testing.T) {
	result := Calculate(ItemInput{Quantity: 1, CostPerKg: 10}, DefaultRates())

	nearlyEqual(t, "materialCost", result.MaterialCost, 0)
	nearlyEqual(t, "machiningCost", result.MachiningCost, 0)
	nearlyEqual(t, "unitPriceRaw", result.UnitPriceRaw, 90)
}
