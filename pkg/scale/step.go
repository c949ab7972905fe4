package scale

import "math"

// PriceStep returns the slider increment for a price value. Steps coarsen as
// the price grows so dragging stays usable across the full range.
func PriceStep(value float64) float64 {
	switch {
	case value < 30:
		return 0.25
	case value < 100:
		return 0.5
	case value < 250:
		return 1
	case value < 500:
		return 5
	case value < 1000:
		return 10
	case value < 2000:
		return 25
	default:
		return 100
	}
}

// PercentStep returns the slider increment for a pour-cost percentage. The
// 10-30% sweet spot gets the finest resolution.
func PercentStep(value float64) float64 {
	switch {
	case value < 5:
		return 1
	case value < 10:
		return 0.5
	case value <= 30:
		return 0.25
	case value <= 50:
		return 1
	case value <= 75:
		return 2.5
	default:
		return 5
	}
}

// Quantize snaps a value to the nearest multiple of step. A non-positive step
// returns the value unchanged.
func Quantize(value, step float64) float64 {
	if step <= 0 {
		return value
	}
	return math.Round(value/step) * step
}
