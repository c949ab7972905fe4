// Package scale maps a pour-cost percentage or price domain onto a normalized
// [0,1] slider position. The mapping is piecewise: a linear sweet spot around
// the goal flanked by logarithmically compressed outer segments, so values
// near the goal get disproportionate visual space. The forward and inverse
// functions branch on the same named breakpoints; changing one without the
// other breaks drag behavior.
package scale

import (
	"fmt"
	"math"

	"github.com/pourmetrics/pourcost/pkg/constants"
	"github.com/pourmetrics/pourcost/pkg/mathutil"
)

// InvalidRangeError indicates a goal outside the slider domain.
type InvalidRangeError struct {
	Goal      float64
	DomainMin float64
	DomainMax float64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("goal %v outside domain [%v, %v]", e.Goal, e.DomainMin, e.DomainMax)
}

func validate(goal, domainMin, domainMax float64) error {
	if domainMin >= domainMax || goal < domainMin || goal > domainMax {
		return &InvalidRangeError{Goal: goal, DomainMin: domainMin, DomainMax: domainMax}
	}
	return nil
}

// ToPosition maps a domain value onto its normalized [0,1] position.
func ToPosition(value, goal, domainMin, domainMax float64) (float64, error) {
	if err := validate(goal, domainMin, domainMax); err != nil {
		return 0, err
	}

	value = mathutil.Clamp(value, domainMin, domainMax)
	sweetLow := goal - constants.ScaleSweetSpotHalfWidth
	sweetHigh := goal + constants.ScaleSweetSpotHalfWidth

	switch {
	case value < sweetLow:
		// Lower log segment: [domainMin, sweetLow) -> [0, ScaleLowerSplit).
		span := sweetLow - domainMin
		pos := constants.ScaleLowerSplit * math.Log1p(value-domainMin) / math.Log1p(span)
		return mathutil.Clamp(pos, 0, constants.ScaleLowerSplit), nil
	case value > sweetHigh:
		// Upper log segment: (sweetHigh, domainMax] -> (ScaleUpperSplit, 1].
		span := domainMax - sweetHigh
		pos := constants.ScaleUpperSplit + (1-constants.ScaleUpperSplit)*math.Log1p(value-sweetHigh)/math.Log1p(span)
		return mathutil.Clamp(pos, constants.ScaleUpperSplit, 1), nil
	default:
		frac := (value - sweetLow) / (sweetHigh - sweetLow)
		pos := constants.ScaleLowerSplit + (constants.ScaleUpperSplit-constants.ScaleLowerSplit)*frac
		return mathutil.Clamp(pos, 0, 1), nil
	}
}

// ToValue maps a normalized [0,1] position back onto the domain. It is the
// exact inverse of ToPosition within floating tolerance.
func ToValue(position, goal, domainMin, domainMax float64) (float64, error) {
	if err := validate(goal, domainMin, domainMax); err != nil {
		return 0, err
	}

	position = mathutil.Clamp(position, 0, 1)
	sweetLow := goal - constants.ScaleSweetSpotHalfWidth
	sweetHigh := goal + constants.ScaleSweetSpotHalfWidth

	switch {
	case position < constants.ScaleLowerSplit:
		span := sweetLow - domainMin
		if span <= 0 {
			return domainMin, nil
		}
		value := domainMin + math.Expm1(position/constants.ScaleLowerSplit*math.Log1p(span))
		return mathutil.Clamp(value, domainMin, domainMax), nil
	case position > constants.ScaleUpperSplit:
		span := domainMax - sweetHigh
		if span <= 0 {
			return domainMax, nil
		}
		value := sweetHigh + math.Expm1((position-constants.ScaleUpperSplit)/(1-constants.ScaleUpperSplit)*math.Log1p(span))
		return mathutil.Clamp(value, domainMin, domainMax), nil
	default:
		frac := (position - constants.ScaleLowerSplit) / (constants.ScaleUpperSplit - constants.ScaleLowerSplit)
		value := sweetLow + frac*(sweetHigh-sweetLow)
		return mathutil.Clamp(value, domainMin, domainMax), nil
	}
}
