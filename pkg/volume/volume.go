// Package volume provides volume unit conversion through a common milliliter
// base. All conversions compose through the base unit; there are no direct
// unit-to-unit shortcuts, so the factor table is the single source of truth.
package volume

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit identifies a supported volume unit.
type Unit string

// Supported volume units.
const (
	Milliliter Unit = "ml"
	Liter      Unit = "L"
	Ounce      Unit = "oz"
	Cup        Unit = "cup"
	Pint       Unit = "pt"
	Quart      Unit = "qt"
	Gallon     Unit = "gal"
	Tablespoon Unit = "tbsp"
	Teaspoon   Unit = "tsp"
	Drop       Unit = "drops"
	Splash     Unit = "splash"
)

// System identifies a measurement system preference.
type System string

// Supported measurement systems.
const (
	SystemUS     System = "US"
	SystemMetric System = "Metric"
)

// mlPerUnit maps each unit to the number of milliliters in one of that unit.
// Factors are fixed constants, never re-derived.
var mlPerUnit = map[Unit]float64{
	Milliliter: 1,
	Liter:      1000,
	Ounce:      29.5735,
	Cup:        236.588,
	Pint:       473.176,
	Quart:      946.353,
	Gallon:     3785.41,
	Tablespoon: 14.7868,
	Teaspoon:   4.92892,
	Drop:       0.05,
	Splash:     5,
}

// Preferred-unit breakpoints in milliliters for the US customary ladder.
const (
	usTeaspoonCeilingMl   = 15.0
	usTablespoonCeilingMl = 45.0
	usOunceCeilingMl      = 236.588
	usCupCeilingMl        = 946.353
	metricLiterFloorMl    = 1000.0
)

// UnsupportedUnitError indicates a volume unit outside the conversion table.
type UnsupportedUnitError struct {
	Unit Unit
}

func (e *UnsupportedUnitError) Error() string {
	return fmt.Sprintf("unsupported volume unit %q", string(e.Unit))
}

// Volume pairs a magnitude with its unit.
type Volume struct {
	Value float64
	Unit  Unit
}

// Units returns the supported units in display order.
func Units() []Unit {
	return []Unit{Milliliter, Liter, Ounce, Cup, Pint, Quart, Gallon, Tablespoon, Teaspoon, Drop, Splash}
}

// Valid reports whether the unit appears in the conversion table.
func (u Unit) Valid() bool {
	_, ok := mlPerUnit[u]
	return ok
}

// ParseUnit maps a config-supplied string onto a Unit. Matching is
// case-insensitive and accepts a few common aliases.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ml", "milliliter", "milliliters", "millilitre", "millilitres":
		return Milliliter, nil
	case "l", "liter", "liters", "litre", "litres":
		return Liter, nil
	case "oz", "floz", "fl-oz", "fl oz", "ounce", "ounces":
		return Ounce, nil
	case "cup", "cups":
		return Cup, nil
	case "pt", "pint", "pints":
		return Pint, nil
	case "qt", "quart", "quarts":
		return Quart, nil
	case "gal", "gallon", "gallons":
		return Gallon, nil
	case "tbsp", "tablespoon", "tablespoons":
		return Tablespoon, nil
	case "tsp", "teaspoon", "teaspoons":
		return Teaspoon, nil
	case "drop", "drops":
		return Drop, nil
	case "splash", "splashes":
		return Splash, nil
	}
	return "", &UnsupportedUnitError{Unit: Unit(s)}
}

// ToBase converts a value in the given unit to milliliters.
func ToBase(value float64, unit Unit) (float64, error) {
	factor, ok := mlPerUnit[unit]
	if !ok {
		return 0, &UnsupportedUnitError{Unit: unit}
	}
	return value * factor, nil
}

// FromBase converts a milliliter value into the given unit.
func FromBase(mlValue float64, unit Unit) (float64, error) {
	factor, ok := mlPerUnit[unit]
	if !ok {
		return 0, &UnsupportedUnitError{Unit: unit}
	}
	return mlValue / factor, nil
}

// Convert converts a value between two units through the milliliter base.
// A same-unit conversion returns the value unchanged so no floating
// round-trip error is introduced.
func Convert(value float64, from, to Unit) (float64, error) {
	if !from.Valid() {
		return 0, &UnsupportedUnitError{Unit: from}
	}
	if !to.Valid() {
		return 0, &UnsupportedUnitError{Unit: to}
	}
	if from == to {
		return value, nil
	}
	ml, err := ToBase(value, from)
	if err != nil {
		return 0, err
	}
	return FromBase(ml, to)
}

// DefaultPrecision returns the number of decimals used to display a value in
// the given unit when the caller does not request a precision.
func DefaultPrecision(value float64, unit Unit) int {
	switch unit {
	case Drop, Splash:
		return 0
	case Milliliter:
		if value < 10 {
			return 1
		}
		return 0
	case Liter:
		return 2
	case Ounce:
		if value < 1 {
			return 2
		}
		return 1
	case Teaspoon, Tablespoon:
		return 1
	default:
		return 2
	}
}

// Format renders a value with its unit abbreviation. A negative precision
// selects the unit-specific default. Trailing zeros are trimmed.
func Format(value float64, unit Unit, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision(value, unit)
	}
	s := strconv.FormatFloat(value, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s + " " + string(unit)
}

// PreferredUnit selects the nicest display unit for a milliliter quantity in
// the given measurement system.
func PreferredUnit(mlValue float64, system System) Unit {
	if system == SystemMetric {
		if mlValue >= metricLiterFloorMl {
			return Liter
		}
		return Milliliter
	}
	switch {
	case mlValue < usTeaspoonCeilingMl:
		return Teaspoon
	case mlValue < usTablespoonCeilingMl:
		return Tablespoon
	case mlValue < usOunceCeilingMl:
		return Ounce
	case mlValue < usCupCeilingMl:
		return Cup
	default:
		return Quart
	}
}
