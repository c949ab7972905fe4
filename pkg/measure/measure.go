// Package measure resolves which volume unit the other components should
// display in, given a measurement-system preference and a use case.
package measure

import (
	"fmt"
	"strings"

	"github.com/pourmetrics/pourcost/pkg/volume"
)

// UseCase identifies what a volume is being displayed for.
type UseCase string

// Supported use cases.
const (
	UseBottle  UseCase = "bottle"
	UseRecipe  UseCase = "recipe"
	UseServing UseCase = "serving"
)

// ParseSystem maps a config-supplied string onto a measurement system.
func ParseSystem(s string) (volume.System, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "us", "imperial", "customary":
		return volume.SystemUS, nil
	case "metric", "si":
		return volume.SystemMetric, nil
	}
	return "", fmt.Errorf("unknown measurement system %q", s)
}

// DefaultUnit returns the fixed unit for a system and use case, independent
// of magnitude. Servings are conventionally oz in the US and ml in Metric.
func DefaultUnit(system volume.System, use UseCase) volume.Unit {
	if system == volume.SystemMetric {
		if use == UseBottle {
			return volume.Liter
		}
		return volume.Milliliter
	}
	return volume.Ounce
}

// ResolveUnit picks the display unit for a quantity of mlValue milliliters.
// Servings stay on the fixed serving unit; bottles cap at oz (US) or switch
// ml to L (Metric); recipes use the full preferred-unit ladder.
func ResolveUnit(mlValue float64, system volume.System, use UseCase) volume.Unit {
	switch use {
	case UseServing:
		return DefaultUnit(system, UseServing)
	case UseBottle:
		if system == volume.SystemMetric {
			return volume.PreferredUnit(mlValue, system)
		}
		return volume.Ounce
	default:
		return volume.PreferredUnit(mlValue, system)
	}
}
