// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/pourmetrics/pourcost/pkg/constants"
	"github.com/pourmetrics/pourcost/pkg/volume"
)

// ValidateOutputFormat checks that an output format name is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	}
	return fmt.Errorf("invalid output format: %s (expected %s or %s)",
		format, constants.OutputFormatPretty, constants.OutputFormatCSV)
}

// IngredientConfig carries the fields of an ingredient record that warnings
// are derived from.
type IngredientConfig struct {
	Name         string
	BottleVolume float64
	BottleUnit   string
	BottlePrice  float64
	RetailPrice  float64
	Sellable     bool
	PourAmount   float64
	PourUnit     string
}

// CocktailConfig carries the fields of a cocktail record that warnings are
// derived from.
type CocktailConfig struct {
	Name       string
	Price      float64
	Components []ComponentConfig
}

// ComponentConfig names an ingredient reference inside a cocktail.
type ComponentConfig struct {
	Ingredient string
	Amount     float64
	Unit       string
}

// ValidateGoalPercent returns a warning for pour-cost goals outside the range
// bars actually run at.
func ValidateGoalPercent(goal float64) []string {
	var warnings []string
	if goal <= 0 || goal >= 100 {
		warnings = append(warnings, fmt.Sprintf("Pour cost goal %.1f%% is outside (0, 100) - the default of %.0f%% will be used",
			goal, constants.DefaultPourCostGoalPercent))
	} else if goal > 50 {
		warnings = append(warnings, fmt.Sprintf("Pour cost goal %.1f%% is unusually high - typical goals run 15-30%%", goal))
	}
	return warnings
}

// ValidateIngredient returns warnings for a single ingredient record.
func ValidateIngredient(ing IngredientConfig) []string {
	var warnings []string

	if ing.BottleVolume <= 0 {
		warnings = append(warnings, fmt.Sprintf("Ingredient '%s' has non-positive bottle volume %.2f - it will be skipped",
			ing.Name, ing.BottleVolume))
	}
	if ing.BottlePrice < 0 {
		warnings = append(warnings, fmt.Sprintf("Ingredient '%s' has negative bottle price %.2f - it will be skipped",
			ing.Name, ing.BottlePrice))
	}
	if _, err := volume.ParseUnit(ing.BottleUnit); ing.BottleUnit != "" && err != nil {
		warnings = append(warnings, fmt.Sprintf("Ingredient '%s' has unknown bottle unit %q", ing.Name, ing.BottleUnit))
	}
	if ing.PourUnit != "" {
		if _, err := volume.ParseUnit(ing.PourUnit); err != nil {
			warnings = append(warnings, fmt.Sprintf("Ingredient '%s' has unknown pour unit %q", ing.Name, ing.PourUnit))
		}
	}
	if ing.Sellable && ing.RetailPrice <= 0 {
		warnings = append(warnings, fmt.Sprintf("Ingredient '%s' is sellable but has no retail price - pour cost percentage and margin will be suppressed",
			ing.Name))
	}
	if !ing.Sellable && ing.RetailPrice > 0 {
		warnings = append(warnings, fmt.Sprintf("Ingredient '%s' is not sellable but declares retail price %.2f - the price will be ignored",
			ing.Name, ing.RetailPrice))
	}

	pourExceedsBottle := func() bool {
		bottleUnit, err := volume.ParseUnit(ing.BottleUnit)
		if err != nil {
			return false
		}
		pourUnit, err := volume.ParseUnit(ing.PourUnit)
		if err != nil {
			return false
		}
		pourInBottleUnit, err := volume.Convert(ing.PourAmount, pourUnit, bottleUnit)
		if err != nil {
			return false
		}
		return pourInBottleUnit > ing.BottleVolume
	}
	if ing.PourAmount > 0 && ing.BottleVolume > 0 && pourExceedsBottle() {
		warnings = append(warnings, fmt.Sprintf("Ingredient '%s' pour exceeds its bottle volume", ing.Name))
	}

	return warnings
}

// ValidateCocktail returns warnings for a cocktail record given the set of
// known ingredient names.
func ValidateCocktail(cocktail CocktailConfig, knownIngredients map[string]bool) []string {
	var warnings []string

	if len(cocktail.Components) == 0 {
		warnings = append(warnings, fmt.Sprintf("Cocktail '%s' has no components", cocktail.Name))
	}
	if cocktail.Price < 0 {
		warnings = append(warnings, fmt.Sprintf("Cocktail '%s' has negative price %.2f", cocktail.Name, cocktail.Price))
	}
	for _, comp := range cocktail.Components {
		if !knownIngredients[comp.Ingredient] {
			warnings = append(warnings, fmt.Sprintf("Cocktail '%s' references unknown ingredient '%s'",
				cocktail.Name, comp.Ingredient))
		}
		if comp.Amount <= 0 {
			warnings = append(warnings, fmt.Sprintf("Cocktail '%s' component '%s' has non-positive amount %.2f",
				cocktail.Name, comp.Ingredient, comp.Amount))
		}
		if comp.Unit != "" {
			if _, err := volume.ParseUnit(comp.Unit); err != nil {
				warnings = append(warnings, fmt.Sprintf("Cocktail '%s' component '%s' has unknown unit %q",
					cocktail.Name, comp.Ingredient, comp.Unit))
			}
		}
	}

	return warnings
}
