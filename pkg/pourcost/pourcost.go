// Package pourcost computes beverage serving economics: cost per unit volume,
// cost per pour, suggested retail price, pour-cost percentage, and profit
// margin. All functions are pure and deterministic; divide-by-zero cases are
// guarded explicitly and never produce Inf or NaN.
package pourcost

import (
	"fmt"

	"github.com/pourmetrics/pourcost/pkg/constants"
	"github.com/pourmetrics/pourcost/pkg/volume"
)

// Kind classifies an ingredient.
type Kind string

// Supported ingredient kinds.
const (
	KindSpirit  Kind = "spirit"
	KindWine    Kind = "wine"
	KindBeer    Kind = "beer"
	KindLiqueur Kind = "liqueur"
	KindMixer   Kind = "mixer"
	KindGarnish Kind = "garnish"
	KindOther   Kind = "other"
)

// InvalidInputError indicates a calculation input outside its valid range.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Ingredient describes a purchasable bottle.
type Ingredient struct {
	Name         string
	Kind         Kind
	BottleVolume volume.Volume
	BottlePrice  float64
	Sellable     bool
}

// Pour describes a serving drawn from an ingredient.
type Pour struct {
	Amount float64
	Unit   volume.Unit
}

// CostResult holds the derived economics for a single pour. PriceMeaningful
// is false when the actual price is non-positive or the ingredient is not
// sellable; PourCostPercentage and ProfitMargin then carry the zero sentinel
// and callers must suppress their display.
type CostResult struct {
	CostPerUnitVolume  float64
	CostPerPour        float64
	SuggestedPrice     float64
	PourCostPercentage float64
	ProfitMargin       float64
	PriceMeaningful    bool
}

// Component pairs an ingredient with the pour drawn from it in a cocktail.
type Component struct {
	Ingredient Ingredient
	Pour       Pour
}

// ComponentCost is the per-component contribution inside a cocktail result.
type ComponentCost struct {
	Name        string
	CostPerPour float64
}

// CocktailCostResult aggregates component costs for a multi-ingredient drink.
type CocktailCostResult struct {
	TotalCost          float64
	SuggestedPrice     float64
	PourCostPercentage float64
	ProfitMargin       float64
	PriceMeaningful    bool
	Components         []ComponentCost
}

// CostPerUnitVolume computes the ingredient cost of one pour-unit of volume.
// The bottle volume must already be expressed in the pour's unit.
func CostPerUnitVolume(bottlePrice, bottleVolumeInPourUnit float64) (float64, error) {
	if bottleVolumeInPourUnit <= 0 {
		return 0, &InvalidInputError{Field: "bottle volume", Value: bottleVolumeInPourUnit, Reason: "must be positive"}
	}
	if bottlePrice < 0 {
		return 0, &InvalidInputError{Field: "bottle price", Value: bottlePrice, Reason: "must not be negative"}
	}
	return bottlePrice / bottleVolumeInPourUnit, nil
}

// CostPerPour computes the ingredient cost of a pour of the given size.
func CostPerPour(costPerUnitVolume, pourAmount float64) float64 {
	return costPerUnitVolume * pourAmount
}

// SuggestedPrice computes the retail price that lands the pour exactly on the
// target pour-cost percentage.
func SuggestedPrice(costPerPour, targetPourCostPercent float64) (float64, error) {
	if targetPourCostPercent <= 0 {
		return 0, &InvalidInputError{Field: "target pour cost percent", Value: targetPourCostPercent, Reason: "must be positive"}
	}
	return costPerPour / (targetPourCostPercent / constants.PercentageMultiplier), nil
}

// PourCostPercentage computes the fraction of the actual price consumed by
// the pour cost, as a percentage. When actualPrice is not positive the
// percentage is not meaningful and the zero sentinel is returned.
func PourCostPercentage(costPerPour, actualPrice float64) float64 {
	if actualPrice <= 0 {
		return 0
	}
	return costPerPour / actualPrice * constants.PercentageMultiplier
}

// ProfitMargin computes retail price minus pour cost.
func ProfitMargin(actualPrice, costPerPour float64) float64 {
	return actualPrice - costPerPour
}

// Compute chains the full cost calculation for one ingredient and pour.
// actualPrice is the retail price of the pour; pass 0 when the ingredient is
// not sold individually.
func Compute(ing Ingredient, pour Pour, actualPrice, targetPourCostPercent float64) (CostResult, error) {
	if pour.Amount <= 0 {
		return CostResult{}, &InvalidInputError{Field: "pour amount", Value: pour.Amount, Reason: "must be positive"}
	}

	bottleInPourUnit, err := volume.Convert(ing.BottleVolume.Value, ing.BottleVolume.Unit, pour.Unit)
	if err != nil {
		return CostResult{}, err
	}

	perUnit, err := CostPerUnitVolume(ing.BottlePrice, bottleInPourUnit)
	if err != nil {
		return CostResult{}, err
	}

	perPour := CostPerPour(perUnit, pour.Amount)

	suggested, err := SuggestedPrice(perPour, targetPourCostPercent)
	if err != nil {
		return CostResult{}, err
	}

	result := CostResult{
		CostPerUnitVolume: perUnit,
		CostPerPour:       perPour,
		SuggestedPrice:    suggested,
	}

	if ing.Sellable && actualPrice > 0 {
		result.PourCostPercentage = PourCostPercentage(perPour, actualPrice)
		result.ProfitMargin = ProfitMargin(actualPrice, perPour)
		result.PriceMeaningful = true
	}

	return result, nil
}

// CocktailTotalCost sums the cost per pour over all components.
func CocktailTotalCost(components []Component) (float64, error) {
	total := 0.0
	for _, comp := range components {
		if comp.Pour.Amount <= 0 {
			return 0, &InvalidInputError{Field: "pour amount", Value: comp.Pour.Amount, Reason: "must be positive"}
		}
		bottleInPourUnit, err := volume.Convert(comp.Ingredient.BottleVolume.Value, comp.Ingredient.BottleVolume.Unit, comp.Pour.Unit)
		if err != nil {
			return 0, err
		}
		perUnit, err := CostPerUnitVolume(comp.Ingredient.BottlePrice, bottleInPourUnit)
		if err != nil {
			return 0, err
		}
		total += CostPerPour(perUnit, comp.Pour.Amount)
	}
	return total, nil
}

// CocktailSuggestedPrice applies the single-serving suggested price formula to
// an aggregate cocktail cost.
func CocktailSuggestedPrice(totalCost, targetPourCostPercent float64) (float64, error) {
	return SuggestedPrice(totalCost, targetPourCostPercent)
}

// ComputeCocktail aggregates component costs and derives the cocktail
// economics against an actual menu price. actualPrice 0 means the drink is
// unpriced; percentage and margin then carry the zero sentinel.
func ComputeCocktail(components []Component, actualPrice, targetPourCostPercent float64) (CocktailCostResult, error) {
	result := CocktailCostResult{}

	for _, comp := range components {
		if comp.Pour.Amount <= 0 {
			return CocktailCostResult{}, &InvalidInputError{Field: "pour amount", Value: comp.Pour.Amount, Reason: "must be positive"}
		}
		bottleInPourUnit, err := volume.Convert(comp.Ingredient.BottleVolume.Value, comp.Ingredient.BottleVolume.Unit, comp.Pour.Unit)
		if err != nil {
			return CocktailCostResult{}, err
		}
		perUnit, err := CostPerUnitVolume(comp.Ingredient.BottlePrice, bottleInPourUnit)
		if err != nil {
			return CocktailCostResult{}, err
		}
		perPour := CostPerPour(perUnit, comp.Pour.Amount)
		result.TotalCost += perPour
		result.Components = append(result.Components, ComponentCost{
			Name:        comp.Ingredient.Name,
			CostPerPour: perPour,
		})
	}

	suggested, err := CocktailSuggestedPrice(result.TotalCost, targetPourCostPercent)
	if err != nil {
		return CocktailCostResult{}, err
	}
	result.SuggestedPrice = suggested

	if actualPrice > 0 {
		result.PourCostPercentage = PourCostPercentage(result.TotalCost, actualPrice)
		result.ProfitMargin = ProfitMargin(actualPrice, result.TotalCost)
		result.PriceMeaningful = true
	}

	return result, nil
}
