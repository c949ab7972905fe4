// Package report defines the data structures related to a cost report and
// includes functions for computing the report from a configuration.
package report

import (
	"fmt"

	"github.com/pourmetrics/pourcost/internal/config"
	"github.com/pourmetrics/pourcost/pkg/adapters"
	"github.com/pourmetrics/pourcost/pkg/measure"
	"github.com/pourmetrics/pourcost/pkg/pourcost"
	"github.com/pourmetrics/pourcost/pkg/scale"
	"github.com/pourmetrics/pourcost/pkg/volume"
	"go.uber.org/zap"
)

// Percentage bar positions are mapped over the full percentage domain.
const (
	percentDomainMin = 0.0
	percentDomainMax = 100.0
)

// Report holds the computed economics for every ingredient and cocktail.
type Report struct {
	CurrencyCode string
	GoalPercent  float64
	System       volume.System
	Ingredients  []IngredientCost
	Cocktails    []CocktailCost
}

// IngredientCost is the derived economics for one ingredient's pour.
type IngredientCost struct {
	Name               string
	Kind               string
	BottleDisplay      string
	PourAmount         float64
	PourUnit           volume.Unit
	CostPerUnitVolume  float64
	CostPerPour        float64
	SuggestedPrice     float64
	RetailPrice        float64
	PourCostPercentage float64
	ProfitMargin       float64
	PriceMeaningful    bool
	Tier               pourcost.Tier
	BarPosition        float64
}

// CocktailCost is the derived economics for one cocktail.
type CocktailCost struct {
	Name               string
	Price              float64
	TotalCost          float64
	SuggestedPrice     float64
	PourCostPercentage float64
	ProfitMargin       float64
	PriceMeaningful    bool
	Tier               pourcost.Tier
	BarPosition        float64
	Components         []pourcost.ComponentCost
}

// Run computes the cost report for the whole configuration.
func Run(logger *zap.Logger, conf config.Configuration) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	system := conf.System()
	goal := conf.Settings.PourCostGoalPercent

	result := Report{
		CurrencyCode: conf.Settings.BaseCurrency,
		GoalPercent:  goal,
		System:       system,
	}

	for _, ing := range conf.Ingredients {
		if ing.BottleVolume <= 0 || ing.BottlePrice < 0 {
			logger.Debug(fmt.Sprintf("skipping ingredient %s because its bottle is invalid", ing.Name),
				zap.String("op", "report.Run"),
			)
			continue
		}

		cost, err := computeIngredient(conf, ing, system, goal)
		if err != nil {
			return result, err
		}

		logger.Debug(fmt.Sprintf("computed cost for ingredient %s", ing.Name),
			zap.String("op", "report.Run"),
			zap.Float64("costPerPour", cost.CostPerPour),
			zap.Float64("suggestedPrice", cost.SuggestedPrice),
		)
		result.Ingredients = append(result.Ingredients, cost)
	}

	for _, cocktail := range conf.Cocktails {
		cost, err := computeCocktail(conf, cocktail, goal)
		if err != nil {
			return result, err
		}

		logger.Debug(fmt.Sprintf("computed cost for cocktail %s", cocktail.Name),
			zap.String("op", "report.Run"),
			zap.Float64("totalCost", cost.TotalCost),
			zap.Float64("suggestedPrice", cost.SuggestedPrice),
		)
		result.Cocktails = append(result.Cocktails, cost)
	}

	return result, nil
}

func computeIngredient(conf config.Configuration, ing config.Ingredient, system volume.System, goal float64) (IngredientCost, error) {
	engineIng, err := adapters.IngredientToEngine(ing)
	if err != nil {
		return IngredientCost{}, err
	}

	pourAmount, pourUnitName := conf.PourFor(ing)
	pour, err := adapters.PourToEngine(pourAmount, pourUnitName)
	if err != nil {
		return IngredientCost{}, fmt.Errorf("ingredient %q: %w", ing.Name, err)
	}

	retailPrice := 0.0
	if ing.Sellable {
		retailPrice = ing.RetailPrice
	}

	engineResult, err := pourcost.Compute(engineIng, pour, retailPrice, goal)
	if err != nil {
		return IngredientCost{}, fmt.Errorf("ingredient %q: %w", ing.Name, err)
	}

	bottleMl, err := volume.ToBase(engineIng.BottleVolume.Value, engineIng.BottleVolume.Unit)
	if err != nil {
		return IngredientCost{}, err
	}
	displayUnit := measure.ResolveUnit(bottleMl, system, measure.UseBottle)
	displayValue, err := volume.FromBase(bottleMl, displayUnit)
	if err != nil {
		return IngredientCost{}, err
	}

	cost := IngredientCost{
		Name:               ing.Name,
		Kind:               string(engineIng.Kind),
		BottleDisplay:      volume.Format(displayValue, displayUnit, -1),
		PourAmount:         pour.Amount,
		PourUnit:           pour.Unit,
		CostPerUnitVolume:  engineResult.CostPerUnitVolume,
		CostPerPour:        engineResult.CostPerPour,
		SuggestedPrice:     engineResult.SuggestedPrice,
		RetailPrice:        retailPrice,
		PourCostPercentage: engineResult.PourCostPercentage,
		ProfitMargin:       engineResult.ProfitMargin,
		PriceMeaningful:    engineResult.PriceMeaningful,
	}

	if engineResult.PriceMeaningful {
		cost.Tier = pourcost.PerformanceTier(engineResult.PourCostPercentage, goal)
		position, err := scale.ToPosition(engineResult.PourCostPercentage, goal, percentDomainMin, percentDomainMax)
		if err != nil {
			return IngredientCost{}, err
		}
		cost.BarPosition = position
	}

	return cost, nil
}

func computeCocktail(conf config.Configuration, cocktail config.Cocktail, goal float64) (CocktailCost, error) {
	components, err := adapters.CocktailToEngine(cocktail, &conf)
	if err != nil {
		return CocktailCost{}, err
	}

	engineResult, err := pourcost.ComputeCocktail(components, cocktail.Price, goal)
	if err != nil {
		return CocktailCost{}, fmt.Errorf("cocktail %q: %w", cocktail.Name, err)
	}

	cost := CocktailCost{
		Name:               cocktail.Name,
		Price:              cocktail.Price,
		TotalCost:          engineResult.TotalCost,
		SuggestedPrice:     engineResult.SuggestedPrice,
		PourCostPercentage: engineResult.PourCostPercentage,
		ProfitMargin:       engineResult.ProfitMargin,
		PriceMeaningful:    engineResult.PriceMeaningful,
		Components:         engineResult.Components,
	}

	if engineResult.PriceMeaningful {
		cost.Tier = pourcost.PerformanceTier(engineResult.PourCostPercentage, goal)
		position, err := scale.ToPosition(engineResult.PourCostPercentage, goal, percentDomainMin, percentDomainMax)
		if err != nil {
			return CocktailCost{}, err
		}
		cost.BarPosition = position
	}

	return cost, nil
}
