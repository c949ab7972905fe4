// Package adapters converts configuration records into the input types the
// calculation engines consume.
package adapters

import (
	"fmt"

	"github.com/pourmetrics/pourcost/internal/config"
	"github.com/pourmetrics/pourcost/pkg/pourcost"
	"github.com/pourmetrics/pourcost/pkg/volume"
)

// IngredientToEngine converts a config ingredient into an engine ingredient,
// parsing its bottle unit.
func IngredientToEngine(ing config.Ingredient) (pourcost.Ingredient, error) {
	unit, err := volume.ParseUnit(ing.BottleUnit)
	if err != nil {
		return pourcost.Ingredient{}, fmt.Errorf("ingredient %q: %w", ing.Name, err)
	}

	return pourcost.Ingredient{
		Name: ing.Name,
		Kind: parseKind(ing.Kind),
		BottleVolume: volume.Volume{
			Value: ing.BottleVolume,
			Unit:  unit,
		},
		BottlePrice: ing.BottlePrice,
		Sellable:    ing.Sellable,
	}, nil
}

// PourToEngine converts a pour amount and unit string into an engine pour.
func PourToEngine(amount float64, unitName string) (pourcost.Pour, error) {
	unit, err := volume.ParseUnit(unitName)
	if err != nil {
		return pourcost.Pour{}, err
	}
	return pourcost.Pour{Amount: amount, Unit: unit}, nil
}

// CocktailToEngine resolves a cocktail's component references against the
// configured ingredients and converts them into engine components. Component
// units default to the configured default pour unit when omitted.
func CocktailToEngine(cocktail config.Cocktail, conf *config.Configuration) ([]pourcost.Component, error) {
	byName := make(map[string]config.Ingredient, len(conf.Ingredients))
	for _, ing := range conf.Ingredients {
		byName[ing.Name] = ing
	}

	components := make([]pourcost.Component, 0, len(cocktail.Components))
	for _, comp := range cocktail.Components {
		confIng, ok := byName[comp.Ingredient]
		if !ok {
			return nil, fmt.Errorf("cocktail %q references unknown ingredient %q", cocktail.Name, comp.Ingredient)
		}
		engineIng, err := IngredientToEngine(confIng)
		if err != nil {
			return nil, err
		}

		unitName := comp.Unit
		if unitName == "" {
			unitName = conf.Settings.DefaultPourUnit
		}
		pour, err := PourToEngine(comp.Amount, unitName)
		if err != nil {
			return nil, fmt.Errorf("cocktail %q component %q: %w", cocktail.Name, comp.Ingredient, err)
		}

		components = append(components, pourcost.Component{
			Ingredient: engineIng,
			Pour:       pour,
		})
	}
	return components, nil
}

func parseKind(kind string) pourcost.Kind {
	switch pourcost.Kind(kind) {
	case pourcost.KindSpirit, pourcost.KindWine, pourcost.KindBeer,
		pourcost.KindLiqueur, pourcost.KindMixer, pourcost.KindGarnish:
		return pourcost.Kind(kind)
	default:
		return pourcost.KindOther
	}
}
