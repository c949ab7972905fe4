// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/pourmetrics/pourcost/internal/report"
)

// FindIngredient finds an ingredient cost by name in a report.
// Returns a pointer to the cost if found, nil otherwise.
func FindIngredient(rep report.Report, name string) *report.IngredientCost {
	for i := range rep.Ingredients {
		if rep.Ingredients[i].Name == name {
			return &rep.Ingredients[i]
		}
	}
	return nil
}

// FindCocktail finds a cocktail cost by name in a report.
// Returns a pointer to the cost if found, nil otherwise.
func FindCocktail(rep report.Report, name string) *report.CocktailCost {
	for i := range rep.Cocktails {
		if rep.Cocktails[i].Name == name {
			return &rep.Cocktails[i]
		}
	}
	return nil
}
