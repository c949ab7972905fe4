// Package output provides utilities for formatting and displaying cost
// reports.
package output

import (
	"fmt"
	"strings"

	"github.com/pourmetrics/pourcost/internal/report"
	"github.com/pourmetrics/pourcost/pkg/currency"
	"github.com/pourmetrics/pourcost/pkg/volume"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(rep report.Report) {
	opts := currency.DefaultOptions()
	money := func(amount float64) string {
		return currency.Format(amount, rep.CurrencyCode, opts)
	}

	fmt.Printf("--- Pour cost report (goal %.1f%%, %s) ---\n", rep.GoalPercent, rep.CurrencyCode)

	if len(rep.Ingredients) > 0 {
		fmt.Printf("Ingredient           | Bottle      | Pour      | Cost/Pour  | Suggested  | Pour Cost | Tier\n")
		fmt.Printf("__________           | ______      | ____      | _________  | _________  | _________ | ____\n")
		for _, ing := range rep.Ingredients {
			pctCol := "-"
			tierCol := "-"
			if ing.PriceMeaningful {
				pctCol = fmt.Sprintf("%.1f%%", ing.PourCostPercentage)
				tierCol = string(ing.Tier)
			}
			fmt.Printf("%-20s | %-11s | %-9s | %-10s | %-10s | %-9s | %s\n",
				ing.Name,
				ing.BottleDisplay,
				volume.Format(ing.PourAmount, ing.PourUnit, -1),
				money(ing.CostPerPour),
				money(ing.SuggestedPrice),
				pctCol,
				tierCol,
			)
		}
	}

	if len(rep.Cocktails) > 0 {
		fmt.Printf("\nCocktail             | Total Cost | Price      | Suggested  | Pour Cost | Tier\n")
		fmt.Printf("________             | __________ | _____      | _________  | _________ | ____\n")
		for _, cocktail := range rep.Cocktails {
			pctCol := "-"
			tierCol := "-"
			if cocktail.PriceMeaningful {
				pctCol = fmt.Sprintf("%.1f%%", cocktail.PourCostPercentage)
				tierCol = string(cocktail.Tier)
			}
			fmt.Printf("%-20s | %-10s | %-10s | %-10s | %-9s | %s\n",
				cocktail.Name,
				money(cocktail.TotalCost),
				money(cocktail.Price),
				money(cocktail.SuggestedPrice),
				pctCol,
				tierCol,
			)
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(rep report.Report) {
	fmt.Print(CsvString(rep))
}

// CsvString renders the report in comma-separated value format.
func CsvString(rep report.Report) string {
	var builder strings.Builder

	builder.WriteString(`"type","name","pour","cost per pour","suggested price","retail price","pour cost %","margin","tier"`)
	builder.WriteString("\n")

	for _, ing := range rep.Ingredients {
		pct := ""
		margin := ""
		tier := ""
		if ing.PriceMeaningful {
			pct = fmt.Sprintf("%.2f", ing.PourCostPercentage)
			margin = fmt.Sprintf("%.2f", ing.ProfitMargin)
			tier = string(ing.Tier)
		}
		builder.WriteString(fmt.Sprintf(`"ingredient","%s","%s","%.2f","%.2f","%.2f","%s","%s","%s"`,
			ing.Name,
			volume.Format(ing.PourAmount, ing.PourUnit, -1),
			ing.CostPerPour,
			ing.SuggestedPrice,
			ing.RetailPrice,
			pct,
			margin,
			tier,
		))
		builder.WriteString("\n")
	}

	for _, cocktail := range rep.Cocktails {
		pct := ""
		margin := ""
		tier := ""
		if cocktail.PriceMeaningful {
			pct = fmt.Sprintf("%.2f", cocktail.PourCostPercentage)
			margin = fmt.Sprintf("%.2f", cocktail.ProfitMargin)
			tier = string(cocktail.Tier)
		}
		builder.WriteString(fmt.Sprintf(`"cocktail","%s","","%.2f","%.2f","%.2f","%s","%s","%s"`,
			cocktail.Name,
			cocktail.TotalCost,
			cocktail.SuggestedPrice,
			cocktail.Price,
			pct,
			margin,
			tier,
		))
		builder.WriteString("\n")
	}

	return builder.String()
}
