package report_test

import (
	"math"
	"testing"

	"github.com/pourmetrics/pourcost/internal/config"
	"github.com/pourmetrics/pourcost/internal/report"
	"github.com/pourmetrics/pourcost/pkg/pourcost"
	"github.com/pourmetrics/pourcost/pkg/testutil"
	"github.com/pourmetrics/pourcost/pkg/volume"
)

func testConfiguration() config.Configuration {
	conf := config.Configuration{
		Settings: config.Settings{
			MeasurementSystem:   "US",
			BaseCurrency:        "USD",
			PourCostGoalPercent: 20,
			DefaultPourSize:     1.5,
			DefaultPourUnit:     "oz",
		},
		Ingredients: []config.Ingredient{
			{
				Name:         "Well Vodka",
				Kind:         "spirit",
				BottleVolume: 750,
				BottleUnit:   "ml",
				BottlePrice:  25.00,
				RetailPrice:  7.50,
				Sellable:     true,
			},
			{
				Name:         "Dry Vermouth",
				Kind:         "wine",
				BottleVolume: 750,
				BottleUnit:   "ml",
				BottlePrice:  12.00,
			},
			{
				Name:         "Empty Bottle",
				Kind:         "spirit",
				BottleVolume: 0,
				BottleUnit:   "ml",
				BottlePrice:  10.00,
			},
		},
		Cocktails: []config.Cocktail{
			{
				Name:  "Martini",
				Price: 14.00,
				Components: []config.Component{
					{Ingredient: "Well Vodka", Amount: 2.5, Unit: "oz"},
					{Ingredient: "Dry Vermouth", Amount: 0.5, Unit: "oz"},
				},
			},
		},
	}
	return conf
}

func TestRun(t *testing.T) {
	conf := testConfiguration()

	result, err := report.Run(nil, conf)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if result.CurrencyCode != "USD" || result.GoalPercent != 20 {
		t.Errorf("report header = %s / %v, expected USD / 20", result.CurrencyCode, result.GoalPercent)
	}
	if result.System != volume.SystemUS {
		t.Errorf("system = %s, expected US", result.System)
	}
	// The empty bottle is skipped rather than failing the run.
	if len(result.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(result.Ingredients))
	}
	if len(result.Cocktails) != 1 {
		t.Fatalf("expected 1 cocktail, got %d", len(result.Cocktails))
	}
}

func TestRunIngredientEconomics(t *testing.T) {
	conf := testConfiguration()

	result, err := report.Run(nil, conf)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	vodka := testutil.FindIngredient(result, "Well Vodka")
	if vodka == nil {
		t.Fatal("Well Vodka missing from report")
	}

	if math.Abs(vodka.CostPerPour-1.478675) > 1e-6 {
		t.Errorf("cost per pour = %v, expected 1.478675", vodka.CostPerPour)
	}
	if math.Abs(vodka.SuggestedPrice-7.393375) > 1e-6 {
		t.Errorf("suggested price = %v, expected 7.393375", vodka.SuggestedPrice)
	}
	if !vodka.PriceMeaningful {
		t.Fatal("expected meaningful price for sellable vodka")
	}
	// 1.478675 / 7.50 is about 19.7%, just under the 20% goal.
	if math.Abs(vodka.PourCostPercentage-19.715667) > 1e-3 {
		t.Errorf("pour cost percentage = %v, expected about 19.72", vodka.PourCostPercentage)
	}
	if vodka.Tier != pourcost.TierGood {
		t.Errorf("tier = %s, expected good", vodka.Tier)
	}
	if vodka.BarPosition <= 0.15 || vodka.BarPosition >= 0.85 {
		t.Errorf("bar position %v should land in the linear sweet spot", vodka.BarPosition)
	}
	if vodka.BottleDisplay == "" {
		t.Error("expected a bottle display string")
	}
	if vodka.PourAmount != 1.5 || vodka.PourUnit != volume.Ounce {
		t.Errorf("pour = %v %s, expected 1.5 oz", vodka.PourAmount, vodka.PourUnit)
	}
}

func TestRunUnpricedIngredientSuppressed(t *testing.T) {
	conf := testConfiguration()

	result, err := report.Run(nil, conf)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	vermouth := testutil.FindIngredient(result, "Dry Vermouth")
	if vermouth == nil {
		t.Fatal("Dry Vermouth missing from report")
	}
	if vermouth.PriceMeaningful {
		t.Fatal("expected suppressed price for non-sellable vermouth")
	}
	if vermouth.PourCostPercentage != 0 || vermouth.BarPosition != 0 || vermouth.Tier != "" {
		t.Errorf("suppressed ingredient carried derived fields: %+v", vermouth)
	}
	if vermouth.CostPerPour <= 0 {
		t.Errorf("cost per pour should still be computed, got %v", vermouth.CostPerPour)
	}
}

func TestRunCocktailEconomics(t *testing.T) {
	conf := testConfiguration()

	result, err := report.Run(nil, conf)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	martini := testutil.FindCocktail(result, "Martini")
	if martini == nil {
		t.Fatal("Martini missing from report")
	}

	vodkaPerOz := 25.00 / (750 / 29.5735)
	vermouthPerOz := 12.00 / (750 / 29.5735)
	expectedTotal := vodkaPerOz*2.5 + vermouthPerOz*0.5
	if math.Abs(martini.TotalCost-expectedTotal) > 1e-6 {
		t.Errorf("total cost = %v, expected %v", martini.TotalCost, expectedTotal)
	}
	if !martini.PriceMeaningful {
		t.Fatal("expected meaningful price for priced martini")
	}
	if math.Abs(martini.PourCostPercentage-expectedTotal/14.00*100) > 1e-6 {
		t.Errorf("pour cost percentage = %v", martini.PourCostPercentage)
	}
	if len(martini.Components) != 2 {
		t.Fatalf("expected 2 component costs, got %d", len(martini.Components))
	}
	if martini.Tier == "" {
		t.Error("expected a performance tier for priced cocktail")
	}
}

func TestRunMetricBottleDisplay(t *testing.T) {
	conf := testConfiguration()
	conf.Settings.MeasurementSystem = "Metric"
	conf.Ingredients = []config.Ingredient{
		{
			Name:         "Handle Rum",
			Kind:         "spirit",
			BottleVolume: 1.75,
			BottleUnit:   "L",
			BottlePrice:  30.00,
		},
	}
	conf.Cocktails = nil

	result, err := report.Run(nil, conf)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Ingredients) != 1 {
		t.Fatalf("expected 1 ingredient, got %d", len(result.Ingredients))
	}
	if result.Ingredients[0].BottleDisplay != "1.75 L" {
		t.Errorf("bottle display = %q, expected %q", result.Ingredients[0].BottleDisplay, "1.75 L")
	}
}

func TestRunPropagatesBadUnits(t *testing.T) {
	conf := testConfiguration()
	conf.Ingredients[0].BottleUnit = "firkin"

	if _, err := report.Run(nil, conf); err == nil {
		t.Fatal("expected error for unknown bottle unit")
	}
}
