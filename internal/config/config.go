// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/pourmetrics/pourcost/pkg/constants"
	"github.com/pourmetrics/pourcost/pkg/measure"
	"github.com/pourmetrics/pourcost/pkg/validation"
	"github.com/pourmetrics/pourcost/pkg/volume"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for pourcost.
type Configuration struct {
	Settings    Settings
	Ingredients []Ingredient
	Cocktails   []Cocktail
	Logging     LoggingConfig `yaml:"logging,omitempty"`
	Output      OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Settings holds the bar-wide preferences every calculation consumes.
type Settings struct {
	MeasurementSystem   string  // US, Metric
	BaseCurrency        string  // ISO code, e.g. USD
	PourCostGoalPercent float64 // target pour-cost percentage
	DefaultPourSize     float64 // serving size for ingredients without one
	DefaultPourUnit     string
}

// Ingredient is one purchasable bottle and its optional per-pour pricing.
type Ingredient struct {
	Name         string
	Kind         string
	BottleVolume float64
	BottleUnit   string
	BottlePrice  float64
	RetailPrice  float64 // price of one pour when sold individually
	Sellable     bool
	PourAmount   float64 // overrides the default pour size when set
	PourUnit     string
}

// Cocktail is a priced drink built from ingredient pours.
type Cocktail struct {
	Name       string
	Price      float64
	Components []Component
}

// Component references an ingredient by name with the amount poured.
type Component struct {
	Ingredient string
	Amount     float64
	Unit       string
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// LoadConfigurationFromReader loads YAML configuration from an in-memory
// source, e.g. an HTTP upload.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults fills in the settings the config file omitted.
func (c *Configuration) ApplyDefaults() {
	if c.Settings.MeasurementSystem == "" {
		c.Settings.MeasurementSystem = string(volume.SystemUS)
	}
	if c.Settings.BaseCurrency == "" {
		c.Settings.BaseCurrency = constants.DefaultCurrencyCode
	}
	if c.Settings.PourCostGoalPercent <= 0 || c.Settings.PourCostGoalPercent >= 100 {
		c.Settings.PourCostGoalPercent = constants.DefaultPourCostGoalPercent
	}
	if c.Settings.DefaultPourSize <= 0 {
		c.Settings.DefaultPourSize = constants.DefaultPourSizeOz
	}
	if c.Settings.DefaultPourUnit == "" {
		c.Settings.DefaultPourUnit = string(volume.Ounce)
	}
}

// System resolves the configured measurement system, defaulting to US when
// the value does not parse.
func (c *Configuration) System() volume.System {
	system, err := measure.ParseSystem(c.Settings.MeasurementSystem)
	if err != nil {
		return volume.SystemUS
	}
	return system
}

// PourFor resolves the serving drawn from an ingredient, falling back to the
// configured default pour.
func (c *Configuration) PourFor(ing Ingredient) (float64, string) {
	if ing.PourAmount > 0 && ing.PourUnit != "" {
		return ing.PourAmount, ing.PourUnit
	}
	return c.Settings.DefaultPourSize, c.Settings.DefaultPourUnit
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	warnings = append(warnings, validation.ValidateGoalPercent(c.Settings.PourCostGoalPercent)...)

	knownIngredients := make(map[string]bool, len(c.Ingredients))
	for _, ing := range c.Ingredients {
		knownIngredients[ing.Name] = true
		warnings = append(warnings, validation.ValidateIngredient(validation.IngredientConfig{
			Name:         ing.Name,
			BottleVolume: ing.BottleVolume,
			BottleUnit:   ing.BottleUnit,
			BottlePrice:  ing.BottlePrice,
			RetailPrice:  ing.RetailPrice,
			Sellable:     ing.Sellable,
			PourAmount:   ing.PourAmount,
			PourUnit:     ing.PourUnit,
		})...)
	}

	for _, cocktail := range c.Cocktails {
		components := make([]validation.ComponentConfig, 0, len(cocktail.Components))
		for _, comp := range cocktail.Components {
			components = append(components, validation.ComponentConfig{
				Ingredient: comp.Ingredient,
				Amount:     comp.Amount,
				Unit:       comp.Unit,
			})
		}
		warnings = append(warnings, validation.ValidateCocktail(validation.CocktailConfig{
			Name:       cocktail.Name,
			Price:      cocktail.Price,
			Components: components,
		}, knownIngredients)...)
	}

	return warnings
}
