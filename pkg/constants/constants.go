// Package constants provides shared constants for the pourcost application.
package constants

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultPourCostGoalPercent is the pour-cost goal assumed when the
	// configuration does not supply one.
	DefaultPourCostGoalPercent = 20.0

	// DefaultPourSizeOz is the serving size assumed for ingredients that do
	// not declare their own pour.
	DefaultPourSizeOz = 1.5
)

// Performance tier bands, expressed as deviation in percentage points from the
// pour-cost goal. Both the tier classifier and the scale mapper read these so
// the two can never disagree.
const (
	// TierSweetBand is the deviation within which a pour cost counts as on
	// goal, or excellent when under goal by more than the band.
	TierSweetBand = 3.0

	// TierPoorBand is the deviation beyond which a pour cost counts as poor.
	TierPoorBand = 7.0
)

// Nonlinear scale breakpoints. The forward and inverse mappings must branch on
// exactly these values.
const (
	// ScaleSweetSpotHalfWidth is the half-width in domain units of the
	// linear segment centered on the goal.
	ScaleSweetSpotHalfWidth = 10.0

	// ScaleLowerSplit is the normalized position where the lower log segment
	// hands off to the linear segment.
	ScaleLowerSplit = 0.15

	// ScaleUpperSplit is the normalized position where the linear segment
	// hands off to the upper log segment.
	ScaleUpperSplit = 0.85
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultCurrencyCode is the currency assumed when none is configured.
	DefaultCurrencyCode = "USD"
)
