// Package constants provides shared constants for the incentive eligibility engine.
package constants

// DateTimeLayout is the format expected for dates in project and program
// records and is also the output date format.
const DateTimeLayout = "2006-01-02"

// EngineVersion identifies the evaluation engine revision carried in output
// metadata.
const EngineVersion = "2.0.0"

// Engine defaults
const (
	// DefaultMinScore is the minimum fractional score for a program to be
	// retained in results when it did not qualify outright.
	DefaultMinScore = 0.4

	// DefaultMaxResults caps the number of matches returned per evaluation.
	DefaultMaxResults = 100

	// RecommendedStackSize is the number of top qualified matches included
	// in the recommended stack.
	RecommendedStackSize = 5

	// FarFutureDeadlineDays is the sentinel day count used when a program
	// declares no application deadline.
	FarFutureDeadlineDays = 999
)

// Affordability thresholds
const (
	// AffordableHousingThreshold is the affordability percentage at or above
	// which a project counts as affordable housing.
	AffordableHousingThreshold = 20.0

	// LowIncomeAffordabilityThreshold is the affordability percentage at or
	// above which a project is treated as serving a low-income community for
	// IRA bonus purposes.
	LowIncomeAffordabilityThreshold = 50.0
)

// Value calculation constants
const (
	// FallbackMaxFraction is the fraction of a program's declared maximum
	// used as the base value when no other calculation method applies.
	FallbackMaxFraction = 0.5

	// BaseConfidence is the starting confidence for every value estimate.
	BaseConfidence = 0.50

	// ConfidenceCap is the highest confidence a value estimate may reach.
	ConfidenceCap = 0.95

	// KWPerMW converts declared capacity in megawatts to kilowatts.
	KWPerMW = 1000.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the JSON API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size for
	// evaluation requests (512 KB)
	DefaultMaxRequestSizeBytes int64 = 512 * 1024
)

// Numeric precision constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
