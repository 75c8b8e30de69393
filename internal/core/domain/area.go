package domain

// ============================================================================
// Market Factors
// ============================================================================

// Factor names as they appear in catalog files and API payloads. The order
// below is the canonical order for score summation.
const (
	FactorPopulation          = "population"
	FactorDistanceFromStation = "distance_from_station"
	FactorTourist             = "tourist"
	FactorHouseholdIncome     = "household_income"
)

// MarketFactors describes the market environment of a candidate area:
// residential population, walking minutes from the nearest station, tourist
// traffic and average household income (yen).
type MarketFactors struct {
	Population          float64 `json:"population"`
	DistanceFromStation float64 `json:"distance_from_station"`
	Tourist             float64 `json:"tourist"`
	HouseholdIncome     float64 `json:"household_income"`
}

// Validate rejects factor values that cannot describe a real area.
func (f MarketFactors) Validate() error {
	if f.Population < 0 || f.DistanceFromStation < 0 || f.Tourist < 0 || f.HouseholdIncome < 0 {
		return ErrNegativeFactor
	}
	return nil
}

// FactorRanges holds the per-factor maxima used to normalize raw factor
// values into [0, 1]. For distance_from_station the range is the cutoff
// beyond which the station is considered out of reach.
type FactorRanges struct {
	Population          float64 `json:"population"`
	DistanceFromStation float64 `json:"distance_from_station"`
	Tourist             float64 `json:"tourist"`
	HouseholdIncome     float64 `json:"household_income"`
}

// FactorWeights holds the per-factor weights of one (area, business) pair.
type FactorWeights struct {
	Population          float64 `json:"population"`
	DistanceFromStation float64 `json:"distance_from_station"`
	Tourist             float64 `json:"tourist"`
	HouseholdIncome     float64 `json:"household_income"`
}

// ============================================================================
// Entities
// ============================================================================

// Area is one candidate neighborhood for a vacant-house reuse business.
// Weights is keyed by business code; DefaultFactors and Epsilon are the
// presets used when an analysis request does not supply its own.
type Area struct {
	Code           string                   `json:"code"`
	Name           string                   `json:"name"`
	Ranges         FactorRanges             `json:"factor_ranges"`
	Weights        map[string]FactorWeights `json:"weights"`
	DefaultFactors MarketFactors            `json:"default_factors"`
	Epsilon        float64                  `json:"epsilon"`
}
