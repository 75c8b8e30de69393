package domain

// FactorContribution is one factor's share of a market potential score.
type FactorContribution struct {
	Factor     string  `json:"factor"`
	Value      float64 `json:"value"`
	Normalized float64 `json:"normalized"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
}

// PotentialScore computes the market potential of one business type in this
// area: the weighted sum of normalized factor values plus epsilon. Factors
// are summed in canonical order so the result is deterministic. The score is
// not clamped and can exceed 1.0. Returns ErrBusinessNotFound when the area
// carries no weights for the business code.
func (a *Area) PotentialScore(businessCode string, factors MarketFactors, epsilon float64) (float64, []FactorContribution, error) {
	weights, ok := a.Weights[businessCode]
	if !ok {
		return 0, nil, ErrBusinessNotFound
	}

	terms := []struct {
		name          string
		value, max, w float64
	}{
		{FactorPopulation, factors.Population, a.Ranges.Population, weights.Population},
		{FactorDistanceFromStation, factors.DistanceFromStation, a.Ranges.DistanceFromStation, weights.DistanceFromStation},
		{FactorTourist, factors.Tourist, a.Ranges.Tourist, weights.Tourist},
		{FactorHouseholdIncome, factors.HouseholdIncome, a.Ranges.HouseholdIncome, weights.HouseholdIncome},
	}

	score := 0.0
	breakdown := make([]FactorContribution, 0, len(terms))
	for _, t := range terms {
		var normalized float64
		if t.name == FactorDistanceFromStation {
			normalized = normalizeInverse(t.value, t.max)
		} else {
			normalized = normalizeLinear(t.value, t.max)
		}
		weighted := t.w * normalized
		score += weighted
		breakdown = append(breakdown, FactorContribution{
			Factor:     t.name,
			Value:      t.value,
			Normalized: normalized,
			Weight:     t.w,
			Weighted:   weighted,
		})
	}
	score += epsilon

	return score, breakdown, nil
}

// normalizeLinear maps v onto [0, 1], saturating at the range maximum.
func normalizeLinear(v, max float64) float64 {
	n := v / max
	if n > 1 {
		return 1
	}
	return n
}

// normalizeInverse maps v onto [0, 1] with closer-is-better semantics:
// a value at or beyond the cutoff scores zero.
func normalizeInverse(v, max float64) float64 {
	if v >= max {
		return 0
	}
	n := 1 - v/max
	if n < 0 {
		return 0
	}
	return n
}
