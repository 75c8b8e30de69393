package dto

import (
	"akiya-analysis-service/internal/core/domain"
)

// ============================================================================
// Catalog DTOs
// ============================================================================

// MarketFactorsDTO carries one value per market factor. The same shape is
// used for raw factor values, normalization ranges and weights.
type MarketFactorsDTO struct {
	Population          float64 `json:"population"`
	DistanceFromStation float64 `json:"distance_from_station"`
	Tourist             float64 `json:"tourist"`
	HouseholdIncome     float64 `json:"household_income"`
}

type AreaResponse struct {
	Code           string                      `json:"code"`
	Name           string                      `json:"name"`
	FactorRanges   MarketFactorsDTO            `json:"factor_ranges"`
	Weights        map[string]MarketFactorsDTO `json:"weights"`
	DefaultFactors MarketFactorsDTO            `json:"default_factors"`
	Epsilon        float64                     `json:"epsilon"`
}

type ListAreasResponse struct {
	Items []AreaResponse `json:"items"`
}

type CostItemDTO struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

type BusinessResponse struct {
	Code              string        `json:"code"`
	Name              string        `json:"name"`
	InitialInvestment int64         `json:"initial_investment"`
	MonthlyUsers      int64         `json:"monthly_users"`
	UnitPrice         int64         `json:"unit_price"`
	OtherRevenue      int64         `json:"other_revenue"`
	Costs             []CostItemDTO `json:"costs"`
	MonthlyCost       int64         `json:"monthly_cost"`
}

type ListBusinessesResponse struct {
	Items []BusinessResponse `json:"items"`
}

func ToMarketFactorsDTO(f domain.MarketFactors) MarketFactorsDTO {
	return MarketFactorsDTO{
		Population:          f.Population,
		DistanceFromStation: f.DistanceFromStation,
		Tourist:             f.Tourist,
		HouseholdIncome:     f.HouseholdIncome,
	}
}

// ToDomainFactors maps an optional request factor block onto the domain type.
func ToDomainFactors(d *MarketFactorsDTO) *domain.MarketFactors {
	if d == nil {
		return nil
	}
	return &domain.MarketFactors{
		Population:          d.Population,
		DistanceFromStation: d.DistanceFromStation,
		Tourist:             d.Tourist,
		HouseholdIncome:     d.HouseholdIncome,
	}
}

func ToAreaResponse(area *domain.Area) AreaResponse {
	weights := make(map[string]MarketFactorsDTO, len(area.Weights))
	for code, w := range area.Weights {
		weights[code] = MarketFactorsDTO{
			Population:          w.Population,
			DistanceFromStation: w.DistanceFromStation,
			Tourist:             w.Tourist,
			HouseholdIncome:     w.HouseholdIncome,
		}
	}
	return AreaResponse{
		Code: area.Code,
		Name: area.Name,
		FactorRanges: MarketFactorsDTO{
			Population:          area.Ranges.Population,
			DistanceFromStation: area.Ranges.DistanceFromStation,
			Tourist:             area.Ranges.Tourist,
			HouseholdIncome:     area.Ranges.HouseholdIncome,
		},
		Weights:        weights,
		DefaultFactors: ToMarketFactorsDTO(area.DefaultFactors),
		Epsilon:        area.Epsilon,
	}
}

func ToBusinessResponse(business *domain.Business) BusinessResponse {
	costs := make([]CostItemDTO, 0, len(business.Costs))
	for _, c := range business.Costs {
		costs = append(costs, CostItemDTO{Label: c.Label, Amount: c.Amount})
	}
	return BusinessResponse{
		Code:              business.Code,
		Name:              business.Name,
		InitialInvestment: business.InitialInvestment,
		MonthlyUsers:      business.MonthlyUsers,
		UnitPrice:         business.UnitPrice,
		OtherRevenue:      business.OtherRevenue,
		Costs:             costs,
		MonthlyCost:       business.MonthlyCost(),
	}
}
